// Package utf8 splits codepoint ranges into blocks whose UTF-8 encodings can
// be matched byte by byte.
package utf8

import (
	"fmt"
	"strings"
)

// CharBlock is a range of codepoints whose UTF-8 encodings all have the same
// length and whose byte at each position i ranges exactly over From[i]..To[i].
// A matcher can therefore check a block as a sequence of independent byte
// ranges.
type CharBlock struct {
	From []byte
	To   []byte
}

func (b *CharBlock) String() string {
	var s strings.Builder
	fmt.Fprint(&s, "<")
	fmt.Fprintf(&s, "%X", b.From[0])
	for i := 1; i < len(b.From); i++ {
		fmt.Fprintf(&s, " %X", b.From[i])
	}
	fmt.Fprint(&s, "..")
	fmt.Fprintf(&s, "%X", b.To[0])
	for i := 1; i < len(b.To); i++ {
		fmt.Fprintf(&s, " %X", b.To[i])
	}
	fmt.Fprint(&s, ">")
	return s.String()
}

// GenCharBlocks splits the codepoint range <from..to> into CharBlocks.
//
// The blocks never contain the surrogate code points <U+D800..U+DFFF> because
// byte sequences encoding them are ill-formed in UTF-8. When `from` or `to`
// itself is a surrogate code point, this function returns an error.
func GenCharBlocks(from, to rune) ([]*CharBlock, error) {
	if from > to {
		return nil, fmt.Errorf("code point range must be from <= to: U+%X..U+%X", from, to)
	}
	if from < 0x0000 || from > 0x10ffff || to < 0x0000 || to > 0x10ffff {
		return nil, fmt.Errorf("code point must be >=U+0000 and <=U+10FFFF: U+%X..U+%X", from, to)
	}
	if from >= 0xd800 && from <= 0xdfff || to >= 0xd800 && to <= 0xdfff {
		return nil, fmt.Errorf("surrogate code points U+D800..U+DFFF are not allowed in UTF-8: U+%X..U+%X", from, to)
	}

	var blks []*CharBlock
	if from <= 0xd7ff && to >= 0xe000 {
		// The surrogate gap lies inside the range; split around it.
		blks = appendCharBlocks(blks, from, 0xd7ff)
		blks = appendCharBlocks(blks, 0xe000, to)
	} else {
		blks = appendCharBlocks(blks, from, to)
	}
	return blks, nil
}

// Upper bounds of the codepoint ranges whose UTF-8 encodings have the same
// length: 1, 2, 3, and 4 bytes respectively.
var encLenBounds = []rune{0x7f, 0x7ff, 0xffff, 0x10ffff}

func appendCharBlocks(blks []*CharBlock, from, to rune) []*CharBlock {
	// Split the range at the encoding length boundaries.
	for _, b := range encLenBounds {
		if from <= b && to > b {
			blks = appendCharBlocks(blks, from, b)
			return appendCharBlocks(blks, b+1, to)
		}
	}

	// `from` and `to` now encode to the same number of bytes. Each encoded
	// byte covers 6 payload bits (except the first). Split the range until,
	// at every byte position where the bounds differ, the trailing payload
	// bits span their full range. After that the encodings of `from` and
	// `to` describe the range exactly as per-position byte ranges.
	for i := uint(1); i < 4; i++ {
		m := rune(1)<<(6*i) - 1
		if from&^m != to&^m {
			if from&m != 0 {
				blks = appendCharBlocks(blks, from, from|m)
				return appendCharBlocks(blks, (from|m)+1, to)
			}
			if to&m != m {
				blks = appendCharBlocks(blks, from, to&^m-1)
				return appendCharBlocks(blks, to&^m, to)
			}
		}
	}

	return append(blks, &CharBlock{
		From: []byte(string(from)),
		To:   []byte(string(to)),
	})
}
