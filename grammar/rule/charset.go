package rule

import (
	"fmt"
	"strings"
)

// CharRange is an inclusive range of input byte values.
type CharRange struct {
	From byte
	To   byte
}

// CharacterSet is a set of input byte values represented as sorted,
// non-overlapping, non-adjacent ranges. The byte 0x00 is a legal member; the
// builder uses it as the end-of-input sentinel.
type CharacterSet struct {
	ranges []CharRange
}

func NewCharacterSet(ranges ...CharRange) CharacterSet {
	rs := make([]CharRange, 0, len(ranges))
	for _, r := range ranges {
		if r.From > r.To {
			continue
		}
		rs = append(rs, r)
	}
	return CharacterSet{
		ranges: normalizeRanges(rs),
	}
}

func normalizeRanges(rs []CharRange) []CharRange {
	if len(rs) == 0 {
		return nil
	}
	sorted := make([]CharRange, len(rs))
	copy(sorted, rs)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].From > sorted[j].From; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if int(r.From) <= int(last.To)+1 {
			if r.To > last.To {
				last.To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func (s CharacterSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

func (s CharacterSet) Includes(v byte) bool {
	for _, r := range s.ranges {
		if v >= r.From && v <= r.To {
			return true
		}
	}
	return false
}

// Ranges returns the ranges of the set in ascending order.
func (s CharacterSet) Ranges() []CharRange {
	rs := make([]CharRange, len(s.ranges))
	copy(rs, s.ranges)
	return rs
}

// Min returns the smallest member of the set. The set must be non-empty.
func (s CharacterSet) Min() byte {
	return s.ranges[0].From
}

func (s CharacterSet) Equal(o CharacterSet) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i, r := range s.ranges {
		if o.ranges[i] != r {
			return false
		}
	}
	return true
}

func (s CharacterSet) Union(o CharacterSet) CharacterSet {
	rs := make([]CharRange, 0, len(s.ranges)+len(o.ranges))
	rs = append(rs, s.ranges...)
	rs = append(rs, o.ranges...)
	return CharacterSet{
		ranges: normalizeRanges(rs),
	}
}

func (s CharacterSet) Intersect(o CharacterSet) CharacterSet {
	var rs []CharRange
	for _, a := range s.ranges {
		for _, b := range o.ranges {
			from := a.From
			if b.From > from {
				from = b.From
			}
			to := a.To
			if b.To < to {
				to = b.To
			}
			if from <= to {
				rs = append(rs, CharRange{From: from, To: to})
			}
		}
	}
	return CharacterSet{
		ranges: normalizeRanges(rs),
	}
}

func (s CharacterSet) Subtract(o CharacterSet) CharacterSet {
	rs := s.ranges
	for _, b := range o.ranges {
		var next []CharRange
		for _, a := range rs {
			if b.To < a.From || b.From > a.To {
				next = append(next, a)
				continue
			}
			if a.From < b.From {
				next = append(next, CharRange{From: a.From, To: b.From - 1})
			}
			if a.To > b.To {
				next = append(next, CharRange{From: b.To + 1, To: a.To})
			}
		}
		rs = next
	}
	return CharacterSet{
		ranges: normalizeRanges(rs),
	}
}

func (s CharacterSet) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "{")
	for i, r := range s.ranges {
		if i > 0 {
			fmt.Fprint(&b, ", ")
		}
		if r.From == r.To {
			fmt.Fprintf(&b, "%02X", r.From)
		} else {
			fmt.Fprintf(&b, "%02X..%02X", r.From, r.To)
		}
	}
	fmt.Fprint(&b, "}")
	return b.String()
}
