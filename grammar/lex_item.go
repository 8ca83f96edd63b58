package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/rhapsodyn/tree-sitter/grammar/rule"
	"github.com/rhapsodyn/tree-sitter/grammar/symbol"
)

// lexItem is one automaton configuration: a token symbol being matched and
// the residual rule representing the remaining work for that token. The
// residual advances by the derivative operation, never by an explicit cursor.
type lexItem struct {
	sym  symbol.Symbol
	rule rule.ID
}

type lexItemSetID [32]byte

// lexItemSet is the pre-interning identity of one lex state: an unordered,
// deduplicated collection of items. Sets with equal items share their ID, so
// the builder can reuse states by structural equality.
type lexItemSet struct {
	id    lexItemSetID
	items []lexItem
}

func newLexItemSet(items []lexItem) *lexItemSet {
	var sortedItems []lexItem
	{
		m := map[lexItem]struct{}{}
		for _, item := range items {
			m[item] = struct{}{}
		}
		sortedItems = make([]lexItem, 0, len(m))
		for item := range m {
			sortedItems = append(sortedItems, item)
		}
		sort.Slice(sortedItems, func(i, j int) bool {
			if sortedItems[i].sym != sortedItems[j].sym {
				return sortedItems[i].sym < sortedItems[j].sym
			}
			return sortedItems[i].rule < sortedItems[j].rule
		})
	}

	var id lexItemSetID
	{
		b := []byte{}
		for _, item := range sortedItems {
			b = binary.LittleEndian.AppendUint16(b, uint16(item.sym))
			b = binary.LittleEndian.AppendUint32(b, uint32(item.rule))
		}
		id = sha256.Sum256(b)
	}

	return &lexItemSet{
		id:    id,
		items: sortedItems,
	}
}

type lexItemSetTransition struct {
	chars rule.CharacterSet
	next  *lexItemSet
}

// genLexItemSetTransitions derives the outgoing transitions of an item set:
// the disjoint partition of the alphabet grouping the items by the character
// sets they can advance on, each group mapped to the set of the items'
// residuals.
func genLexItemSetTransitions(arena *rule.Arena, s *lexItemSet) []*lexItemSetTransition {
	type entry struct {
		chars rule.CharacterSet
		items []lexItem
	}
	var entries []*entry

	add := func(chars rule.CharacterSet, item lexItem) {
		rest := chars
		var next []*entry
		for _, e := range entries {
			inter := e.chars.Intersect(rest)
			if inter.IsEmpty() {
				next = append(next, e)
				continue
			}
			if only := e.chars.Subtract(rest); !only.IsEmpty() {
				next = append(next, &entry{
					chars: only,
					items: e.items,
				})
			}
			shared := make([]lexItem, len(e.items), len(e.items)+1)
			copy(shared, e.items)
			next = append(next, &entry{
				chars: inter,
				items: append(shared, item),
			})
			rest = rest.Subtract(e.chars)
		}
		if !rest.IsEmpty() {
			next = append(next, &entry{
				chars: rest,
				items: []lexItem{item},
			})
		}
		entries = next
	}

	for _, item := range s.items {
		for _, tr := range arena.Transitions(item.rule) {
			add(tr.Chars, lexItem{
				sym:  item.sym,
				rule: tr.Next,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].chars.Min() < entries[j].chars.Min()
	})

	trs := make([]*lexItemSetTransition, len(entries))
	for i, e := range entries {
		trs[i] = &lexItemSetTransition{
			chars: e.chars,
			next:  newLexItemSet(e.items),
		}
	}
	return trs
}
