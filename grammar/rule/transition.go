package rule

import "sort"

// Transition maps a set of input bytes to the residual rule remaining after
// consuming one byte of the set.
type Transition struct {
	Chars CharacterSet
	Next  ID
}

// transitionTable accumulates transitions while keeping their character sets
// pairwise disjoint. Adding a set overlapping an existing entry splits the
// entry; the overlap leads to the choice of both residuals.
type transitionTable struct {
	entries []Transition
}

func (t *transitionTable) add(a *Arena, cs CharacterSet, next ID) {
	rest := cs
	var entries []Transition
	for _, e := range t.entries {
		inter := e.Chars.Intersect(rest)
		if inter.IsEmpty() {
			entries = append(entries, e)
			continue
		}
		only := e.Chars.Subtract(rest)
		if !only.IsEmpty() {
			entries = append(entries, Transition{
				Chars: only,
				Next:  e.Next,
			})
		}
		entries = append(entries, Transition{
			Chars: inter,
			Next:  a.Choice(e.Next, next),
		})
		rest = rest.Subtract(e.Chars)
	}
	if !rest.IsEmpty() {
		entries = append(entries, Transition{
			Chars: rest,
			Next:  next,
		})
	}
	t.entries = entries
}

func (t *transitionTable) merge(a *Arena, trs []Transition) {
	for _, tr := range trs {
		t.add(a, tr.Chars, tr.Next)
	}
}

func (t *transitionTable) sorted() []Transition {
	entries := make([]Transition, len(t.entries))
	copy(entries, t.entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Chars.Min() < entries[j].Chars.Min()
	})
	return entries
}

// Transitions derives the outgoing transitions of a rule: the disjoint
// partition of the alphabet into character sets the rule can consume one byte
// from, each mapped to the residual after that byte. Consuming any byte of a
// set from the rule and matching the rest against the residual are equivalent.
func (a *Arena) Transitions(id ID) []Transition {
	n := a.node(id)
	switch n.kind {
	case nodeKindCharSet:
		if n.chars.IsEmpty() {
			return nil
		}
		return []Transition{
			{
				Chars: n.chars,
				Next:  a.Blank(),
			},
		}
	case nodeKindSeq:
		var tab transitionTable
		head, tail := n.members[0], n.members[1:]
		for _, tr := range a.Transitions(head) {
			tab.add(a, tr.Chars, a.Seq(append([]ID{tr.Next}, tail...)...))
		}
		if a.Nullable(head) {
			tab.merge(a, a.Transitions(a.Seq(tail...)))
		}
		return tab.sorted()
	case nodeKindChoice:
		var tab transitionTable
		for _, m := range n.members {
			tab.merge(a, a.Transitions(m))
		}
		return tab.sorted()
	case nodeKindRepeat:
		var tab transitionTable
		for _, tr := range a.Transitions(n.content) {
			tab.add(a, tr.Chars, a.Seq(tr.Next, id))
		}
		return tab.sorted()
	case nodeKindMetadata:
		params := n.params
		params.TokenStart = false
		var tab transitionTable
		for _, tr := range a.Transitions(n.content) {
			tab.add(a, tr.Chars, a.Metadata(tr.Next, params))
		}
		return tab.sorted()
	}
	return nil
}
