package rule

import (
	"testing"
)

func TestArena_Transitions(t *testing.T) {
	a := NewArena()
	cs := func(from, to byte) CharacterSet {
		return NewCharacterSet(CharRange{From: from, To: to})
	}
	x := a.CharSet(cs(0x61, 0x61))
	y := a.CharSet(cs(0x62, 0x62))

	t.Run("char set", func(t *testing.T) {
		trs := a.Transitions(x)
		if len(trs) != 1 {
			t.Fatalf("unexpected number of transitions: %v", len(trs))
		}
		if !trs[0].Chars.Equal(cs(0x61, 0x61)) || trs[0].Next != a.Blank() {
			t.Fatalf("unexpected transition: %v -> %v", trs[0].Chars, a.String(trs[0].Next))
		}
	})

	t.Run("blank", func(t *testing.T) {
		if trs := a.Transitions(a.Blank()); len(trs) != 0 {
			t.Fatalf("the blank rule must have no transitions: %v", len(trs))
		}
	})

	t.Run("sequence", func(t *testing.T) {
		trs := a.Transitions(a.Seq(x, y))
		if len(trs) != 1 {
			t.Fatalf("unexpected number of transitions: %v", len(trs))
		}
		if !trs[0].Chars.Equal(cs(0x61, 0x61)) || trs[0].Next != y {
			t.Fatalf("unexpected transition: %v -> %v", trs[0].Chars, a.String(trs[0].Next))
		}
	})

	t.Run("sequence with a nullable head", func(t *testing.T) {
		seq := a.Seq(a.Repeat(x), y)
		trs := a.Transitions(seq)
		if len(trs) != 2 {
			t.Fatalf("unexpected number of transitions: %v", len(trs))
		}
		if !trs[0].Chars.Equal(cs(0x61, 0x61)) || trs[0].Next != seq {
			t.Fatalf("consuming the repeated head must loop back: %v -> %v", trs[0].Chars, a.String(trs[0].Next))
		}
		if !trs[1].Chars.Equal(cs(0x62, 0x62)) || trs[1].Next != a.Blank() {
			t.Fatalf("the nullable head must expose the tail: %v -> %v", trs[1].Chars, a.String(trs[1].Next))
		}
	})

	t.Run("overlapping choice members split into disjoint sets", func(t *testing.T) {
		p := a.CharSet(cs(0x31, 0x31))
		q := a.CharSet(cs(0x32, 0x32))
		choice := a.Choice(
			a.Seq(a.CharSet(cs(0x61, 0x6d)), p),
			a.Seq(a.CharSet(cs(0x68, 0x7a)), q),
		)
		trs := a.Transitions(choice)
		if len(trs) != 3 {
			t.Fatalf("unexpected number of transitions: %v", len(trs))
		}
		if !trs[0].Chars.Equal(cs(0x61, 0x67)) || trs[0].Next != p {
			t.Fatalf("unexpected transition: %v -> %v", trs[0].Chars, a.String(trs[0].Next))
		}
		if !trs[1].Chars.Equal(cs(0x68, 0x6d)) || trs[1].Next != a.Choice(p, q) {
			t.Fatalf("the overlap must lead to both residuals: %v -> %v", trs[1].Chars, a.String(trs[1].Next))
		}
		if !trs[2].Chars.Equal(cs(0x6e, 0x7a)) || trs[2].Next != q {
			t.Fatalf("unexpected transition: %v -> %v", trs[2].Chars, a.String(trs[2].Next))
		}
	})

	t.Run("repetition loops back to itself", func(t *testing.T) {
		rep := a.Repeat(x)
		trs := a.Transitions(rep)
		if len(trs) != 1 {
			t.Fatalf("unexpected number of transitions: %v", len(trs))
		}
		if trs[0].Next != rep {
			t.Fatalf("the residual of a repetition must be the repetition itself: %v", a.String(trs[0].Next))
		}
	})

	t.Run("metadata keeps its precedence and drops the token start marker", func(t *testing.T) {
		w := a.Metadata(a.Seq(x, y), MetadataParams{
			TokenStart:    true,
			Precedence:    7,
			PrecedenceSet: true,
		})
		trs := a.Transitions(w)
		if len(trs) != 1 {
			t.Fatalf("unexpected number of transitions: %v", len(trs))
		}
		next := trs[0].Next
		if a.HasTokenStart(next) {
			t.Fatal("the marker must be consumed by the first character")
		}
		if got := a.PrecedenceRange(next); got != (PrecedenceRange{Min: 7, Max: 7, Set: true}) {
			t.Fatalf("the precedence must survive the derivative: %+v", got)
		}
		if st := a.CompletionStatus(a.Transitions(next)[0].Next); !st.Done || st.Precedence != 7 {
			t.Fatalf("the completed residual must report the declared precedence: %+v", st)
		}
	})
}
