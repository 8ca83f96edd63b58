package rule

import (
	"testing"
)

func TestArena_Nullable(t *testing.T) {
	a := NewArena()
	x := a.CharSet(NewCharacterSet(CharRange{From: 0x61, To: 0x61}))
	y := a.CharSet(NewCharacterSet(CharRange{From: 0x62, To: 0x62}))

	tests := []struct {
		caption string
		rule    ID
		want    bool
	}{
		{caption: "blank", rule: a.Blank(), want: true},
		{caption: "char set", rule: x, want: false},
		{caption: "repetition", rule: a.Repeat(x), want: true},
		{caption: "sequence of non-nullables", rule: a.Seq(x, y), want: false},
		{caption: "sequence of nullables", rule: a.Seq(a.Repeat(x), a.Repeat(y)), want: true},
		{caption: "sequence with a non-nullable member", rule: a.Seq(a.Repeat(x), y), want: false},
		{caption: "choice with a nullable member", rule: a.Choice(x, a.Repeat(y)), want: true},
		{caption: "choice without a nullable member", rule: a.Choice(x, y), want: false},
		{caption: "metadata", rule: a.Metadata(a.Repeat(x), MetadataParams{TokenStart: true}), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if got := a.Nullable(tt.rule); got != tt.want {
				t.Fatalf("unexpected nullability; want: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestArena_CompletionStatus(t *testing.T) {
	a := NewArena()
	x := a.CharSet(NewCharacterSet(CharRange{From: 0x61, To: 0x61}))
	prec := func(content ID, p int) ID {
		return a.Metadata(content, MetadataParams{Precedence: p, PrecedenceSet: true})
	}

	tests := []struct {
		caption string
		rule    ID
		want    CompletionStatus
	}{
		{caption: "blank", rule: a.Blank(), want: CompletionStatus{Done: true}},
		{caption: "char set", rule: x, want: CompletionStatus{}},
		{caption: "repetition", rule: a.Repeat(x), want: CompletionStatus{Done: true}},
		{
			caption: "sequence reports its last member",
			rule:    a.Seq(prec(a.Blank(), 1), prec(a.Blank(), 2)),
			want:    CompletionStatus{Done: true, Precedence: 2, PrecedenceSet: true},
		},
		{
			caption: "sequence with an incomplete member",
			rule:    a.Seq(prec(a.Blank(), 1), x),
			want:    CompletionStatus{},
		},
		{
			caption: "choice reports its first complete alternative",
			rule:    a.Choice(x, prec(a.Blank(), 5), prec(a.Repeat(x), 7)),
			want:    CompletionStatus{Done: true, Precedence: 5, PrecedenceSet: true},
		},
		{
			caption: "an inner precedence shadows an outer one",
			rule:    prec(prec(a.Blank(), 1), 9),
			want:    CompletionStatus{Done: true, Precedence: 1, PrecedenceSet: true},
		},
		{
			caption: "an outer precedence applies when the content declares none",
			rule:    prec(a.Blank(), 9),
			want:    CompletionStatus{Done: true, Precedence: 9, PrecedenceSet: true},
		},
		{
			caption: "metadata without a precedence keeps the content's one",
			rule:    a.Metadata(prec(a.Blank(), 3), MetadataParams{TokenStart: true}),
			want:    CompletionStatus{Done: true, Precedence: 3, PrecedenceSet: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if got := a.CompletionStatus(tt.rule); got != tt.want {
				t.Fatalf("unexpected status; want: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestArena_PrecedenceRange(t *testing.T) {
	a := NewArena()
	x := a.CharSet(NewCharacterSet(CharRange{From: 0x61, To: 0x61}))
	prec := func(content ID, p int) ID {
		return a.Metadata(content, MetadataParams{Precedence: p, PrecedenceSet: true})
	}

	tests := []struct {
		caption string
		rule    ID
		want    PrecedenceRange
	}{
		{caption: "no precedence", rule: a.Seq(x, a.Repeat(x)), want: PrecedenceRange{}},
		{caption: "single precedence", rule: prec(x, 3), want: PrecedenceRange{Min: 3, Max: 3, Set: true}},
		{
			caption: "choice folds all alternatives",
			rule:    a.Choice(prec(x, 1), prec(a.Seq(x, x), 5)),
			want:    PrecedenceRange{Min: 1, Max: 5, Set: true},
		},
		{
			caption: "nested precedences are all visible",
			rule:    prec(a.Seq(prec(x, -2), x), 4),
			want:    PrecedenceRange{Min: -2, Max: 4, Set: true},
		},
		{
			caption: "repetition looks into its content",
			rule:    a.Repeat(prec(x, 8)),
			want:    PrecedenceRange{Min: 8, Max: 8, Set: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if got := a.PrecedenceRange(tt.rule); got != tt.want {
				t.Fatalf("unexpected range; want: %+v, got: %+v", tt.want, got)
			}
		})
	}
}

func TestPrecedenceRange_AddMerge(t *testing.T) {
	var r PrecedenceRange
	r = r.Add(3)
	if r != (PrecedenceRange{Min: 3, Max: 3, Set: true}) {
		t.Fatalf("unexpected range: %+v", r)
	}
	r = r.Add(-1).Add(10)
	if r != (PrecedenceRange{Min: -1, Max: 10, Set: true}) {
		t.Fatalf("unexpected range: %+v", r)
	}
	r = r.Merge(PrecedenceRange{})
	if r != (PrecedenceRange{Min: -1, Max: 10, Set: true}) {
		t.Fatalf("merging the empty range must not change anything: %+v", r)
	}
	r = r.Merge(PrecedenceRange{Min: -5, Max: 2, Set: true})
	if r != (PrecedenceRange{Min: -5, Max: 10, Set: true}) {
		t.Fatalf("unexpected range: %+v", r)
	}
}

func TestArena_HasTokenStart(t *testing.T) {
	a := NewArena()
	x := a.CharSet(NewCharacterSet(CharRange{From: 0x61, To: 0x61}))

	marked := a.Metadata(x, MetadataParams{TokenStart: true})
	if !a.HasTokenStart(marked) {
		t.Fatal("the marker must be visible on the wrapper itself")
	}
	if !a.HasTokenStart(a.Seq(a.Repeat(x), marked)) {
		t.Fatal("the marker must be visible through a sequence")
	}
	if a.HasTokenStart(a.Seq(x, x)) {
		t.Fatal("a rule without the marker must not report one")
	}
	if a.HasTokenStart(a.Metadata(x, MetadataParams{Precedence: 1, PrecedenceSet: true})) {
		t.Fatal("a precedence-only wrapper must not report a marker")
	}
}
