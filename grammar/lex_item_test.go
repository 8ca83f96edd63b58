package grammar

import (
	"testing"

	"github.com/rhapsodyn/tree-sitter/grammar/rule"
	"github.com/rhapsodyn/tree-sitter/grammar/symbol"
)

func TestNewLexItemSet(t *testing.T) {
	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	foo, err := w.RegisterTokenSymbol("foo")
	if err != nil {
		t.Fatal(err)
	}
	bar, err := w.RegisterTokenSymbol("bar")
	if err != nil {
		t.Fatal(err)
	}

	a := rule.NewArena()
	x := a.CharSet(rule.NewCharacterSet(rule.CharRange{From: 0x61, To: 0x61}))
	y := a.CharSet(rule.NewCharacterSet(rule.CharRange{From: 0x62, To: 0x62}))

	s1 := newLexItemSet([]lexItem{
		{sym: foo, rule: x},
		{sym: bar, rule: y},
	})
	s2 := newLexItemSet([]lexItem{
		{sym: bar, rule: y},
		{sym: foo, rule: x},
		{sym: foo, rule: x},
	})
	s3 := newLexItemSet([]lexItem{
		{sym: foo, rule: y},
		{sym: bar, rule: x},
	})

	// The identity ignores order and duplicates but not content.
	if s1.id != s2.id {
		t.Fatal("sets with equal items must share an ID")
	}
	if len(s2.items) != 2 {
		t.Fatalf("duplicated items must be dropped: %v", len(s2.items))
	}
	if s1.id == s3.id {
		t.Fatal("sets with different items must not share an ID")
	}

	// Items are sorted by symbol first, so the set order is deterministic.
	if s1.items[0].sym != foo || s1.items[1].sym != bar {
		t.Fatalf("unexpected item order: %v", s1.items)
	}
}
