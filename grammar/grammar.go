// Package grammar implements the lex table builder: it turns the lexical part
// of a grammar and a previously built parse table into a deterministic lex
// table a code generator can serialize.
package grammar

import (
	"fmt"

	"github.com/rhapsodyn/tree-sitter/grammar/rule"
	"github.com/rhapsodyn/tree-sitter/grammar/symbol"
	"github.com/rhapsodyn/tree-sitter/spec"
	"github.com/rhapsodyn/tree-sitter/utf8"
)

type TokenEntry struct {
	Name string
	Sym  symbol.Symbol

	// Rule is the token's rule tree with the declared precedence already
	// materialized: a choice of metadata-wrapped alternatives.
	Rule rule.ID

	Precedence int
}

// LexicalGrammar is the lexical part of a grammar: the token rules in
// declaration order, the inter-token separator rules, and the full symbol
// universe the error state is built from.
type LexicalGrammar struct {
	Name       string
	Arena      *rule.Arena
	Tokens     []*TokenEntry
	Separators []rule.ID

	symTab    *symbol.SymbolTable
	sym2Entry map[symbol.Symbol]*TokenEntry
}

func (g *LexicalGrammar) TokenEntry(sym symbol.Symbol) (*TokenEntry, bool) {
	e, ok := g.sym2Entry[sym]
	return e, ok
}

// Symbols returns every symbol of the grammar, the reserved markers included.
func (g *LexicalGrammar) Symbols() []symbol.Symbol {
	return g.symTab.Reader().Symbols()
}

func (g *LexicalGrammar) SymbolText(sym symbol.Symbol) (string, bool) {
	return g.symTab.Reader().ToText(sym)
}

// TokenID maps a token symbol to its portable ID. Token symbols are numbered
// sequentially in declaration order, offset by the reserved EOF number; the
// EOF marker itself maps to ID 0.
func (g *LexicalGrammar) TokenID(sym symbol.Symbol) spec.TokenID {
	if sym.IsEOF() {
		return spec.TokenID(0)
	}
	if !sym.IsToken() {
		return spec.TokenIDNil
	}
	return spec.TokenID(sym.Num().Int() - 1)
}

// TokenNames returns the token names indexed by TokenID. The entry at index 0
// names the EOF marker.
func (g *LexicalGrammar) TokenNames() []string {
	r := g.symTab.Reader()
	syms := r.TokenSymbols()
	names := make([]string, len(syms)+1)
	names[0], _ = r.ToText(symbol.SymbolEOF)
	for _, sym := range syms {
		names[g.TokenID(sym).Int()], _ = r.ToText(sym)
	}
	return names
}

// ParseState is the projection of a parse state this builder works with: the
// symbols that may legally appear next, and the one field the builder
// back-fills, the ID of the lex state applicable at that parse state.
type ParseState struct {
	ExpectedInputs []symbol.Symbol
	LexStateID     spec.StateID
}

type ParseTable struct {
	States []*ParseState
}

// Builder constructs the internal grammar model from its portable form.
type Builder struct {
	Spec *spec.GrammarSpec
}

func (b *Builder) Build() (*LexicalGrammar, *ParseTable, error) {
	arena := rule.NewArena()
	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()

	var tokens []*TokenEntry
	sym2Entry := map[symbol.Symbol]*TokenEntry{}
	for _, t := range b.Spec.Tokens {
		sym, err := w.RegisterTokenSymbol(t.Name)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := sym2Entry[sym]; ok {
			return nil, nil, fmt.Errorf("token %v is declared twice", t.Name)
		}
		if t.Rule == nil {
			return nil, nil, fmt.Errorf("token %v has no rule", t.Name)
		}
		root, err := convRuleSpec(arena, t.Rule)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid rule for token %v: %w", t.Name, err)
		}
		var alts []rule.ID
		for _, alt := range arena.TopAlternatives(root) {
			alts = append(alts, arena.Metadata(alt, rule.MetadataParams{
				Precedence:    t.Precedence,
				PrecedenceSet: true,
			}))
		}
		e := &TokenEntry{
			Name:       t.Name,
			Sym:        sym,
			Rule:       arena.Choice(alts...),
			Precedence: t.Precedence,
		}
		tokens = append(tokens, e)
		sym2Entry[sym] = e
	}

	var separators []rule.ID
	for i, s := range b.Spec.Separators {
		sep, err := convRuleSpec(arena, s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid separator rule #%v: %w", i, err)
		}
		separators = append(separators, sep)
	}

	for _, n := range b.Spec.NonTerminals {
		if _, err := w.RegisterNonTerminalSymbol(n); err != nil {
			return nil, nil, err
		}
	}

	r := symTab.Reader()
	var states []*ParseState
	for i, ps := range b.Spec.ParseStates {
		var syms []symbol.Symbol
		for _, name := range ps.ExpectedInputs {
			sym, ok := r.ToSymbol(name)
			if !ok {
				return nil, nil, fmt.Errorf("parse state #%v expects an undefined symbol: %v", i, name)
			}
			syms = append(syms, sym)
		}
		states = append(states, &ParseState{
			ExpectedInputs: syms,
		})
	}

	gram := &LexicalGrammar{
		Name:       b.Spec.Name,
		Arena:      arena,
		Tokens:     tokens,
		Separators: separators,
		symTab:     symTab,
		sym2Entry:  sym2Entry,
	}
	ptab := &ParseTable{
		States: states,
	}
	return gram, ptab, nil
}

func convRuleSpec(arena *rule.Arena, rs *spec.RuleSpec) (rule.ID, error) {
	switch rs.Kind {
	case spec.RuleKindBlank:
		return arena.Blank(), nil
	case spec.RuleKindChars:
		if len(rs.Ranges) == 0 {
			return rule.IDNil, fmt.Errorf("chars rule must have at least one range")
		}
		return convCharRanges(arena, rs.Ranges)
	case spec.RuleKindLiteral:
		if rs.Literal == "" {
			return arena.Blank(), nil
		}
		var ms []rule.ID
		for _, b := range []byte(rs.Literal) {
			ms = append(ms, arena.CharSet(rule.NewCharacterSet(rule.CharRange{From: b, To: b})))
		}
		return arena.Seq(ms...), nil
	case spec.RuleKindSeq, spec.RuleKindChoice:
		if len(rs.Members) == 0 {
			return rule.IDNil, fmt.Errorf("%v rule must have at least one member", rs.Kind)
		}
		var ms []rule.ID
		for _, m := range rs.Members {
			id, err := convRuleSpec(arena, m)
			if err != nil {
				return rule.IDNil, err
			}
			ms = append(ms, id)
		}
		if rs.Kind == spec.RuleKindSeq {
			return arena.Seq(ms...), nil
		}
		return arena.Choice(ms...), nil
	case spec.RuleKindRepeat:
		if rs.Content == nil {
			return rule.IDNil, fmt.Errorf("repeat rule must have a content")
		}
		content, err := convRuleSpec(arena, rs.Content)
		if err != nil {
			return rule.IDNil, err
		}
		return arena.Repeat(content), nil
	case spec.RuleKindPrec:
		if rs.Content == nil {
			return rule.IDNil, fmt.Errorf("prec rule must have a content")
		}
		content, err := convRuleSpec(arena, rs.Content)
		if err != nil {
			return rule.IDNil, err
		}
		return arena.Metadata(content, rule.MetadataParams{
			Precedence:    rs.Precedence,
			PrecedenceSet: true,
		}), nil
	}
	return rule.IDNil, fmt.Errorf("invalid rule kind: %v", rs.Kind)
}

// convCharRanges expands codepoint ranges into byte-level rules. Single-byte
// blocks merge into one character set; multi-byte blocks become sequences of
// byte ranges.
func convCharRanges(arena *rule.Arena, ranges []*spec.CharRangeSpec) (rule.ID, error) {
	single := rule.NewCharacterSet()
	var alts []rule.ID
	for _, r := range ranges {
		blks, err := utf8.GenCharBlocks(r.From, r.To)
		if err != nil {
			return rule.IDNil, err
		}
		for _, blk := range blks {
			if len(blk.From) == 1 {
				single = single.Union(rule.NewCharacterSet(rule.CharRange{From: blk.From[0], To: blk.To[0]}))
				continue
			}
			var ms []rule.ID
			for i := range blk.From {
				ms = append(ms, arena.CharSet(rule.NewCharacterSet(rule.CharRange{From: blk.From[i], To: blk.To[i]})))
			}
			alts = append(alts, arena.Seq(ms...))
		}
	}
	if !single.IsEmpty() {
		alts = append([]rule.ID{arena.CharSet(single)}, alts...)
	}
	if len(alts) == 0 {
		return rule.IDNil, fmt.Errorf("chars rule matches no characters")
	}
	return arena.Choice(alts...), nil
}
