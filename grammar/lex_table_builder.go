package grammar

import (
	"math"

	"github.com/rhapsodyn/tree-sitter/grammar/rule"
	"github.com/rhapsodyn/tree-sitter/grammar/symbol"
	"github.com/rhapsodyn/tree-sitter/spec"
)

// separatorPrecedence is the precedence attached to inter-token separator
// rules. It sits far below any precedence a grammar can declare, so an
// advance that only continues a separator loses every conflict against a
// completed token.
const separatorPrecedence = math.MinInt32 / 2

// inputSentinel is the byte the end of input appears as. The EOF marker is
// lexed as this single byte.
const inputSentinel = byte(0x00)

type compileConfig struct {
	compLv int
}

type CompileOption func(config *compileConfig) error

// CompressionLevel selects how deeply the advance matrix is compressed.
func CompressionLevel(lv int) CompileOption {
	return func(config *compileConfig) error {
		if err := validateCompressionLevel(lv); err != nil {
			return err
		}
		config.compLv = lv
		return nil
	}
}

// Compile builds the lex table of a grammar and returns its portable form.
// The lex state applicable at each parse state is back-filled into ptab.
func Compile(gram *LexicalGrammar, ptab *ParseTable, opts ...CompileOption) (*spec.CompiledLexTable, error) {
	config := &compileConfig{
		compLv: CompressionLevelMax,
	}
	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	tab, err := genLexTable(gram, ptab)
	if err != nil {
		return nil, err
	}
	return genLexTableSpec(gram, ptab, tab, config.compLv)
}

type pendingLexState struct {
	id  spec.StateID
	set *lexItemSet
}

type lexTableBuilder struct {
	gram     *LexicalGrammar
	arena    *rule.Arena
	sepRules []rule.ID
	tab      *LexTable

	// interned maps an item set fingerprint to the state built from it, so
	// states reached through different parse states or different prefixes are
	// shared. The error state is excluded; it keeps its reserved ID even when
	// its item set coincides with an interned one.
	interned map[lexItemSetID]spec.StateID

	unprocessed []*pendingLexState
}

// genLexTable drives the whole construction: one start state per parse state,
// a breadth-first expansion of their successors, and finally the universal
// error state built from every symbol of the grammar.
func genLexTable(gram *LexicalGrammar, ptab *ParseTable) (*LexTable, error) {
	b := &lexTableBuilder{
		gram:     gram,
		arena:    gram.Arena,
		sepRules: genSeparatorRules(gram),
		tab:      newLexTable(),
		interned: map[lexItemSetID]spec.StateID{},
	}

	for _, ps := range ptab.States {
		ps.LexStateID = b.internState(b.genItemSet(ps.ExpectedInputs))
	}
	b.drain()

	b.populateState(spec.StateIDError, b.genItemSet(gram.Symbols()))
	b.drain()

	return b.tab, nil
}

// genSeparatorRules wraps each separator independently as a zero-or-more
// repetition carrying the sentinel precedence. A blank rule is always the
// last entry, so "no separator" is an alternative of its own. One consequence
// of the per-separator items: a run of trivia between two tokens must consist
// of a single separator kind, as no item spans two kinds.
func genSeparatorRules(gram *LexicalGrammar) []rule.ID {
	arena := gram.Arena
	params := rule.MetadataParams{
		Precedence:    separatorPrecedence,
		PrecedenceSet: true,
	}
	var seps []rule.ID
	for _, sep := range gram.Separators {
		seps = append(seps, arena.Metadata(arena.Repeat(sep), params))
	}
	return append(seps, arena.Metadata(arena.Blank(), params))
}

// genItemSet builds the item set a lex state starts from: every alternative
// of every expected token, crossed with every separator rule and carrying a
// fresh token-start marker. Non-terminals and the error marker have no
// lexical form and contribute nothing. The EOF marker contributes an item
// matching the input sentinel.
func (b *lexTableBuilder) genItemSet(syms []symbol.Symbol) *lexItemSet {
	arena := b.arena
	var items []lexItem
	for _, sym := range syms {
		var alts []rule.ID
		switch {
		case sym.IsEOF():
			alts = []rule.ID{
				arena.CharSet(rule.NewCharacterSet(rule.CharRange{From: inputSentinel, To: inputSentinel})),
			}
		case sym.IsToken():
			e, ok := b.gram.TokenEntry(sym)
			if !ok {
				continue
			}
			alts = arena.TopAlternatives(e.Rule)
		default:
			continue
		}
		for _, alt := range alts {
			marked := arena.Metadata(alt, rule.MetadataParams{
				TokenStart: true,
			})
			for _, sepRule := range b.sepRules {
				items = append(items, lexItem{
					sym:  sym,
					rule: arena.Seq(sepRule, marked),
				})
			}
		}
	}
	return newLexItemSet(items)
}

func (b *lexTableBuilder) internState(set *lexItemSet) spec.StateID {
	if id, ok := b.interned[set.id]; ok {
		return id
	}
	id := b.tab.addState()
	b.interned[set.id] = id
	b.unprocessed = append(b.unprocessed, &pendingLexState{
		id:  id,
		set: set,
	})
	return id
}

func (b *lexTableBuilder) drain() {
	for len(b.unprocessed) > 0 {
		p := b.unprocessed[0]
		b.unprocessed = b.unprocessed[1:]
		b.populateState(p.id, p.set)
	}
}

func (b *lexTableBuilder) populateState(id spec.StateID, set *lexItemSet) {
	arena := b.arena
	s := b.tab.state(id)

	for _, item := range set.items {
		if arena.HasTokenStart(item.rule) {
			s.tokenStart = true
			break
		}
	}

	for _, item := range set.items {
		st := arena.CompletionStatus(item.rule)
		if !st.Done {
			continue
		}
		act := acceptLexAction(item.sym, st.Precedence)
		if resolveLexAction(act, s.defaultAction) {
			s.defaultAction = act
		}
	}

	for _, tr := range genLexItemSetTransitions(arena, set) {
		var precRange rule.PrecedenceRange
		for _, item := range tr.next.items {
			precRange = precRange.Merge(b.itemPrecedenceRange(item))
		}
		act := lexAction{
			typ:       LexActionTypeAdvance,
			precRange: precRange,
		}
		if s.defaultAction.typ == LexActionTypeAccept && !resolveLexAction(act, s.defaultAction) {
			continue
		}
		act.state = b.internState(tr.next)
		s.entries = append(s.entries, &lexRangeAction{
			chars:  tr.chars,
			action: act,
		})
	}
}

// itemPrecedenceRange is the precedence interval an item contributes to the
// advance leading to it. An item still ahead of its token content has matched
// separators only, so it contributes the separator sentinel regardless of the
// precedences its token declares.
func (b *lexTableBuilder) itemPrecedenceRange(item lexItem) rule.PrecedenceRange {
	if b.arena.HasTokenStart(item.rule) {
		return rule.PrecedenceRange{}.Add(separatorPrecedence)
	}
	r := b.arena.PrecedenceRange(item.rule)
	if !r.Set {
		r = r.Add(0)
	}
	return r
}
