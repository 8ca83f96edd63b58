package grammar

import (
	"fmt"

	"github.com/rhapsodyn/tree-sitter/compressor"
	"github.com/rhapsodyn/tree-sitter/grammar/rule"
	"github.com/rhapsodyn/tree-sitter/grammar/symbol"
	"github.com/rhapsodyn/tree-sitter/spec"
)

type LexActionType string

const (
	// LexActionTypeError means no action is defined: lexing reached an error.
	LexActionTypeError = LexActionType("error")

	// LexActionTypeAdvance consumes one byte and moves to another lex state.
	LexActionTypeAdvance = LexActionType("advance")

	// LexActionTypeAccept declares a token matched at the current position.
	LexActionTypeAccept = LexActionType("accept")
)

type lexAction struct {
	typ LexActionType

	// state and precRange describe an advance action. precRange is the
	// interval of precedences still reachable through the target state.
	state     spec.StateID
	precRange rule.PrecedenceRange

	// sym and precedence describe an accept action.
	sym        symbol.Symbol
	precedence int
}

var errorLexAction = lexAction{
	typ: LexActionTypeError,
}

func acceptLexAction(sym symbol.Symbol, precedence int) lexAction {
	return lexAction{
		typ:        LexActionTypeAccept,
		sym:        sym,
		precedence: precedence,
	}
}

type lexRangeAction struct {
	chars  rule.CharacterSet
	action lexAction
}

type lexState struct {
	// defaultAction applies to any byte the entries do not cover.
	defaultAction lexAction

	// entries hold the explicit per-range actions. Their character sets are
	// pairwise disjoint and ordered by their smallest byte.
	entries []*lexRangeAction

	tokenStart bool
}

func (s *lexState) actionFor(v byte) lexAction {
	for _, e := range s.entries {
		if e.chars.Includes(v) {
			return e.action
		}
	}
	return s.defaultAction
}

// LexTable is the ordered collection of lex states. States are appended and
// never removed, so a state ID stays valid from the moment it is allocated.
// The state at spec.StateIDError is the reserved universal error state.
type LexTable struct {
	states []*lexState
}

func newLexTable() *LexTable {
	t := &LexTable{}
	t.addState()
	return t
}

func (t *LexTable) addState() spec.StateID {
	t.states = append(t.states, &lexState{
		defaultAction: errorLexAction,
	})
	return spec.StateID(len(t.states) - 1)
}

func (t *LexTable) state(id spec.StateID) *lexState {
	return t.states[id.Int()]
}

func (t *LexTable) stateCount() int {
	return len(t.states)
}

// genLexTableSpec converts a built lex table into its portable form,
// including the dense advance matrix compressed at the requested level.
func genLexTableSpec(gram *LexicalGrammar, ptab *ParseTable, tab *LexTable, compLv int) (*spec.CompiledLexTable, error) {
	lexStates := make([]spec.StateID, len(ptab.States))
	for i, ps := range ptab.States {
		lexStates[i] = ps.LexStateID
	}

	states := make([]*spec.LexStateSpec, len(tab.states))
	for i, s := range tab.states {
		ss := &spec.LexStateSpec{
			DefaultAction: genActionSpec(gram, s.defaultAction),
			TokenStart:    s.tokenStart,
		}
		for _, e := range s.entries {
			act := genActionSpec(gram, e.action)
			for _, r := range e.chars.Ranges() {
				ss.Entries = append(ss.Entries, &spec.RangeEntrySpec{
					From:   int(r.From),
					To:     int(r.To),
					Action: act,
				})
			}
		}
		states[i] = ss
	}

	advance, err := genAdvanceTable(tab, compLv)
	if err != nil {
		return nil, err
	}

	return &spec.CompiledLexTable{
		Name:             gram.Name,
		ErrorStateID:     spec.StateIDError,
		TokenNames:       gram.TokenNames(),
		LexStates:        lexStates,
		States:           states,
		Advance:          advance,
		CompressionLevel: compLv,
	}, nil
}

func genActionSpec(gram *LexicalGrammar, act lexAction) *spec.ActionSpec {
	switch act.typ {
	case LexActionTypeAdvance:
		return &spec.ActionSpec{
			Type:  spec.ActionTypeAdvance,
			State: act.state,
		}
	case LexActionTypeAccept:
		return &spec.ActionSpec{
			Type:       spec.ActionTypeAccept,
			Token:      gram.TokenID(act.sym),
			Precedence: act.precedence,
		}
	}
	return nil
}

const lexTableColCount = 256

func genAdvanceTable(tab *LexTable, compLv int) (*spec.AdvanceTable, error) {
	rowCount := tab.stateCount()
	entries := make([]spec.StateID, rowCount*lexTableColCount)
	for i, s := range tab.states {
		for _, e := range s.entries {
			if e.action.typ != LexActionTypeAdvance {
				continue
			}
			for _, r := range e.chars.Ranges() {
				for v := int(r.From); v <= int(r.To); v++ {
					entries[i*lexTableColCount+v] = e.action.state
				}
			}
		}
	}

	advance := &spec.AdvanceTable{
		RowCount: rowCount,
		ColCount: lexTableColCount,
	}
	if compLv <= 0 {
		advance.Uncompressed = entries
		return advance, nil
	}

	orig, err := compressor.NewOriginalTable(stateIDsToInts(entries), lexTableColCount)
	if err != nil {
		return nil, err
	}
	ueTab, err := compressor.GenUniqueEntriesTable(orig)
	if err != nil {
		return nil, err
	}
	ue := &spec.UniqueEntriesSpec{
		RowNums:          ueTab.RowNums,
		OriginalRowCount: ueTab.OriginalRowCount,
		OriginalColCount: ueTab.OriginalColCount,
	}
	if compLv == 1 {
		ue.Entries = intsToStateIDs(ueTab.UniqueEntries)
		advance.UniqueEntries = ue
		return advance, nil
	}

	ueOrig, err := compressor.NewOriginalTable(ueTab.UniqueEntries, ueTab.OriginalColCount)
	if err != nil {
		return nil, err
	}
	rdTab, err := compressor.GenRowDisplacementTable(ueOrig, spec.StateIDError.Int())
	if err != nil {
		return nil, err
	}
	ue.RowDisplacement = &spec.RowDisplacementSpec{
		OriginalRowCount: rdTab.OriginalRowCount,
		OriginalColCount: rdTab.OriginalColCount,
		EmptyValue:       spec.StateID(rdTab.EmptyValue),
		Entries:          intsToStateIDs(rdTab.Entries),
		Bounds:           rdTab.Bounds,
		Displacement:     rdTab.RowDisplacement,
	}
	advance.UniqueEntries = ue
	return advance, nil
}

func stateIDsToInts(ids []spec.StateID) []int {
	is := make([]int, len(ids))
	for i, id := range ids {
		is[i] = id.Int()
	}
	return is
}

func intsToStateIDs(is []int) []spec.StateID {
	ids := make([]spec.StateID, len(is))
	for i, v := range is {
		ids[i] = spec.StateID(v)
	}
	return ids
}

const (
	CompressionLevelMin = 0
	CompressionLevelMax = 2
)

func validateCompressionLevel(compLv int) error {
	if compLv < CompressionLevelMin || compLv > CompressionLevelMax {
		return fmt.Errorf("compression level must be %v to %v: %v", CompressionLevelMin, CompressionLevelMax, compLv)
	}
	return nil
}
