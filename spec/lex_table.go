package spec

// ActionType represents a type of an action of a lex table.
type ActionType string

const (
	ActionTypeAdvance = ActionType("advance")
	ActionTypeAccept  = ActionType("accept")
)

// CompiledLexTable is the output of the lex table builder in a portable form.
// A code generator consumes it as a finished, immutable structure addressed
// by state IDs.
type CompiledLexTable struct {
	Name string `json:"name"`

	// ErrorStateID is always StateIDError. It is recorded explicitly so the
	// consumer does not need to know the reservation convention.
	ErrorStateID StateID `json:"error_state_id"`

	// TokenNames maps a TokenID to the token's name. The entry at index 0
	// names the end-of-input marker.
	TokenNames []string `json:"token_names"`

	// LexStates maps a parse state number to the ID of the lex state
	// applicable at that parse state.
	LexStates []StateID `json:"lex_states"`

	States []*LexStateSpec `json:"states"`

	// Advance is the dense form of the per-state advance actions. Row i holds
	// the advance targets of state i for all 256 input bytes; 0 means the
	// state has no advance on that byte and falls back to its default action.
	// A 0 entry is unambiguous because no advance action ever targets the
	// error state.
	Advance *AdvanceTable `json:"advance,omitempty"`

	CompressionLevel int `json:"compression_level"`
}

type LexStateSpec struct {
	// DefaultAction applies to any input byte no entry of Entries covers.
	// When it is nil, such a byte means a lexical error.
	DefaultAction *ActionSpec `json:"default_action,omitempty"`

	Entries []*RangeEntrySpec `json:"entries,omitempty"`

	// TokenStart is true when the state sits at the start of a fresh token
	// attempt. The runtime lexer uses it to decide where a partial match may
	// be restarted.
	TokenStart bool `json:"token_start,omitempty"`
}

type ActionSpec struct {
	Type ActionType `json:"type"`

	// State is the target state of an advance action.
	State StateID `json:"state,omitempty"`

	// Token and Precedence describe an accept action.
	Token      TokenID `json:"token,omitempty"`
	Precedence int     `json:"precedence,omitempty"`
}

// RangeEntrySpec assigns an action to an inclusive range of input bytes.
// The byte 0x00 is the end-of-input sentinel.
type RangeEntrySpec struct {
	From   int         `json:"from"`
	To     int         `json:"to"`
	Action *ActionSpec `json:"action"`
}

// AdvanceTable carries the dense advance matrix, optionally compressed.
// Exactly one of the fields Uncompressed and UniqueEntries is set.
type AdvanceTable struct {
	RowCount      int                `json:"row_count"`
	ColCount      int                `json:"col_count"`
	Uncompressed  []StateID          `json:"uncompressed,omitempty"`
	UniqueEntries *UniqueEntriesSpec `json:"unique_entries,omitempty"`
}

// UniqueEntriesSpec is the level-1 compressed matrix: duplicated rows are
// stored once and addressed through RowNums. At level 2 the deduplicated rows
// are additionally overlapped by row displacement.
type UniqueEntriesSpec struct {
	RowNums          []int                `json:"row_nums"`
	OriginalRowCount int                  `json:"original_row_count"`
	OriginalColCount int                  `json:"original_col_count"`
	Entries          []StateID            `json:"entries,omitempty"`
	RowDisplacement  *RowDisplacementSpec `json:"row_displacement,omitempty"`
}

type RowDisplacementSpec struct {
	OriginalRowCount int       `json:"original_row_count"`
	OriginalColCount int       `json:"original_col_count"`
	EmptyValue       StateID   `json:"empty_value"`
	Entries          []StateID `json:"entries"`
	Bounds           []int     `json:"bounds"`
	Displacement     []int     `json:"displacement"`
}
