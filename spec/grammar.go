package spec

// GrammarSpec is the input of the lex table builder: the lexical part of a
// grammar along with the skeleton of an already built parse table. Upstream
// components (the grammar compiler and the parse table builder) generate it;
// this module only reads it.
type GrammarSpec struct {
	Name string `json:"name"`

	// Tokens are the lexical variables of the grammar in declaration order.
	// The order is significant: the conflict resolution prefers the token
	// declared earlier when two tokens complete at the same precedence.
	Tokens []*TokenSpec `json:"tokens"`

	// Separators are rules the lexer may skip before any token attempt,
	// like whitespace or comments.
	Separators []*RuleSpec `json:"separators,omitempty"`

	// NonTerminals lists the non-lexical symbols of the grammar. They have no
	// surface form but belong to the symbol universe the error state is
	// built from.
	NonTerminals []string `json:"non_terminals,omitempty"`

	ParseStates []*ParseStateSpec `json:"parse_states"`
}

type TokenSpec struct {
	Name string    `json:"name"`
	Rule *RuleSpec `json:"rule"`

	// Precedence is the declared precedence of the token. Zero is the
	// default level.
	Precedence int `json:"precedence,omitempty"`
}

// ParseStateSpec is the read-only projection of a parse state: the symbols
// that may legally appear next when the parser is in that state.
type ParseStateSpec struct {
	ExpectedInputs []string `json:"expected_inputs"`
}

// RuleKind distinguishes the variants of a rule tree node.
type RuleKind string

const (
	// RuleKindBlank matches the empty string.
	RuleKindBlank = RuleKind("blank")

	// RuleKindChars matches one character drawn from a set of codepoint
	// ranges.
	RuleKindChars = RuleKind("chars")

	// RuleKindLiteral matches a string verbatim.
	RuleKindLiteral = RuleKind("literal")

	// RuleKindSeq matches its members in order.
	RuleKindSeq = RuleKind("seq")

	// RuleKindChoice matches any one of its members. At the top level of a
	// token rule, each member behaves as an independent alternative.
	RuleKindChoice = RuleKind("choice")

	// RuleKindRepeat matches its content zero or more times.
	RuleKindRepeat = RuleKind("repeat")

	// RuleKindPrec attaches a precedence to its content.
	RuleKindPrec = RuleKind("prec")
)

type RuleSpec struct {
	Kind       RuleKind         `json:"kind"`
	Ranges     []*CharRangeSpec `json:"ranges,omitempty"`
	Literal    string           `json:"literal,omitempty"`
	Members    []*RuleSpec      `json:"members,omitempty"`
	Content    *RuleSpec        `json:"content,omitempty"`
	Precedence int              `json:"precedence,omitempty"`
}

// CharRangeSpec is an inclusive range of Unicode codepoints.
type CharRangeSpec struct {
	From rune `json:"from"`
	To   rune `json:"to"`
}
