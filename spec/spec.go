package spec

import "strconv"

// StateID represents an ID of a state of a lex table.
type StateID int

// StateIDError is the reserved ID of the universal error state. The error
// state defines lexing behavior for every token of the grammar, so lexing
// from an invalid parser state is never undefined. The states the builder
// derives from the parser states take the subsequent sequential IDs.
const StateIDError = StateID(0)

func (id StateID) Int() int {
	return int(id)
}

func (id StateID) String() string {
	return strconv.Itoa(int(id))
}

// TokenID identifies a token of a grammar. Valid IDs are sequential numbers
// starting from 1 and follow the declaration order of the tokens. In accept
// actions, the ID 0 identifies the end-of-input marker.
type TokenID int

const TokenIDNil = TokenID(0)

func (id TokenID) Int() int {
	return int(id)
}
