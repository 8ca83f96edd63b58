package symbol

import (
	"fmt"
	"sort"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindToken       = symbolKind("token")
)

func (k symbolKind) String() string {
	return string(k)
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol identifies a grammar entity: a token, a non-terminal, or one of the
// two reserved markers (end-of-input and error). Symbols are ordered by their
// numeric value and usable as map keys.
type Symbol uint16

func (s Symbol) String() string {
	kind, isEOF, isError, num := s.describe()
	var prefix string
	switch {
	case isEOF:
		prefix = "e"
	case isError:
		prefix = "x"
	case kind == symbolKindToken:
		prefix = "t"
	case kind == symbolKindNonTerminal:
		prefix = "n"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskToken       = uint16(0x8000) // 1000 0000 0000 0000

	maskSubKindPart = uint16(0x4000) // 0100 0000 0000 0000
	maskMarker      = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNumEOF   = uint16(0x0001)
	symbolNumError = uint16(0x0001)

	SymbolNil = Symbol(0) // 0000 0000 0000 0000

	// SymbolEOF is the end-of-input marker. It is treated as a token whose
	// lexical form is the input sentinel.
	SymbolEOF = Symbol(maskToken | maskMarker | symbolNumEOF) // 1100 0000 0000 0001

	// SymbolError is the error marker. It has no lexical form.
	SymbolError = Symbol(maskNonTerminal | maskMarker | symbolNumError) // 0100 0000 0000 0001

	// The reserved symbol names contain `<` and `>` to avoid conflicting with
	// user-defined symbols.
	symbolNameEOF   = "<eof>"
	symbolNameError = "<error>"

	// The number 1 is used by the reserved marker on each side.
	tokenNumMin       = SymbolNum(2)
	nonTerminalNumMin = SymbolNum(2)

	symbolNumMax = SymbolNum(0x3fff)
)

func newSymbol(kind symbolKind, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}

	kindMask := maskNonTerminal
	if kind == symbolKindToken {
		kindMask = maskToken
	}
	return Symbol(kindMask | uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	_, _, _, num := s.describe()
	return num
}

func (s Symbol) IsNil() bool {
	_, _, _, num := s.describe()
	return num == 0
}

func (s Symbol) IsEOF() bool {
	if s.IsNil() {
		return false
	}
	_, isEOF, _, _ := s.describe()
	return isEOF
}

func (s Symbol) IsError() bool {
	if s.IsNil() {
		return false
	}
	_, _, isError, _ := s.describe()
	return isError
}

func (s Symbol) isNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _, _ := s.describe()
	return kind == symbolKindNonTerminal
}

// IsToken reports whether s has a lexical form of its own. The EOF marker is
// not a token in this sense even though it occupies the token number space.
func (s Symbol) IsToken() bool {
	if s.IsNil() {
		return false
	}
	kind, isEOF, _, _ := s.describe()
	return kind == symbolKindToken && !isEOF
}

func (s Symbol) describe() (symbolKind, bool, bool, SymbolNum) {
	kind := symbolKindNonTerminal
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindToken
	}
	isEOF := false
	isError := false
	if uint16(s)&maskSubKindPart > 0 {
		if kind == symbolKindToken {
			isEOF = true
		} else {
			isError = true
		}
	}
	num := SymbolNum(uint16(s) & maskNumberPart)
	return kind, isEOF, isError, num
}

type SymbolTable struct {
	text2Sym map[string]Symbol
	sym2Text map[Symbol]string
	tokens   []Symbol
	tokenNum SymbolNum
	nTermNum SymbolNum
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			symbolNameEOF:   SymbolEOF,
			symbolNameError: SymbolError,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF:   symbolNameEOF,
			SymbolError: symbolNameError,
		},
		tokenNum: tokenNumMin,
		nTermNum: nonTerminalNumMin,
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

// RegisterTokenSymbol assigns the next token number to text. Token numbers
// follow registration order, which the conflict resolution relies on as the
// declaration-order tie-break.
func (w *SymbolTableWriter) RegisterTokenSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsToken() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a %v symbol", text, symbolKindNonTerminal)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindToken, w.tokenNum)
	if err != nil {
		return SymbolNil, err
	}
	w.tokenNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.tokens = append(w.tokens, sym)
	return sym, nil
}

func (w *SymbolTableWriter) RegisterNonTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.isNonTerminal() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a %v symbol", text, symbolKindToken)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, w.nTermNum)
	if err != nil {
		return SymbolNil, err
	}
	w.nTermNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	return sym, nil
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := r.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	text, ok := r.sym2Text[sym]
	return text, ok
}

// TokenSymbols returns the registered token symbols in declaration order.
func (r *SymbolTableReader) TokenSymbols() []Symbol {
	syms := make([]Symbol, len(r.tokens))
	copy(syms, r.tokens)
	return syms
}

// Symbols returns every registered symbol, the reserved markers included,
// in a deterministic order.
func (r *SymbolTableReader) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(r.sym2Text))
	for sym := range r.sym2Text {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
