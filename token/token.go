package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	BANG

	// Operators that also have a doubled or keyword spelling.
	AMPERSAND
	BAR
	ARROW

	// Literals and identifiers.
	NUMBER
	TRUE
	FALSE
	IDENT
)

var kindNames = [...]string{
	EOF:        "EOF",
	LEFTPAREN:  "LEFTPAREN",
	RIGHTPAREN: "RIGHTPAREN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	PERCENT:    "PERCENT",
	BANG:       "BANG",
	AMPERSAND:  "AMPERSAND",
	BAR:        "BAR",
	ARROW:      "ARROW",
	NUMBER:     "NUMBER",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	IDENT:      "IDENT",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is one lexical unit. Offset is the byte offset of the lexeme in the source.
type Token struct {
	Kind    Kind
	Lexeme  string
	Offset  int
	Literal any
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Offset, t.Literal)
}

func (t Token) Base() Token {
	return t
}
