package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/exprcalc/token"
)

// Lex splits source into tokens terminated by an EOF token.
// It stops at the first error and returns no tokens in that case.
func Lex(source string) ([]token.Token, error) {
	l := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
	}

	for !l.isAtEnd() {
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Lexeme: "", Offset: l.current, Literal: nil})

	return l.tokens, nil
}

type lexer struct {
	source string
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

func (l *lexer) match(expected rune) bool {
	if l.isAtEnd() || l.peek() != expected {
		return false
	}
	l.advance()

	return true
}

func (l *lexer) addToken(kind token.Kind, literal any) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Offset: l.start, Literal: literal})
}

// LexError reports a character that starts no token.
type LexError struct {
	Offset int
	Char   rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("at %d: unexpected character %q", e.Offset, e.Char)
}

func (e *LexError) Pos() int {
	return e.Offset
}

// NumberError reports a numeric literal that does not fit a float64.
type NumberError struct {
	Offset int
	Lexeme string
	Err    error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("at %d: invalid number %s: %v", e.Offset, e.Lexeme, e.Err)
}

func (e *NumberError) Unwrap() error {
	return e.Err
}

func (e *NumberError) Pos() int {
	return e.Offset
}

func (l *lexer) scanToken() error {
	l.start = l.current
	char := l.advance()
	switch char {
	case ' ', '\r', '\t', '\n':
		// ignore whitespace
		return nil
	case '(':
		l.addToken(token.LEFTPAREN, nil)
	case ')':
		l.addToken(token.RIGHTPAREN, nil)
	case '+':
		l.addToken(token.PLUS, nil)
	case '-':
		if l.match('>') {
			l.addToken(token.ARROW, nil)
		} else {
			l.addToken(token.MINUS, nil)
		}
	case '*':
		l.addToken(token.STAR, nil)
	case '/':
		l.addToken(token.SLASH, nil)
	case '%':
		l.addToken(token.PERCENT, nil)
	case '!':
		l.addToken(token.BANG, nil)
	case '&':
		l.match('&')
		l.addToken(token.AMPERSAND, nil)
	case '|':
		l.match('|')
		l.addToken(token.BAR, nil)
	default:
		if isDigit(char) {
			return l.number()
		}
		if isAlpha(char) {
			l.identifier()

			return nil
		}

		return &LexError{Offset: l.start, Char: char}
	}

	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// number scans digits with at most one decimal point.
func (l *lexer) number() error {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.source[l.start:l.current]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return &NumberError{Offset: l.start, Lexeme: text, Err: err}
	}
	l.addToken(token.NUMBER, value)

	return nil
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	switch value := l.source[l.start:l.current]; value {
	case "true":
		l.addToken(token.TRUE, true)
	case "false":
		l.addToken(token.FALSE, false)
	default:
		if k, ok := getKeyword(value); ok {
			l.addToken(k, nil)
		} else {
			l.addToken(token.IDENT, nil)
		}
	}
}

func getKeyword(str string) (token.Kind, bool) {
	keywords := map[string]token.Kind{
		"and": token.AMPERSAND,
		"or":  token.BAR,
		"not": token.BANG,
	}

	if k, ok := keywords[str]; ok {
		return k, true
	}

	return token.IDENT, false
}
