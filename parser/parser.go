// Package parser is a recursive-descent parser for arithmetic and boolean expressions.
package parser

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/exprcalc/ast"
	"github.com/takoeight0821/exprcalc/token"
	"github.com/takoeight0821/exprcalc/utils"
)

// DefaultMaxDepth bounds how deeply rules may recurse into themselves.
const DefaultMaxDepth = 512

type Parser struct {
	tokens   []token.Token
	current  int
	depth    int
	maxDepth int
}

// NewParser returns a parser over tokens, which must end with an EOF token.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, current: 0, depth: 0, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth changes the nesting limit. Values below 1 are ignored.
func (p *Parser) SetMaxDepth(n int) {
	if n >= 1 {
		p.maxDepth = n
	}
}

// ParseExpr parses a single expression that must span the whole token stream.
func (p *Parser) ParseExpr() (ast.Node, error) {
	p.current = 0
	p.depth = 0
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Kind != token.EOF {
		p.tokens = append(p.tokens, token.Token{Kind: token.EOF})
	}

	node, err := p.implication()
	if err != nil {
		return nil, err
	}
	if !p.IsAtEnd() {
		return nil, unexpectedToken(p.peek(), "end of input")
	}

	return node, nil
}

// implication = disjunction ( "->" implication )? ;
func (p *Parser) implication() (ast.Node, error) {
	left, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	if !p.match(token.ARROW) {
		return left, nil
	}

	op := p.advance()
	if err := p.enter(op); err != nil {
		return nil, err
	}
	defer p.leave()

	right, err := p.implication()
	if err != nil {
		return nil, err
	}

	return &ast.Binary{Left: left, Op: op, Right: right}, nil
}

// disjunction = conjunction ( "|" conjunction )* ;
func (p *Parser) disjunction() (ast.Node, error) {
	return p.binary(p.conjunction, token.BAR)
}

// conjunction = negation ( "&" negation )* ;
func (p *Parser) conjunction() (ast.Node, error) {
	return p.binary(p.negation, token.AMPERSAND)
}

// negation = "!" negation | additive ;
func (p *Parser) negation() (ast.Node, error) {
	if !p.match(token.BANG) {
		return p.additive()
	}

	return p.prefix(p.negation)
}

// additive = multiplicative ( ( "+" | "-" ) multiplicative )* ;
func (p *Parser) additive() (ast.Node, error) {
	return p.binary(p.multiplicative, token.PLUS, token.MINUS)
}

// multiplicative = unary ( ( "*" | "/" | "%" ) unary )* ;
func (p *Parser) multiplicative() (ast.Node, error) {
	return p.binary(p.unary, token.STAR, token.SLASH, token.PERCENT)
}

// unary = "-" unary | primary ;
func (p *Parser) unary() (ast.Node, error) {
	if !p.match(token.MINUS) {
		return p.primary()
	}

	return p.prefix(p.unary)
}

// primary = NUMBER | "true" | "false" | "(" implication ")" ;
func (p *Parser) primary() (ast.Node, error) {
	//exhaustive:ignore
	switch tok := p.peek(); tok.Kind {
	case token.NUMBER, token.TRUE, token.FALSE:
		p.advance()

		return &ast.Literal{Token: tok}, nil
	case token.LEFTPAREN:
		p.advance()
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()

		expr, err := p.implication()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN, "`)`"); err != nil {
			return nil, err
		}

		return &ast.Paren{Expr: expr}, nil
	default:
		return nil, unexpectedToken(tok, "number", "`true`", "`false`", "`(`")
	}
}

// binary parses a left-associative chain of operand separated by any of ops.
func (p *Parser) binary(operand func() (ast.Node, error), ops ...token.Kind) (ast.Node, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

// prefix consumes a prefix operator and parses its operand with rule.
func (p *Parser) prefix(rule func() (ast.Node, error)) (ast.Node, error) {
	op := p.advance()
	if err := p.enter(op); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := rule()
	if err != nil {
		return nil, err
	}

	return &ast.Unary{Op: op, Operand: operand}, nil
}

func (p *Parser) enter(where token.Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return &ParseError{Where: where, Err: NestingError{Limit: p.maxDepth}}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) match(kinds ...token.Kind) bool {
	if p.IsAtEnd() {
		return false
	}
	for _, kind := range kinds {
		if p.peek().Kind == kind {
			return true
		}
	}

	return false
}

func (p *Parser) consume(kind token.Kind, expected string) (token.Token, error) {
	if p.match(kind) {
		return p.advance(), nil
	}

	return p.peek(), unexpectedToken(p.peek(), expected)
}

// ParseError reports where parsing stopped.
type ParseError struct {
	Where token.Token
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", utils.Where(e.Where), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Pos returns the byte offset of the offending token.
func (e *ParseError) Pos() int {
	return e.Where.Offset
}

type UnexpectedTokenError struct {
	Expected []string
	Found    token.Token
}

func (e UnexpectedTokenError) Error() string {
	return "expected " + strings.Join(e.Expected, ", ") + ", found " + utils.Describe(e.Found)
}

type NestingError struct {
	Limit int
}

func (e NestingError) Error() string {
	return fmt.Sprintf("expression nested deeper than %d levels", e.Limit)
}

func unexpectedToken(t token.Token, expected ...string) error {
	return &ParseError{Where: t, Err: UnexpectedTokenError{Expected: expected, Found: t}}
}
