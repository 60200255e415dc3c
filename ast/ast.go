package ast

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/exprcalc/token"
)

// AST

// Node is an immutable expression tree node. Each node owns its children.
type Node interface {
	fmt.Stringer
	// Base returns the token the node is anchored to, used for error positions.
	Base() token.Token
}

// Literal is a NUMBER, TRUE or FALSE token.
type Literal struct {
	token.Token
}

func (l Literal) String() string {
	return parenthesize("literal", lexeme(l.Token)).String()
}

func (l *Literal) Base() token.Token {
	return l.Token
}

var _ Node = &Literal{}

// Unary is `-` or `!` applied to an operand.
type Unary struct {
	Op      token.Token
	Operand Node
}

func (u Unary) String() string {
	return parenthesize("unary", lexeme(u.Op), u.Operand).String()
}

func (u *Unary) Base() token.Token {
	return u.Op
}

var _ Node = &Unary{}

type Binary struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (b Binary) String() string {
	return parenthesize("binary", b.Left, lexeme(b.Op), b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Op
}

var _ Node = &Binary{}

// Paren is a parenthesized expression. It only affects how the tree is shaped.
type Paren struct {
	Expr Node
}

func (p Paren) String() string {
	return parenthesize("paren", p.Expr).String()
}

func (p *Paren) Base() token.Token {
	return p.Expr.Base()
}

var _ Node = &Paren{}

type lexeme token.Token

func (l lexeme) String() string {
	return l.Lexeme
}

// parenthesize takes a head string and a variadic number of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is parenthesized and separated by a space.
// If the head string is not empty, it is added at the beginning of the string.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func Depth(n Node) int {
	switch n := n.(type) {
	case *Unary:
		return 1 + Depth(n.Operand)
	case *Binary:
		return 1 + max(Depth(n.Left), Depth(n.Right))
	case *Paren:
		return 1 + Depth(n.Expr)
	default:
		return 1
	}
}
