// Package eval computes the value of a parsed expression.
package eval

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/takoeight0821/exprcalc/ast"
	"github.com/takoeight0821/exprcalc/token"
)

var (
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrDivisionByZero = errors.New("division by zero")
)

// EvalError reports why an operator could not be applied.
// Kind is ErrTypeMismatch or ErrDivisionByZero.
type EvalError struct {
	Kind     error
	Op       string
	Operands []Value
}

func (e *EvalError) Error() string {
	if !errors.Is(e.Kind, ErrTypeMismatch) {
		return fmt.Sprintf("%v in `%s`", e.Kind, e.Op)
	}

	types := make([]string, len(e.Operands))
	for i, v := range e.Operands {
		types[i] = v.TypeName()
	}
	return fmt.Sprintf("%v: `%s` cannot be applied to %s", e.Kind, e.Op, strings.Join(types, " and "))
}

func (e *EvalError) Unwrap() error {
	return e.Kind
}

func typeMismatch(op token.Token, operands ...Value) error {
	return &EvalError{Kind: ErrTypeMismatch, Op: op.Lexeme, Operands: operands}
}

func divisionByZero(op token.Token) error {
	return &EvalError{Kind: ErrDivisionByZero, Op: op.Lexeme}
}

// Eval walks node bottom-up: operands are evaluated before their operator is applied.
func Eval(node ast.Node) (Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return evalLiteral(n.Token)
	case *ast.Paren:
		return Eval(n.Expr)
	case *ast.Unary:
		operand, err := Eval(n.Operand)
		if err != nil {
			return nil, err
		}
		return evalUnary(n.Op, operand)
	case *ast.Binary:
		left, err := Eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Eval(n.Right)
		if err != nil {
			return nil, err
		}
		return evalBinary(n.Op, left, right)
	default:
		return nil, fmt.Errorf("unexpected node: %v", node)
	}
}

func evalLiteral(tok token.Token) (Value, error) {
	switch v := tok.Literal.(type) {
	case float64:
		return Number(v), nil
	case bool:
		return Bool(v), nil
	default:
		return nil, fmt.Errorf("unexpected literal: %v", tok)
	}
}

func evalUnary(op token.Token, operand Value) (Value, error) {
	//exhaustive:ignore
	switch op.Kind {
	case token.MINUS:
		if n, ok := operand.(Number); ok {
			return -n, nil
		}
	case token.BANG:
		if b, ok := operand.(Bool); ok {
			return !b, nil
		}
	default:
		return nil, fmt.Errorf("unexpected unary operator: %v", op)
	}
	return nil, typeMismatch(op, operand)
}

func evalBinary(op token.Token, left, right Value) (Value, error) {
	//exhaustive:ignore
	switch op.Kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		lhs, lok := left.(Number)
		rhs, rok := right.(Number)
		if !lok || !rok {
			return nil, typeMismatch(op, left, right)
		}
		return arith(op, lhs, rhs)
	case token.AMPERSAND, token.BAR, token.ARROW:
		lhs, lok := left.(Bool)
		rhs, rok := right.(Bool)
		if !lok || !rok {
			return nil, typeMismatch(op, left, right)
		}
		return logic(op, lhs, rhs), nil
	default:
		return nil, fmt.Errorf("unexpected binary operator: %v", op)
	}
}

func arith(op token.Token, lhs, rhs Number) (Value, error) {
	//exhaustive:ignore
	switch op.Kind {
	case token.PLUS:
		return lhs + rhs, nil
	case token.MINUS:
		return lhs - rhs, nil
	case token.STAR:
		return lhs * rhs, nil
	case token.SLASH:
		if rhs == 0 {
			return nil, divisionByZero(op)
		}
		return lhs / rhs, nil
	default:
		if rhs == 0 {
			return nil, divisionByZero(op)
		}
		// truncated remainder: the result takes the sign of lhs
		return Number(math.Mod(float64(lhs), float64(rhs))), nil
	}
}

func logic(op token.Token, lhs, rhs Bool) Value {
	//exhaustive:ignore
	switch op.Kind {
	case token.AMPERSAND:
		return lhs && rhs
	case token.BAR:
		return lhs || rhs
	default:
		// a -> b is !a | b
		return !lhs || rhs
	}
}
