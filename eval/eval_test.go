package eval_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/exprcalc/ast"
	"github.com/takoeight0821/exprcalc/eval"
	"github.com/takoeight0821/exprcalc/lexer"
	"github.com/takoeight0821/exprcalc/parser"
	"github.com/takoeight0821/exprcalc/token"
)

func completeEval(t *testing.T, input string) (eval.Value, error) {
	t.Helper()
	tokens, err := lexer.Lex(input)
	require.NoError(t, err, "Lex(%q)", input)
	node, err := parser.NewParser(tokens).ParseExpr()
	require.NoError(t, err, "ParseExpr(%q)", input)
	return eval.Eval(node)
}

func TestEval(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected eval.Value
	}{
		{"2 + 3 * 4", eval.Number(14)},
		{"(2 + 3) * 4", eval.Number(20)},
		{"- - 3", eval.Number(3)},
		{"3 - (2 + 5) + 2", eval.Number(-2)},
		{"1 / 4", eval.Number(0.25)},
		{"2 * (3 + 4) % 5", eval.Number(4)},
		{"-(1 - 3)", eval.Number(2)},
		{"-7 % -3", eval.Number(-1)},
		{"7 % -3", eval.Number(1)},
		{"0.5 + 0.25", eval.Number(0.75)},
		{"true", eval.Bool(true)},
		{"!true", eval.Bool(false)},
		{"true & false", eval.Bool(false)},
		{"true | false", eval.Bool(true)},
		{"true -> false", eval.Bool(false)},
		{"true -> true", eval.Bool(true)},
		{"false -> false", eval.Bool(true)},
		{"false -> true", eval.Bool(true)},
		{"true -> true -> false", eval.Bool(false)},
		{"(true -> false) -> false", eval.Bool(true)},
		{"!(true & false) | false", eval.Bool(true)},
	}

	for _, tc := range testcases {
		actual, err := completeEval(t, tc.input)
		if assert.NoError(t, err, "Eval(%q)", tc.input) {
			assert.Equal(t, tc.expected, actual, "Eval(%q)", tc.input)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input string
		kind  error
		op    string
	}{
		{"5 / 0", eval.ErrDivisionByZero, "/"},
		{"5 % 0", eval.ErrDivisionByZero, "%"},
		{"1 / (1 - 1)", eval.ErrDivisionByZero, "/"},
		{"1 % -0", eval.ErrDivisionByZero, "%"},
		{"true + 1", eval.ErrTypeMismatch, "+"},
		{"1 - false", eval.ErrTypeMismatch, "-"},
		{"true * true", eval.ErrTypeMismatch, "*"},
		{"1 & 2", eval.ErrTypeMismatch, "&"},
		{"1 | true", eval.ErrTypeMismatch, "|"},
		{"1 -> 2", eval.ErrTypeMismatch, "->"},
		{"-true", eval.ErrTypeMismatch, "-"},
		{"!0", eval.ErrTypeMismatch, "!"},
		{"(1 / 0) + true", eval.ErrDivisionByZero, "/"},
	}

	for _, tc := range testcases {
		actual, err := completeEval(t, tc.input)
		assert.Nil(t, actual, "Eval(%q)", tc.input)
		assert.ErrorIs(t, err, tc.kind, "Eval(%q)", tc.input)

		var evalErr *eval.EvalError
		if assert.True(t, errors.As(err, &evalErr), "Eval(%q) returned %v", tc.input, err) {
			assert.Equal(t, tc.op, evalErr.Op, "Eval(%q)", tc.input)
		}
	}
}

func TestTypeMismatchReportsOperands(t *testing.T) {
	t.Parallel()

	_, err := completeEval(t, "true + 1")
	var evalErr *eval.EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, []eval.Value{eval.Bool(true), eval.Number(1)}, evalErr.Operands)
	assert.EqualError(t, err, "type mismatch: `+` cannot be applied to boolean and number")
}

func TestParenIsTransparent(t *testing.T) {
	t.Parallel()

	lit := &ast.Literal{Token: token.Token{Kind: token.NUMBER, Lexeme: "4", Literal: 4.0}}
	inner, err := eval.Eval(lit)
	require.NoError(t, err)
	wrapped, err := eval.Eval(&ast.Paren{Expr: &ast.Paren{Expr: lit}})
	require.NoError(t, err)
	assert.Equal(t, inner, wrapped)
}

func TestEvalIsIdempotent(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("(1 + 2) * 3 - 4 / 8")
	require.NoError(t, err)
	node, err := parser.NewParser(tokens).ParseExpr()
	require.NoError(t, err)

	first, err := eval.Eval(node)
	require.NoError(t, err)
	second, err := eval.Eval(node)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "(binary (binary (paren (binary (literal 1) + (literal 2))) * (literal 3)) - (binary (literal 4) / (literal 8)))", node.String())
}

func TestNumberString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		value    eval.Number
		expected string
	}{
		{14, "14"},
		{-2, "-2"},
		{0, "0"},
		{eval.Number(math.Copysign(0, -1)), "0"},
		{3.5, "3.5"},
		{-0.125, "-0.125"},
		{1e21, "1000000000000000000000"},
		{eval.Number(math.Inf(1)), "+Inf"},
		{eval.Number(math.Inf(-1)), "-Inf"},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.expected, tc.value.String())
	}
	assert.Equal(t, "true", eval.Bool(true).String())
	assert.Equal(t, "false", eval.Bool(false).String())
}
