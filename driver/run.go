package driver

import (
	"fmt"
	"io"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/takoeight0821/exprcalc/ast"
	"github.com/takoeight0821/exprcalc/eval"
	"github.com/takoeight0821/exprcalc/lexer"
	"github.com/takoeight0821/exprcalc/parser"
)

// Runner evaluates one input at a time. It keeps no state between inputs.
type Runner struct {
	log      slog.Logger
	trace    io.Writer
	maxDepth int
}

// NewRunner returns a runner that logs pipeline stages to log.
// A nil log discards them.
func NewRunner(log slog.Logger) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Runner{log: log, maxDepth: parser.DefaultMaxDepth}
}

// SetMaxDepth changes the parser nesting limit.
func (r *Runner) SetMaxDepth(n int) {
	r.maxDepth = n
}

// SetTrace makes RunSource dump the token stream and the tree to w before evaluating.
func (r *Runner) SetTrace(w io.Writer) {
	r.trace = w
}

// RunSource lexes, parses and evaluates source.
// Errors are prefixed with the stage that produced them.
func (r *Runner) RunSource(source string) (eval.Value, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	r.log.Debugf("lexed %d tokens from %q", len(tokens), source)

	p := parser.NewParser(tokens)
	p.SetMaxDepth(r.maxDepth)
	node, err := p.ParseExpr()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	r.log.Debugf("parsed tree of depth %d: %v", ast.Depth(node), node)

	if r.trace != nil {
		for _, tok := range tokens {
			fmt.Fprintf(r.trace, "token %v\n", tok)
		}
		fmt.Fprintf(r.trace, "ast   %v\n", node)
	}

	value, err := eval.Eval(node)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	r.log.Debugf("evaluated to %v", value)

	return value, nil
}

// Evaluate runs text through a fresh default Runner.
func Evaluate(text string) (eval.Value, error) {
	return NewRunner(nil).RunSource(text)
}
