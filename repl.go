package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jcgregorio/slog"
	"github.com/mattn/go-runewidth"
	"github.com/peterh/liner"
	"github.com/takoeight0821/exprcalc/config"
	"github.com/takoeight0821/exprcalc/driver"
	"github.com/takoeight0821/exprcalc/utils"
)

// errReported is returned once an evaluation error has been shown to the user.
var errReported = errors.New("evaluation failed")

type app struct {
	cfg    *config.Config
	log    slog.Logger
	runner *driver.Runner
	stdout io.Writer
	stderr io.Writer

	result  *color.Color
	failure *color.Color
}

func newApp(cfg *config.Config, log slog.Logger, stdout, stderr io.Writer) *app {
	runner := driver.NewRunner(log)
	runner.SetMaxDepth(cfg.MaxDepth)

	a := &app{
		cfg:     cfg,
		log:     log,
		runner:  runner,
		stdout:  stdout,
		stderr:  stderr,
		result:  color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}
	if cfg.NoColor {
		a.result.DisableColor()
		a.failure.DisableColor()
	}
	return a
}

// RunOnce evaluates a single expression given on the command line.
func (a *app) RunOnce(input string) error {
	if !a.evaluate(input, true, 0) {
		return errReported
	}
	return nil
}

// evaluate prints the value of input, or the error with a caret under its position.
// indent is the display width of whatever precedes input on the user's terminal.
func (a *app) evaluate(input string, echo bool, indent int) bool {
	value, err := a.runner.RunSource(input)
	if err == nil {
		a.result.Fprintf(a.stdout, "    = %s\n", value)
		return true
	}

	var positioned utils.Positioned
	if errors.As(err, &positioned) {
		if echo {
			fmt.Fprintln(a.stderr, input)
		}
		fmt.Fprintln(a.stderr, caret(input, positioned.Pos(), indent))
	}
	a.failure.Fprintf(a.stderr, "error: %v\n", err)

	return false
}

// caret returns a line with `^` under the display column of byte offset pos in input.
func caret(input string, pos, indent int) string {
	if pos > len(input) {
		pos = len(input)
	}
	return strings.Repeat(" ", indent+runewidth.StringWidth(input[:pos])) + "^"
}

// lineReader is the part of *liner.State the prompt loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// RunPrompt runs the interactive loop with line editing and persistent history.
func (a *app) RunPrompt() error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	history := a.cfg.HistoryFile
	defer func() {
		if history != "" {
			a.saveHistory(line, history)
		}
		line.Close()
	}()

	if history != "" {
		if f, err := os.Open(history); err == nil {
			defer f.Close()
			if _, err := line.ReadHistory(f); err != nil {
				a.log.Warningf("failed to read history %s: %v", history, err)
			}
		}
	}

	return a.loop(line)
}

func (a *app) saveHistory(line *liner.State, history string) {
	if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
		a.log.Warningf("failed to create history directory: %v", err)
		return
	}
	f, err := os.Create(history)
	if err != nil {
		a.log.Warningf("failed to write history %s: %v", history, err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		a.log.Warningf("failed to write history %s: %v", history, err)
	}
}

// loop evaluates one line at a time until end of input or a quit command.
// Evaluation errors are reported and do not end the loop.
func (a *app) loop(line lineReader) error {
	indent := runewidth.StringWidth(a.cfg.Prompt)
	for {
		input, err := line.Prompt(a.cfg.Prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(a.stdout)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			return err
		}

		switch strings.TrimSpace(input) {
		case "":
			continue
		case ".quit", ".exit":
			return nil
		}

		line.AppendHistory(input)
		a.evaluate(input, false, indent)
	}
}
