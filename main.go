package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/spf13/cobra"
	"github.com/takoeight0821/exprcalc/config"
)

const version = "0.3.0"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	verbose    bool
	trace      bool
	noColor    bool
	maxDepth   int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "exprcalc [flags] [--] [expression...]",
		Short: "Evaluate arithmetic and boolean expressions",
		Long: `exprcalc evaluates expressions such as "2 + 3 * 4" or "true -> !false".

With arguments, the arguments are joined with spaces and evaluated once.
Without arguments, an interactive prompt reads one expression per line
until end of input or ".quit".

Put "--" before an expression that starts with "-".`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Locate(opts.configPath)
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			applyFlags(cmd, &opts, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.Verbose, stderr)
			if path == "" {
				log.Debugf("no config file found, using defaults")
			} else {
				log.Infof("loaded config from %s", path)
			}

			a := newApp(cfg, log, stdout, stderr)
			if opts.trace {
				a.runner.SetTrace(stdout)
			}

			if len(args) == 0 {
				return a.RunPrompt()
			}
			return a.RunOnce(strings.Join(args, " "))
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/"+config.RelPath+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline stages to stderr")
	flags.BoolVar(&opts.trace, "trace", false, "print tokens and syntax tree before each result")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth of an expression")

	return cmd
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
}

type syncWriter struct {
	io.Writer
}

func (syncWriter) Sync() error {
	return nil
}

func newLogger(verbose bool, w io.Writer) slog.Logger {
	if !verbose {
		return logger.NewNopLogger()
	}
	sw, ok := w.(logger.SyncWriter)
	if !ok {
		sw = syncWriter{w}
	}
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   sw,
		IncludeDebug: true,
	})
}
