package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/precedence/audit"
	"github.com/katalvlaran/precedence/config"
	"github.com/katalvlaran/precedence/ingest"
	"github.com/katalvlaran/precedence/logger"
)

// app carries flag values and the state built from them before a
// subcommand runs.
type app struct {
	configPath string
	logLevel   string
	strategy   string
	format     string
	bestEffort bool
	noColor    bool

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "precedence",
		Short: "Validate and repair sequences against precedence rules",
		Long: `precedence reads a block of "before|after" rules followed by
comma-separated updates, reports which updates respect every applicable
rule, repairs the ones that do not, and sums the middle item of each group.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	f.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&a.strategy, "strategy", "", "repair strategy: topological or comparator")
	f.StringVar(&a.format, "format", "", "input format: text or yaml")
	f.BoolVar(&a.bestEffort, "best-effort", false, "keep partial repairs when rules are cyclic")
	f.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newCheckCmd(a), newRepairCmd(a), newScoreCmd(a))

	return root
}

// setup loads config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.strategy != "" {
		cfg.Strategy = a.strategy
	}
	if a.format != "" {
		cfg.Format = a.format
	}
	if a.bestEffort {
		cfg.BestEffort = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.log, err = logger.New(cmd.ErrOrStderr(), lvl, cfg.Log.Format)
	if err != nil {
		return err
	}
	if a.noColor {
		color.NoColor = true
	}
	a.cfg = cfg

	return nil
}

// run reads the input named by path ("-" for stdin) and checks every update.
func (a *app) run(cmd *cobra.Command, path string) (*ingest.Input, *audit.Report, error) {
	in, err := a.read(cmd.InOrStdin(), path)
	if err != nil {
		return nil, nil, err
	}
	a.log.Debug().
		Str("input", path).
		Int("rules", len(in.Rules)).
		Int("updates", len(in.Updates)).
		Msg("input parsed")

	opts := []audit.Option{
		audit.WithWorkers(a.cfg.Workers),
		audit.WithStrategy(a.cfg.ResolverStrategy()),
		audit.WithLogger(a.log),
	}
	if a.cfg.BestEffort {
		opts = append(opts, audit.WithBestEffort())
	}
	checker, err := audit.NewChecker(in.Index(), opts...)
	if err != nil {
		return nil, nil, err
	}
	rep, err := checker.Check(cmd.Context(), in.Updates)
	if err != nil {
		return nil, nil, err
	}

	return in, rep, nil
}

func (a *app) read(stdin io.Reader, path string) (*ingest.Input, error) {
	if path == "-" {
		return ingest.Read(stdin, a.cfg.InputFormat())
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer fh.Close()

	return ingest.Read(fh, a.cfg.InputFormat())
}
