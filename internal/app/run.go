package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/raysh454/reqs/internal/cli"
	"github.com/raysh454/reqs/internal/history"
	"github.com/raysh454/reqs/internal/logging"
	"github.com/raysh454/reqs/internal/report"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitSetup = 1
	ExitUsage = 2
)

// Run is the whole command: parse args, validate, wire components and send the
// batch. A batch that ran to completion exits ExitOK even if some requests failed.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	parsed, err := cli.ParseArgs(args)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(stdout, cli.Usage())
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "reqs: %v\n\n%s", err, cli.Usage())
		return ExitUsage
	}

	if parsed.ShowsHistory() {
		return showHistory(ctx, parsed, stdout, stderr)
	}

	spec, err := parsed.Spec()
	if err != nil {
		fmt.Fprintf(stderr, "reqs: %v\n", err)
		return ExitUsage
	}

	cfg, logger, err := configure(parsed, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "reqs: %v\n", err)
		return ExitUsage
	}

	a, err := NewApplication(cfg, stdout, logger)
	if err != nil {
		logger.Error("setup failed", logging.Field{Key: "error", Value: err})
		fmt.Fprintf(stderr, "reqs: %v\n", err)
		return ExitSetup
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close failed", logging.Field{Key: "error", Value: err})
		}
	}()

	if _, err := a.Execute(ctx, spec); err != nil {
		fmt.Fprintf(stderr, "reqs: %v\n", err)
		return ExitSetup
	}
	return ExitOK
}

func configure(parsed *cli.CLIArgs, stderr io.Writer) (*Config, logging.Logger, error) {
	cfg := DefaultConfig()
	cfg.ApplyArgs(parsed)
	cfg.LogCfg.Output = stderr

	logger, err := logging.New("reqs", cfg.LogCfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// showHistory prints recorded outcomes, either the most recent ones or those of one batch.
func showHistory(ctx context.Context, parsed *cli.CLIArgs, stdout, stderr io.Writer) int {
	cfg, logger, err := configure(parsed, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "reqs: %v\n", err)
		return ExitUsage
	}

	store, err := history.Open(cfg.HistoryPath, logger)
	if err != nil {
		fmt.Fprintf(stderr, "reqs: open history %s: %v\n", cfg.HistoryPath, err)
		return ExitSetup
	}
	defer store.Close()

	var entries []history.Entry
	if parsed.HistoryBatch != "" {
		entries, err = store.ListBatch(ctx, parsed.HistoryBatch)
	} else {
		entries, err = store.Recent(ctx, parsed.HistoryShow)
	}
	if err != nil {
		fmt.Fprintf(stderr, "reqs: %v\n", err)
		return ExitSetup
	}

	rep := report.NewReporter(stdout, cfg.ReportCfg)
	for _, e := range entries {
		if err := rep.WriteJSON(e); err != nil {
			fmt.Fprintf(stderr, "reqs: %v\n", err)
			return ExitSetup
		}
	}
	return ExitOK
}
