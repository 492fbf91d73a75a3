package app

import (
	"github.com/raysh454/reqs/internal/cli"
	"github.com/raysh454/reqs/internal/dispatch"
	"github.com/raysh454/reqs/internal/logging"
	"github.com/raysh454/reqs/internal/report"
	"github.com/raysh454/reqs/internal/webclient"
)

// Config groups the configuration of every component one run wires together.
// CLI flags are applied on top of DefaultConfig by ApplyArgs.
type Config struct {
	// WebClient configuration
	WebClientCfg webclient.Config

	// Dispatcher configuration
	DispatchCfg dispatch.Config

	// Output rendering
	ReportCfg report.Config

	// HistoryPath enables the SQLite history store when non-empty.
	HistoryPath string

	LogCfg logging.Config
}

// DefaultConfig returns a Config populated with the defaults of each component.
func DefaultConfig() *Config {
	return &Config{
		WebClientCfg: webclient.DefaultConfig(),
		DispatchCfg:  dispatch.DefaultConfig(),
		ReportCfg:    report.DefaultConfig(),
		LogCfg:       logging.DefaultConfig(),
	}
}

// ApplyArgs overrides defaults with the values given on the command line.
func (c *Config) ApplyArgs(args *cli.CLIArgs) {
	if args == nil {
		return
	}
	c.WebClientCfg.Timeout = args.Timeout
	c.DispatchCfg.MaxConcurrency = args.Concurrency
	c.ReportCfg.Compact = args.Compact
	c.HistoryPath = args.HistoryPath
	if args.LogLevel != "" {
		c.LogCfg.Level = args.LogLevel
	}
}
