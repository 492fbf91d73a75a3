package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/raysh454/reqs/internal/model"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage error")

// CLIArgs are the command-line arguments for one batch.
type CLIArgs struct {
	URLs    []string
	Method  string
	Headers []string

	// Data is nil when -d was not given, so an explicit empty body stays distinguishable.
	Data *string

	// Concurrency caps in-flight requests; 0 means unbounded.
	Concurrency int
	Timeout     time.Duration
	Compact     bool
	HistoryPath string
	LogLevel    string

	// HistoryShow > 0 or a HistoryBatch prints history entries instead of sending requests.
	HistoryShow  int
	HistoryBatch string
}

// ShowsHistory reports whether the invocation reads history rather than sending requests.
func (a *CLIArgs) ShowsHistory() bool {
	return a.HistoryShow > 0 || a.HistoryBatch != ""
}

type flagValues struct {
	method       string
	headers      []string
	data         string
	concurrency  int
	timeout      time.Duration
	compact      bool
	history      string
	historyShow  int
	historyBatch string
	logLevel     string
}

func newFlagSet() (*pflag.FlagSet, *flagValues) {
	v := &flagValues{}
	fs := pflag.NewFlagSet("reqs", pflag.ContinueOnError)
	fs.StringVarP(&v.method, "request", "X", string(model.MethodGet), "HTTP method: GET|POST|PATCH|PUT|DELETE")
	fs.StringArrayVarP(&v.headers, "header", "H", nil, `Request header "Name:Value" (repeatable)`)
	fs.StringVarP(&v.data, "data", "d", "", "Request body sent verbatim")
	fs.IntVarP(&v.concurrency, "concurrency", "c", 0, "Max requests in flight (0=unbounded)")
	fs.DurationVar(&v.timeout, "timeout", 0, "Per-request timeout (0=none)")
	fs.BoolVar(&v.compact, "compact", false, "Print each JSON document on one line")
	fs.StringVar(&v.history, "history", "", "Record outcomes in this SQLite database")
	fs.IntVar(&v.historyShow, "history-show", 0, "Print the N most recent history entries and exit (needs --history)")
	fs.StringVar(&v.historyBatch, "history-batch", "", "Print the history entries of one batch and exit (needs --history)")
	fs.StringVar(&v.logLevel, "log-level", "warn", "Log level for stderr: debug|info|warn|error")
	fs.SortFlags = false
	return fs, v
}

// Usage returns the help text.
func Usage() string {
	fs, _ := newFlagSet()
	var b strings.Builder
	b.WriteString("Usage: reqs [flags] URL [URL...]\n")
	b.WriteString("       reqs --history PATH (--history-show N | --history-batch ID)\n\n")
	b.WriteString("Sends one request per URL concurrently and prints each JSON response.\n\n")
	b.WriteString("Flags:\n")
	b.WriteString(fs.FlagUsages())
	b.WriteString("  -h, --help                 Show this help\n")
	return b.String()
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
// -h/--help returns pflag.ErrHelp; every other failure wraps ErrUsage.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs, v := newFlagSet()
	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	urls := fs.Args()
	if v.historyShow < 0 {
		return nil, fmt.Errorf("%w: --history-show must be >= 0", ErrUsage)
	}
	showing := v.historyShow > 0 || v.historyBatch != ""
	if showing && v.history == "" {
		return nil, fmt.Errorf("%w: --history-show and --history-batch require --history", ErrUsage)
	}
	if showing && len(urls) > 0 {
		return nil, fmt.Errorf("%w: URLs cannot be combined with --history-show or --history-batch", ErrUsage)
	}
	if len(urls) == 0 && !showing {
		return nil, fmt.Errorf("%w: at least one URL is required", ErrUsage)
	}
	if v.concurrency < 0 {
		return nil, fmt.Errorf("%w: --concurrency must be >= 0", ErrUsage)
	}
	if v.timeout < 0 {
		return nil, fmt.Errorf("%w: --timeout must be >= 0", ErrUsage)
	}

	out := &CLIArgs{
		URLs:         append([]string(nil), urls...),
		Method:       v.method,
		Headers:      append([]string(nil), v.headers...),
		Concurrency:  v.concurrency,
		Timeout:      v.timeout,
		Compact:      v.compact,
		HistoryPath:  v.history,
		HistoryShow:  v.historyShow,
		HistoryBatch: v.historyBatch,
		LogLevel:     v.logLevel,
	}
	if fs.Changed("data") {
		data := v.data
		out.Data = &data
	}
	return out, nil
}

// Spec validates the arguments into a RequestSpec.
func (a *CLIArgs) Spec() (*model.RequestSpec, error) {
	method, err := model.ParseMethod(a.Method)
	if err != nil {
		return nil, err
	}
	return model.NewRequestSpec(a.URLs, method, a.Headers, a.Data)
}
