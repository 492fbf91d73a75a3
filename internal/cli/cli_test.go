package cli_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/raysh454/reqs/internal/cli"
	"github.com/raysh454/reqs/internal/model"
)

func TestParseArgs_Defaults(t *testing.T) {
	t.Parallel()

	args, err := cli.ParseArgs([]string{"http://localhost:9999/get"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !reflect.DeepEqual(args.URLs, []string{"http://localhost:9999/get"}) {
		t.Errorf("URLs = %v", args.URLs)
	}
	if args.Method != "GET" {
		t.Errorf("Method = %q", args.Method)
	}
	if args.Data != nil {
		t.Errorf("Data = %q, want nil", *args.Data)
	}
	if len(args.Headers) != 0 || args.Concurrency != 0 || args.Timeout != 0 || args.Compact || args.HistoryPath != "" {
		t.Errorf("unexpected non-defaults: %+v", args)
	}
	if args.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", args.LogLevel)
	}
}

func TestParseArgs_AllFlags(t *testing.T) {
	t.Parallel()

	args, err := cli.ParseArgs([]string{
		"-X", "POST",
		"-H", "Content-Type:application/json",
		"--header", "X-A: 1",
		"-d", `{"key1":"value1"}`,
		"http://a/post",
		"-c", "4",
		"--timeout", "2s",
		"--compact",
		"--history", "/tmp/h.db",
		"--log-level", "debug",
		"http://b/post",
	})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}

	if !reflect.DeepEqual(args.URLs, []string{"http://a/post", "http://b/post"}) {
		t.Errorf("URLs = %v", args.URLs)
	}
	if args.Method != "POST" {
		t.Errorf("Method = %q", args.Method)
	}
	if !reflect.DeepEqual(args.Headers, []string{"Content-Type:application/json", "X-A: 1"}) {
		t.Errorf("Headers = %v", args.Headers)
	}
	if args.Data == nil || *args.Data != `{"key1":"value1"}` {
		t.Errorf("Data = %v", args.Data)
	}
	if args.Concurrency != 4 || args.Timeout != 2*time.Second || !args.Compact {
		t.Errorf("args = %+v", args)
	}
	if args.HistoryPath != "/tmp/h.db" || args.LogLevel != "debug" {
		t.Errorf("args = %+v", args)
	}
}

func TestParseArgs_HeaderValueWithComma(t *testing.T) {
	t.Parallel()

	// StringArray must not split on commas the way StringSlice would.
	args, err := cli.ParseArgs([]string{"-H", "Accept: a/b, c/d", "http://x"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !reflect.DeepEqual(args.Headers, []string{"Accept: a/b, c/d"}) {
		t.Errorf("Headers = %v", args.Headers)
	}
}

func TestParseArgs_EmptyDataIsPresent(t *testing.T) {
	t.Parallel()

	args, err := cli.ParseArgs([]string{"-d", "", "http://x"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.Data == nil || *args.Data != "" {
		t.Errorf("Data = %v, want pointer to empty string", args.Data)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no urls", []string{"-X", "GET"}},
		{"unknown flag", []string{"--nope", "http://x"}},
		{"missing flag value", []string{"http://x", "-X"}},
		{"negative concurrency", []string{"-c", "-1", "http://x"}},
		{"bad concurrency", []string{"-c", "many", "http://x"}},
		{"negative timeout", []string{"--timeout", "-1s", "http://x"}},
		{"history-show without history", []string{"--history-show", "5"}},
		{"history-batch without history", []string{"--history-batch", "abc"}},
		{"negative history-show", []string{"--history", "h.db", "--history-show", "-1"}},
		{"history-show with urls", []string{"--history", "h.db", "--history-show", "5", "http://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cli.ParseArgs(tt.args)
			if !errors.Is(err, cli.ErrUsage) {
				t.Errorf("error = %v, want ErrUsage", err)
			}
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	t.Parallel()
	for _, a := range []string{"-h", "--help"} {
		if _, err := cli.ParseArgs([]string{a}); !errors.Is(err, pflag.ErrHelp) {
			t.Errorf("%s: error = %v, want ErrHelp", a, err)
		}
	}
}

func TestUsage_ListsFlags(t *testing.T) {
	t.Parallel()
	u := cli.Usage()
	for _, want := range []string{"--request", "--header", "--data", "--concurrency", "--compact", "--history", "--help"} {
		if !strings.Contains(u, want) {
			t.Errorf("usage missing %s", want)
		}
	}
}

func TestCLIArgs_Spec(t *testing.T) {
	t.Parallel()

	args, err := cli.ParseArgs([]string{"-X", "patch", "-H", "A:1", "-d", "x", "http://x/patch"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	spec, err := args.Spec()
	if err != nil {
		t.Fatalf("Spec: %v", err)
	}
	if spec.Method() != model.MethodPatch {
		t.Errorf("Method = %q", spec.Method())
	}
	if body, ok := spec.Body(); !ok || body != "x" {
		t.Errorf("Body = %q, %v", body, ok)
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad method", []string{"-X", "HEAD", "http://x"}, model.ErrUnsupportedMethod},
		{"malformed header", []string{"-H", "NoColon", "http://x"}, model.ErrMalformedHeader},
		{"relative url", []string{"/just/a/path"}, model.ErrInvalidURL},
	}
	for _, tt := range tests {
		args, err := cli.ParseArgs(tt.args)
		if err != nil {
			t.Fatalf("%s: ParseArgs: %v", tt.name, err)
		}
		if _, err := args.Spec(); !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestParseArgs_HistoryShowNeedsNoURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args      []string
		wantShow  int
		wantBatch string
	}{
		{[]string{"--history", "h.db", "--history-show", "5"}, 5, ""},
		{[]string{"--history", "h.db", "--history-batch", "b-1"}, 0, "b-1"},
	}
	for _, tt := range tests {
		args, err := cli.ParseArgs(tt.args)
		if err != nil {
			t.Fatalf("ParseArgs(%v): %v", tt.args, err)
		}
		if !args.ShowsHistory() || args.HistoryShow != tt.wantShow || args.HistoryBatch != tt.wantBatch {
			t.Errorf("ParseArgs(%v) = %+v", tt.args, args)
		}
		if len(args.URLs) != 0 {
			t.Errorf("URLs = %v", args.URLs)
		}
	}

	plain, err := cli.ParseArgs([]string{"--history", "h.db", "http://x"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if plain.ShowsHistory() {
		t.Error("recording history alone should not switch to show mode")
	}
}
