package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/raysh454/reqs/internal/model"
	"github.com/raysh454/reqs/internal/report"
)

func TestReport_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  report.Config
		want string
	}{
		{"indented", report.DefaultConfig(), "{\n  \"a\": 1\n}\n"},
		{"compact", report.Config{Compact: true}, "{\"a\":1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			r := report.NewReporter(&buf, tt.cfg)
			o := model.Outcome{URL: "http://x", Method: model.MethodGet, Kind: model.OutcomeSuccess, Body: json.RawMessage(`{"a": 1}`)}
			if err := r.Report(o); err != nil {
				t.Fatalf("Report: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReport_Failure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := report.NewReporter(&buf, report.Config{Compact: true})

	transport := model.Outcome{
		URL:    "http://down",
		Method: model.MethodPost,
		Kind:   model.OutcomeTransportError,
		Err:    errors.New("transport error: connection refused"),
	}
	status := model.Outcome{
		URL:        "http://teapot",
		Method:     model.MethodGet,
		Kind:       model.OutcomeStatusError,
		StatusCode: 418,
		Body:       json.RawMessage(`{"error":"stout"}`),
		Err:        errors.New("unexpected status 418"),
	}
	if err := r.Report(transport); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if err := r.Report(status); err != nil {
		t.Fatalf("Report: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}

	want := []string{
		`{"url":"http://down","method":"POST","error":"transport error: connection refused","kind":"transport_error"}`,
		`{"url":"http://teapot","method":"GET","error":"unexpected status 418","kind":"status_error","status":418,"body":{"error":"stout"}}`,
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %s\nwant     %s", i, lines[i], want[i])
		}
	}
}

func TestReport_ConcurrentWritesDoNotInterleave(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := report.NewReporter(&buf, report.Config{Compact: true})

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := fmt.Sprintf(`{"i":%d,"pad":"%s"}`, i, strings.Repeat("x", 512))
			_ = r.Report(model.Outcome{URL: "http://x", Kind: model.OutcomeSuccess, Body: json.RawMessage(body)})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != n {
		t.Fatalf("got %d lines, want %d", len(lines), n)
	}
	for _, l := range lines {
		if !json.Valid([]byte(l)) {
			t.Fatalf("interleaved line: %q", l)
		}
	}
}

func TestReport_InvalidBodyIsAnError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := report.NewReporter(&buf, report.DefaultConfig())
	err := r.Report(model.Outcome{URL: "http://x", Kind: model.OutcomeSuccess, Body: json.RawMessage(`{`)})
	if err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Errorf("partial output written: %q", buf.String())
	}
}

func TestWriteJSON_UsesReporterFormatting(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := report.NewReporter(&buf, report.Config{Compact: true})
	if err := r.WriteJSON(map[string]int{"n": 1}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if buf.String() != "{\"n\":1}\n" {
		t.Errorf("output = %q", buf.String())
	}
}
