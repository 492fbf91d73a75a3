package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/raysh454/reqs/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"", false},
		{"warning", false},
		{"error", false},
		{"verbose", true},
	}
	for _, tt := range tests {
		if _, err := logging.ParseLevel(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestLogrusLogger_WritesJSONWithFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := logging.New("dispatcher", logging.Config{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	child := logger.With(logging.Field{Key: "batch", Value: "b1"})
	child.Info("request done",
		logging.Field{Key: "url", Value: "http://x/get"},
		logging.Field{Key: "error", Value: errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "request done" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["component"] != "dispatcher" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["batch"] != "b1" {
		t.Errorf("batch = %v", entry["batch"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestLogrusLogger_LevelFilters(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := logging.New("", logging.Config{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages were written: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := logging.New("x", logging.Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
