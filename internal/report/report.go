package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/raysh454/reqs/internal/model"
)

// Config controls how outcomes are rendered.
type Config struct {
	// Compact prints each document on a single line instead of indenting it.
	Compact bool
	Indent  string
}

func DefaultConfig() Config {
	return Config{Indent: "  "}
}

// failure is the document printed for an outcome that did not succeed.
type failure struct {
	URL    string            `json:"url"`
	Method model.Method      `json:"method"`
	Error  string            `json:"error"`
	Kind   model.OutcomeKind `json:"kind"`
	Status int               `json:"status,omitempty"`
	Body   json.RawMessage   `json:"body,omitempty"`
}

// Reporter writes one JSON document per outcome. It is safe for concurrent use.
type Reporter struct {
	mu  sync.Mutex
	w   io.Writer
	cfg Config
}

func NewReporter(w io.Writer, cfg Config) *Reporter {
	if cfg.Indent == "" && !cfg.Compact {
		cfg.Indent = DefaultConfig().Indent
	}
	return &Reporter{w: w, cfg: cfg}
}

// Report renders o and writes it followed by a newline in a single write.
func (r *Reporter) Report(o model.Outcome) error {
	doc, err := r.render(o)
	if err != nil {
		return fmt.Errorf("render outcome for %s: %w", o.URL, err)
	}
	if err := r.write(doc); err != nil {
		return fmt.Errorf("write outcome for %s: %w", o.URL, err)
	}
	return nil
}

// WriteJSON marshals v and writes it with the same formatting as Report.
func (r *Reporter) WriteJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	doc, err := r.format(raw)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return r.write(doc)
}

func (r *Reporter) write(doc []byte) error {
	doc = append(doc, '\n')
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.w.Write(doc)
	return err
}

func (r *Reporter) render(o model.Outcome) ([]byte, error) {
	var raw []byte
	if o.Success() {
		raw = o.Body
	} else {
		b, err := json.Marshal(failure{
			URL:    o.URL,
			Method: o.Method,
			Error:  o.ErrorString(),
			Kind:   o.Kind,
			Status: o.StatusCode,
			Body:   o.Body,
		})
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return r.format(raw)
}

func (r *Reporter) format(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if r.cfg.Compact {
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
	} else if err := json.Indent(&buf, raw, "", r.cfg.Indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
