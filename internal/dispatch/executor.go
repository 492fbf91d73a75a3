package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/raysh454/reqs/internal/logging"
	"github.com/raysh454/reqs/internal/model"
	"github.com/raysh454/reqs/internal/utils"
	"github.com/raysh454/reqs/internal/webclient"
)

// Per-request failure classes. Outcome.Err wraps exactly one of them.
var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("body decode error")
	ErrStatus    = errors.New("unexpected status")
)

// Executor sends one prepared request and turns whatever happens into an Outcome.
type Executor struct {
	wc     webclient.WebClient
	logger logging.Logger
	now    func() time.Time
}

// NewExecutor returns an Executor that sends through wc.
func NewExecutor(wc webclient.WebClient, logger logging.Logger) (*Executor, error) {
	if wc == nil {
		return nil, errors.New("executor: webclient is nil")
	}
	if logger == nil {
		return nil, errors.New("executor: logger is nil")
	}
	return &Executor{
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "executor"}),
		now:    time.Now,
	}, nil
}

// Execute sends req exactly once. It never returns an error: transport, status
// and decode failures are all reported through the Outcome.
func (e *Executor) Execute(ctx context.Context, req *webclient.Request) model.Outcome {
	out := model.Outcome{
		ID:     uuid.NewString(),
		URL:    req.URL,
		Method: model.Method(req.Method),
	}

	logger := e.logger.With(
		logging.Field{Key: "id", Value: out.ID},
		logging.Field{Key: "host", Value: utils.HostOf(req.URL)})

	start := e.now()
	resp, err := e.wc.Do(ctx, req)
	out.Duration = e.now().Sub(start)

	if err != nil {
		out.Kind = model.OutcomeTransportError
		out.Err = fmt.Errorf("%w: %s: %w", ErrTransport, req.URL, err)
		logger.Warn("request failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err})
		return out
	}
	out.StatusCode = resp.StatusCode

	body, decodeErr := compactJSON(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out.Kind = model.OutcomeStatusError
		out.Err = fmt.Errorf("%w: %s: %d", ErrStatus, req.URL, resp.StatusCode)
		if decodeErr == nil {
			out.Body = body
		}
		logger.Warn("non-2xx response",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "status", Value: resp.StatusCode})
		return out
	}

	if decodeErr != nil {
		out.Kind = model.OutcomeDecodeError
		out.Err = fmt.Errorf("%w: %s: %w", ErrDecode, req.URL, decodeErr)
		logger.Warn("response body is not JSON",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: decodeErr})
		return out
	}

	out.Kind = model.OutcomeSuccess
	out.Body = body
	logger.Debug("request succeeded",
		logging.Field{Key: "url", Value: req.URL},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "duration", Value: out.Duration.String()})
	return out
}

// compactJSON validates raw as a single JSON value and returns it compacted.
// An empty body is not JSON.
func compactJSON(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
