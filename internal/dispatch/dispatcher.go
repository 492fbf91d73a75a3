package dispatch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/raysh454/reqs/internal/logging"
	"github.com/raysh454/reqs/internal/model"
	"github.com/raysh454/reqs/internal/webclient"
)

// Dispatcher fans a RequestSpec out to one goroutine per URL and joins on all of them.
type Dispatcher struct {
	cfg    Config
	exec   *Executor
	logger logging.Logger
}

// NewDispatcher returns a Dispatcher that runs requests through exec.
func NewDispatcher(cfg Config, exec *Executor, logger logging.Logger) (*Dispatcher, error) {
	if exec == nil {
		return nil, errors.New("dispatcher: executor is nil")
	}
	if logger == nil {
		return nil, errors.New("dispatcher: logger is nil")
	}
	return &Dispatcher{
		cfg:    cfg,
		exec:   exec,
		logger: logger.With(logging.Field{Key: "component", Value: "dispatcher"}),
	}, nil
}

// Prepare builds one request per URL in spec order. It fails on the first
// build error, before anything is sent.
func Prepare(spec *model.RequestSpec) ([]*webclient.Request, error) {
	if spec == nil {
		return nil, errors.New("prepare: nil request spec")
	}
	urls := spec.URLs()
	if len(urls) == 0 {
		return nil, model.ErrNoURLs
	}
	reqs := make([]*webclient.Request, 0, len(urls))
	for _, u := range urls {
		req, err := Build(u, spec)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Dispatch prepares every request and then starts them all. Outcomes are
// delivered on the returned channel in completion order; the channel is
// closed once every request has reached a terminal outcome. Exactly one
// outcome is sent per URL, so the caller must drain the channel.
//
// A non-nil error means nothing was sent.
func (d *Dispatcher) Dispatch(ctx context.Context, spec *model.RequestSpec) (<-chan model.Outcome, error) {
	reqs, err := Prepare(spec)
	if err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	// Buffered to len(reqs) so no worker blocks on a slow reporter.
	outcomes := make(chan model.Outcome, len(reqs))

	var g errgroup.Group
	if d.cfg.MaxConcurrency > 0 {
		g.SetLimit(d.cfg.MaxConcurrency)
	}

	d.logger.Info("dispatching batch",
		logging.Field{Key: "requests", Value: len(reqs)},
		logging.Field{Key: "method", Value: spec.Method().String()},
		logging.Field{Key: "max_concurrency", Value: d.cfg.MaxConcurrency})

	go func() {
		defer close(outcomes)
		for _, req := range reqs {
			// Go blocks while the limit is reached; with no limit it never blocks.
			g.Go(func() error {
				outcomes <- d.exec.Execute(ctx, req)
				// Per-request failures live in the outcome. Returning nil keeps
				// siblings running.
				return nil
			})
		}
		_ = g.Wait()
		d.logger.Info("batch complete", logging.Field{Key: "requests", Value: len(reqs)})
	}()

	return outcomes, nil
}

// Run dispatches spec and hands every outcome to sink as it completes. sink is
// called from a single goroutine. Run returns after the last outcome.
func (d *Dispatcher) Run(ctx context.Context, spec *model.RequestSpec, sink func(model.Outcome)) error {
	outcomes, err := d.Dispatch(ctx, spec)
	if err != nil {
		return err
	}
	for o := range outcomes {
		sink(o)
	}
	return nil
}

// Collect runs spec and returns all outcomes in completion order.
func (d *Dispatcher) Collect(ctx context.Context, spec *model.RequestSpec) ([]model.Outcome, error) {
	outcomes, err := d.Dispatch(ctx, spec)
	if err != nil {
		return nil, err
	}
	out := make([]model.Outcome, 0, spec.Len())
	for o := range outcomes {
		out = append(out, o)
	}
	return out, nil
}
