package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/raysh454/reqs/internal/dispatch"
	"github.com/raysh454/reqs/internal/history"
	"github.com/raysh454/reqs/internal/logging"
	"github.com/raysh454/reqs/internal/model"
	"github.com/raysh454/reqs/internal/report"
	"github.com/raysh454/reqs/internal/webclient"
)

// Summary counts the outcomes of one batch.
type Summary struct {
	BatchID string
	Total   int
	Failed  int
}

// Application is the runtime state for one invocation. It owns the components
// built from Config and releases them in Close.
type Application struct {
	Config *Config
	Logger logging.Logger

	WebClient  webclient.WebClient
	Dispatcher *dispatch.Dispatcher
	Reporter   *report.Reporter

	// History is nil unless Config.HistoryPath is set.
	History *history.Store
}

// NewApplication wires the webclient, dispatcher, reporter and optional
// history store. Outcomes are rendered to out.
func NewApplication(cfg *Config, out io.Writer, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if out == nil {
		return nil, errors.New("output writer is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	wc, err := webclient.NewWebClient(cfg.WebClientCfg, logger.With(logging.Field{Key: "component", Value: "webclient"}))
	if err != nil {
		return nil, fmt.Errorf("create webclient: %w", err)
	}

	exec, err := dispatch.NewExecutor(wc, logger)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("create executor: %w", err)
	}
	d, err := dispatch.NewDispatcher(cfg.DispatchCfg, exec, logger)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("create dispatcher: %w", err)
	}

	a := &Application{
		Config:     cfg,
		Logger:     logger,
		WebClient:  wc,
		Dispatcher: d,
		Reporter:   report.NewReporter(out, cfg.ReportCfg),
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath, logger)
		if err != nil {
			_ = wc.Close()
			return nil, fmt.Errorf("open history %s: %w", cfg.HistoryPath, err)
		}
		a.History = store
	}

	return a, nil
}

// Execute sends spec as one batch, reporting each outcome as it completes.
// Per-request failures are reported and counted, never returned.
func (a *Application) Execute(ctx context.Context, spec *model.RequestSpec) (Summary, error) {
	sum := Summary{BatchID: history.NewBatchID()}
	logger := a.Logger.With(logging.Field{Key: "batch_id", Value: sum.BatchID})

	// history rows for requests that did complete are still written after an interrupt
	recordCtx := context.WithoutCancel(ctx)

	err := a.Dispatcher.Run(ctx, spec, func(o model.Outcome) {
		sum.Total++
		if !o.Success() {
			sum.Failed++
			logger.Debug("outcome",
				logging.Field{Key: "url", Value: o.URL},
				logging.Field{Key: "kind", Value: string(o.Kind)},
				logging.Field{Key: "error", Value: o.Err})
		}

		if err := a.Reporter.Report(o); err != nil {
			logger.Error("failed to report outcome", logging.Field{Key: "url", Value: o.URL}, logging.Field{Key: "error", Value: err})
		}

		if a.History != nil {
			if err := a.History.Record(recordCtx, sum.BatchID, o); err != nil {
				logger.Error("failed to record outcome", logging.Field{Key: "url", Value: o.URL}, logging.Field{Key: "error", Value: err})
			}
		}
	})
	if err != nil {
		return sum, err
	}

	logger.Info("batch finished",
		logging.Field{Key: "total", Value: sum.Total},
		logging.Field{Key: "failed", Value: sum.Failed})
	return sum, nil
}

// Close releases the webclient and the history store.
func (a *Application) Close() error {
	if a == nil {
		return errors.New("application is nil")
	}
	var errs []error
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history: %w", err))
		}
	}
	if a.WebClient != nil {
		if err := a.WebClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close webclient: %w", err))
		}
	}
	return errors.Join(errs...)
}
