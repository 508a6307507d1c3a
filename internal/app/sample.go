package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/scrapster/internal/cli"
	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/logging"
	"github.com/agbru/scrapster/internal/orchestration"
	"github.com/agbru/scrapster/internal/telemetry"
)

// runSample runs the sampling loop: cfg.Count one-shot samples, each shown
// as soon as it is taken.
func (a *Application) runSample(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	opts := []orchestration.Option{
		orchestration.WithMinInterval(a.Config.MinInterval),
		orchestration.WithLogger(a.Logger),
	}
	var selfMetrics *telemetry.Metrics
	if a.Config.TelemetryOut != "" {
		selfMetrics = telemetry.NewMetrics()
		opts = append(opts, orchestration.WithObserver(selfMetrics))
	}
	sampler := orchestration.NewSampler(a.Source, opts...)

	interactive := !a.Config.Quiet && !a.Config.JSON
	if interactive {
		cli.PrintExecutionConfig(a.Config, sampler.SourceName(), sampler.Floor(), out)
	}

	var indicator orchestration.WaitIndicator = orchestration.NullWaitIndicator{}
	if interactive {
		indicator = &cli.SpinnerIndicator{}
	}

	var presenter interface {
		orchestration.ResultPresenter
		orchestration.ErrorHandler
	}
	if a.Config.JSON {
		presenter = cli.JSONResultPresenter{}
	} else {
		presenter = cli.CLIResultPresenter{Quiet: a.Config.Quiet}
	}

	a.Logger.Debug("sampling started",
		logging.String("source", sampler.SourceName()),
		logging.Int("count", a.Config.Count),
		logging.Duration("interval", a.Config.Interval),
		logging.Duration("floor", sampler.Floor()),
	)

	results := orchestration.ExecuteSamples(ctx, sampler, a.Config, indicator, presenter, out)
	exitCode := orchestration.AnalyzeResults(results, presenter, presenter, out)

	if selfMetrics != nil {
		if err := selfMetrics.WriteFile(a.Config.TelemetryOut); err != nil {
			a.Logger.Error("writing self-telemetry failed", err, logging.String("path", a.Config.TelemetryOut))
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		}
	}

	a.Logger.Info("sampling finished",
		logging.Int("samples", len(results)),
		logging.Int("exit_code", exitCode),
	)
	return exitCode
}
