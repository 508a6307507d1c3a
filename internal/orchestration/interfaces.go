package orchestration

import (
	"context"
	"io"
	"time"

	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/estimator"
	"github.com/agbru/scrapster/internal/metrics"
)

// Clock supplies the time and the single suspension point of a sample.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever comes first. It
	// returns ctx.Err() when interrupted.
	Sleep(ctx context.Context, d time.Duration) error
}

// Outcome describes one finished GetMetricsOnce call, successful or not.
type Outcome struct {
	CallID   string
	Source   string
	Interval time.Duration
	// Elapsed is measured with the sampler's Clock.
	Elapsed time.Duration
	Kind    apperrors.Kind
	// Sample is the zero value unless Kind is apperrors.KindNone.
	Sample   metrics.Sample
	Excluded []estimator.ExcludedCore
}

// Observer is notified once per sampling call. Implementations must be safe
// for concurrent use since calls may run in parallel.
type Observer interface {
	ObserveSample(o Outcome)
}

// NopObserver discards outcomes.
type NopObserver struct{}

// ObserveSample does nothing.
func (NopObserver) ObserveSample(Outcome) {}

// WaitIndicator shows that a sample is in progress. The orchestration layer
// calls Start before a sample and Stop after it, so spinners and similar
// widgets stay out of the sampling logic.
type WaitIndicator interface {
	Start(out io.Writer, label string)
	Stop()
}

// NullWaitIndicator is a no-op WaitIndicator, used for quiet and JSON modes.
type NullWaitIndicator struct{}

// Start does nothing.
func (NullWaitIndicator) Start(io.Writer, string) {}

// Stop does nothing.
func (NullWaitIndicator) Stop() {}

// ResultPresenter defines how sample results are shown.
type ResultPresenter interface {
	// PresentSample displays one successful sample.
	PresentSample(result SampleResult, out io.Writer)
	// PresentSummary displays the run summary once all samples are taken.
	PresentSummary(results []SampleResult, out io.Writer)
}

// ErrorHandler handles sampling errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
