package orchestration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/scrapster/internal/config"
	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/metrics"
)

// SampleResult encapsulates the outcome of one call in a run.
type SampleResult struct {
	// Index is the zero-based position of the call in the run.
	Index int
	// Sample is the zero value if an error occurred.
	Sample metrics.Sample
	// Duration is the wall time of the call, pause excluded.
	Duration time.Duration
	// Err contains any error returned by the call.
	Err error
}

// ExecuteSamples takes cfg.Count samples of cfg.Interval one after another,
// waiting cfg.Pause between two calls. Each successful sample is handed to the
// presenter as soon as it is available. The run stops at the first failure;
// the failing call is the last element of the returned slice.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - sampler: The sampler to call.
//   - cfg: The application configuration (count, interval, pause).
//   - indicator: Shown while each call is in progress (use NullWaitIndicator for quiet mode).
//   - presenter: Receives each successful sample.
//   - out: The io.Writer for presentation output.
//
// Returns:
//   - []SampleResult: The results of the calls that were made.
func ExecuteSamples(ctx context.Context, sampler *Sampler, cfg config.AppConfig, indicator WaitIndicator, presenter ResultPresenter, out io.Writer) []SampleResult {
	results := make([]SampleResult, 0, cfg.Count)
	intervalMs := cfg.Interval.Milliseconds()

	for i := 0; i < cfg.Count; i++ {
		if i > 0 && cfg.Pause > 0 {
			if err := sampler.clock.Sleep(ctx, cfg.Pause); err != nil {
				results = append(results, SampleResult{Index: i, Err: apperrors.CancelledError{Cause: err}})
				return results
			}
		}

		indicator.Start(out, fmt.Sprintf("sample %d: measuring over %s", i, cfg.Interval))
		start := time.Now()
		sample, err := sampler.GetMetricsOnce(ctx, intervalMs)
		res := SampleResult{Index: i, Sample: sample, Duration: time.Since(start), Err: err}
		indicator.Stop()

		results = append(results, res)
		if err != nil {
			return results
		}
		presenter.PresentSample(res, out)
	}
	return results
}

// AnalyzeResults presents the summary of a run and maps its outcome to an
// exit code. A run is successful only if every requested sample was taken.
//
// Returns:
//   - int: apperrors.ExitSuccess, or the exit code of the failing call.
func AnalyzeResults(results []SampleResult, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	presenter.PresentSummary(results, out)

	for _, res := range results {
		if res.Err != nil {
			return handler.HandleError(res.Err, res.Duration, out)
		}
	}
	return apperrors.ExitSuccess
}
