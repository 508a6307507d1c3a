// Package scrapster samples system-wide CPU utilization and memory usage at a
// point in time.
//
//	s, err := scrapster.GetMetricsOnce(ctx, 1000)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("cpu=%.2f%% mem_used=%d\n", s.CPUUsagePercent(), s.MemUsedBytes())
//
// A call blocks for the requested interval. Calls share no state and may run
// concurrently.
package scrapster

import (
	"context"

	"github.com/agbru/scrapster/internal/counters"
	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/metrics"
	"github.com/agbru/scrapster/internal/orchestration"
)

type (
	// Sample is the result of one call.
	Sample = metrics.Sample
	// Sampler takes samples from one counter source.
	Sampler = orchestration.Sampler

	// ValidationError reports an interval that is not positive or below the
	// platform floor.
	ValidationError = apperrors.ValidationError
	// PlatformQueryError reports that OS counters could not be read.
	PlatformQueryError = apperrors.PlatformQueryError
	// InsufficientSampleWindowError reports that no core advanced during the interval.
	InsufficientSampleWindowError = apperrors.InsufficientSampleWindowError
	// CancelledError reports that the context ended during the call.
	CancelledError = apperrors.CancelledError
)

// GetMetricsOnce measures CPU utilization over intervalMs milliseconds using
// the platform's default counter source, and reports memory usage at the end
// of the window.
func GetMetricsOnce(ctx context.Context, intervalMs int64) (Sample, error) {
	return orchestration.NewSampler(counters.Default()).GetMetricsOnce(ctx, intervalMs)
}

// NewSampler returns a Sampler for the named counter source ("auto",
// "procfs", "psutil", "windows"). procRoot only affects procfs; empty means
// /proc.
func NewSampler(source, procRoot string) (*Sampler, error) {
	src, err := counters.New(source, procRoot)
	if err != nil {
		return nil, err
	}
	return orchestration.NewSampler(src), nil
}

// Sources lists the counter sources available on this platform.
func Sources() []string { return counters.Available() }

// IsInvalidArgument reports whether err is a rejected interval.
func IsInvalidArgument(err error) bool {
	return apperrors.KindOf(err) == apperrors.KindInvalidArgument
}

// IsPlatformQueryFailure reports whether err comes from reading OS counters.
func IsPlatformQueryFailure(err error) bool {
	return apperrors.KindOf(err) == apperrors.KindPlatformQuery
}

// IsInsufficientSampleWindow reports whether the counters did not advance.
func IsInsufficientSampleWindow(err error) bool {
	return apperrors.KindOf(err) == apperrors.KindInsufficientSampleWindow
}

// IsCancelled reports whether the call was interrupted by its context.
func IsCancelled(err error) bool {
	return apperrors.KindOf(err) == apperrors.KindCancelled
}
