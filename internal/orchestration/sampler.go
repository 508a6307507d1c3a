package orchestration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/scrapster/internal/counters"
	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/estimator"
	"github.com/agbru/scrapster/internal/logging"
	"github.com/agbru/scrapster/internal/metrics"
)

// FloorResolutionMultiple is the number of counter ticks an interval must
// span at least. Shorter windows give percentages dominated by quantization.
const FloorResolutionMultiple = 5

const tracerName = "github.com/agbru/scrapster/internal/orchestration"

// maxIntervalMs is the largest interval, in milliseconds, representable as a
// time.Duration.
const maxIntervalMs = math.MaxInt64 / int64(time.Millisecond)

// Sampler takes point-in-time samples from a single counter source.
// A Sampler holds no mutable state and is safe for concurrent use.
type Sampler struct {
	source     counters.Source
	sourceName string
	floor      time.Duration
	clock      Clock
	logger     logging.Logger
	observer   Observer
	tracer     trace.Tracer
}

type samplerOptions struct {
	clock       Clock
	minInterval time.Duration
	logger      logging.Logger
	observer    Observer
	tracer      trace.Tracer
}

// Option configures a Sampler during construction.
type Option func(*samplerOptions)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(o *samplerOptions) { o.clock = c }
}

// WithMinInterval raises the minimum accepted interval above the platform floor.
func WithMinInterval(d time.Duration) Option {
	return func(o *samplerOptions) { o.minInterval = d }
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l logging.Logger) Option {
	return func(o *samplerOptions) { o.logger = l }
}

// WithObserver registers an observer notified after every call.
func WithObserver(obs Observer) Option {
	return func(o *samplerOptions) { o.observer = obs }
}

// WithTracer sets the tracer used for per-call spans. The default is the
// tracer of the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *samplerOptions) { o.tracer = t }
}

// NewSampler builds a Sampler around src. The source's name and resolution
// are read once here; sampling calls touch the source only through
// SampleCPU and SampleMemory.
func NewSampler(src counters.Source, opts ...Option) *Sampler {
	o := samplerOptions{
		clock:    RealClock{},
		logger:   logging.NewNopLogger(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}

	floor := FloorResolutionMultiple * src.Resolution()
	if o.minInterval > floor {
		floor = o.minInterval
	}

	return &Sampler{
		source:     src,
		sourceName: src.Name(),
		floor:      floor,
		clock:      o.clock,
		logger:     o.logger,
		observer:   o.observer,
		tracer:     o.tracer,
	}
}

// Floor returns the smallest interval the sampler accepts.
func (s *Sampler) Floor() time.Duration { return s.floor }

// SourceName returns the name of the underlying counter source.
func (s *Sampler) SourceName() string { return s.sourceName }

// GetMetricsOnce blocks for roughly intervalMs milliseconds and returns the
// CPU utilization over that window together with the memory usage at its end.
//
// Errors:
//   - apperrors.ValidationError: intervalMs is not positive or below Floor.
//     The counter source is not queried.
//   - apperrors.PlatformQueryError: a counter read failed.
//   - apperrors.InsufficientSampleWindowError: no core advanced during the window.
//   - apperrors.CancelledError: ctx ended first.
//
// No partial sample is ever returned.
func (s *Sampler) GetMetricsOnce(ctx context.Context, intervalMs int64) (metrics.Sample, error) {
	if intervalMs > maxIntervalMs {
		err := apperrors.ValidationError{Field: "interval_ms", Message: fmt.Sprintf("%d exceeds the maximum of %d", intervalMs, maxIntervalMs)}
		return s.observe(ctx, time.Duration(math.MaxInt64), func(context.Context, string) (metrics.Sample, estimator.Breakdown, error) {
			return metrics.Sample{}, estimator.Breakdown{}, err
		})
	}
	return s.sample(ctx, "interval_ms", time.Duration(intervalMs)*time.Millisecond)
}

// Sample is GetMetricsOnce with a time.Duration interval.
func (s *Sampler) Sample(ctx context.Context, interval time.Duration) (metrics.Sample, error) {
	return s.sample(ctx, "interval", interval)
}

func (s *Sampler) sample(ctx context.Context, field string, interval time.Duration) (metrics.Sample, error) {
	return s.observe(ctx, interval, func(ctx context.Context, callID string) (metrics.Sample, estimator.Breakdown, error) {
		if err := s.validate(field, interval); err != nil {
			return metrics.Sample{}, estimator.Breakdown{}, err
		}
		return s.run(ctx, interval, callID)
	})
}

type sampleFunc func(ctx context.Context, callID string) (metrics.Sample, estimator.Breakdown, error)

// observe wraps one call with its call ID, span, debug logs and observer
// notification.
func (s *Sampler) observe(ctx context.Context, interval time.Duration, fn sampleFunc) (metrics.Sample, error) {
	callID := uuid.NewString()
	start := s.clock.Now()

	ctx, span := s.tracer.Start(ctx, "get-metrics-once", trace.WithAttributes(
		attribute.String("call.id", callID),
		attribute.String("source", s.sourceName),
		attribute.Int64("interval_ms", interval.Milliseconds()),
	))
	defer span.End()

	result, usage, err := fn(ctx, callID)
	elapsed := s.clock.Now().Sub(start)
	kind := apperrors.KindOf(err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		s.logger.Debug("sample failed",
			logging.String("call_id", callID),
			logging.String("kind", string(kind)),
			logging.Duration("elapsed", elapsed),
			logging.Err(err),
		)
	} else {
		span.SetAttributes(
			attribute.Float64("cpu.usage_percent", result.CPUUsagePercent()),
			attribute.Int64("mem.used_bytes", int64(min(result.MemUsedBytes(), math.MaxInt64))),
			attribute.Int("cpu.excluded_cores", len(usage.Excluded)),
		)
		s.logger.Debug("sample taken",
			logging.String("call_id", callID),
			logging.Float64("cpu_usage_percent", result.CPUUsagePercent()),
			logging.Uint64("mem_used_bytes", result.MemUsedBytes()),
			logging.Duration("elapsed", elapsed),
		)
	}

	s.observer.ObserveSample(Outcome{
		CallID:   callID,
		Source:   s.sourceName,
		Interval: interval,
		Elapsed:  elapsed,
		Kind:     kind,
		Sample:   result,
		Excluded: usage.Excluded,
	})
	return result, err
}

func (s *Sampler) validate(field string, interval time.Duration) error {
	if interval <= 0 {
		return apperrors.ValidationError{Field: field, Message: fmt.Sprintf("must be positive, got %s", interval)}
	}
	if interval < s.floor {
		return apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%s is below the platform floor of %s", interval, s.floor)}
	}
	return nil
}

func (s *Sampler) run(ctx context.Context, interval time.Duration, callID string) (metrics.Sample, estimator.Breakdown, error) {
	if err := ctx.Err(); err != nil {
		return metrics.Sample{}, estimator.Breakdown{}, apperrors.CancelledError{Cause: err}
	}

	prev, err := s.source.SampleCPU(ctx)
	if err != nil {
		return metrics.Sample{}, estimator.Breakdown{}, s.queryFailed(ctx, "cpu", err)
	}
	s.logger.Debug("cpu snapshot",
		logging.String("call_id", callID),
		logging.Int("index", 1),
		logging.Int("cores", len(prev.Cores)),
	)

	if err := s.clock.Sleep(ctx, interval); err != nil {
		return metrics.Sample{}, estimator.Breakdown{}, apperrors.CancelledError{Cause: err}
	}

	curr, err := s.source.SampleCPU(ctx)
	if err != nil {
		return metrics.Sample{}, estimator.Breakdown{}, s.queryFailed(ctx, "cpu", err)
	}
	s.logger.Debug("cpu snapshot",
		logging.String("call_id", callID),
		logging.Int("index", 2),
		logging.Int("cores", len(curr.Cores)),
	)

	mem, err := s.source.SampleMemory(ctx)
	if err != nil {
		return metrics.Sample{}, estimator.Breakdown{}, s.queryFailed(ctx, "memory", err)
	}

	usage, err := estimator.CPUUsage(prev, curr)
	for _, ex := range usage.Excluded {
		s.logger.Debug("core excluded",
			logging.String("call_id", callID),
			logging.String("core", ex.ID),
			logging.String("reason", ex.Reason),
		)
	}
	if err != nil {
		return metrics.Sample{}, usage, err
	}

	used := estimator.MemUsedBytes(mem)
	return metrics.NewSample(usage.Percent, used, mem.Total, s.sourceName).WithCPUModes(usage.Modes), usage, nil
}

// queryFailed normalizes a source error. Context errors raised because ctx
// ended become CancelledError; anything else becomes a PlatformQueryError.
func (s *Sampler) queryFailed(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && apperrors.IsContextError(err) {
		return apperrors.CancelledError{Cause: ctxErr}
	}
	var platformErr apperrors.PlatformQueryError
	if errors.As(err, &platformErr) {
		return err
	}
	return apperrors.PlatformQueryError{Source: s.sourceName, Op: op, Cause: err}
}
