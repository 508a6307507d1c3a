// Package telemetry counts sampler calls with Prometheus collectors so a run
// can report on its own behaviour: how many calls succeeded or failed, how
// long they blocked, and which cores were excluded from CPU deltas.
package telemetry

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/orchestration"
)

const namespace = "scrapster"

// Metrics implements orchestration.Observer on top of a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	samplesTotal  *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	excludedCores *prometheus.CounterVec
}

var _ orchestration.Observer = (*Metrics)(nil)

// NewMetrics registers the sampler collectors, plus the Go runtime and
// process collectors, on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		samplesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Number of GetMetricsOnce calls by counter source and outcome.",
		}, []string{"source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_duration_seconds",
			Help:      "Time spent in GetMetricsOnce calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"source"}),
		excludedCores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "excluded_cores_total",
			Help:      "Cores left out of a CPU delta, by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		m.samplesTotal,
		m.duration,
		m.excludedCores,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSample records one call.
func (m *Metrics) ObserveSample(o orchestration.Outcome) {
	m.samplesTotal.WithLabelValues(o.Source, string(o.Kind)).Inc()
	m.duration.WithLabelValues(o.Source).Observe(o.Elapsed.Seconds())
	for _, ex := range o.Excluded {
		m.excludedCores.WithLabelValues(ex.Reason).Inc()
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return apperrors.WrapError(err, "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return apperrors.WrapError(err, "encode %s", mf.GetName())
		}
	}
	return nil
}

// WriteFile writes the text exposition to path, replacing any existing file.
func (m *Metrics) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "create telemetry file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.WrapError(cerr, "close telemetry file")
		}
	}()
	return m.WriteText(f)
}
