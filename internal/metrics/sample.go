// Package metrics defines the immutable result of one sampling call.
package metrics

import (
	"encoding/json"
	"fmt"

	"github.com/agbru/scrapster/internal/estimator"
)

// Sample is a point-in-time reading of system-wide CPU utilization and memory
// usage. The zero value is a valid, empty sample. Construct with NewSample;
// fields cannot be changed afterwards.
type Sample struct {
	cpuUsagePercent float64
	memUsedBytes    uint64
	memTotalBytes   uint64
	source          string
	cpuModes        estimator.ModeShares
}

// NewSample builds a Sample, clamping out-of-range inputs rather than
// rejecting them: cpuPercent into [0,100] (NaN becomes 0) and memUsed into
// [0, memTotal].
func NewSample(cpuPercent float64, memUsed, memTotal uint64, source string) Sample {
	if memUsed > memTotal {
		memUsed = memTotal
	}
	return Sample{
		cpuUsagePercent: estimator.ClampPercent(cpuPercent),
		memUsedBytes:    memUsed,
		memTotalBytes:   memTotal,
		source:          source,
	}
}

// CPUUsagePercent returns the utilization in [0,100].
func (s Sample) CPUUsagePercent() float64 { return s.cpuUsagePercent }

// MemUsedBytes returns the used memory, never above MemTotalBytes.
func (s Sample) MemUsedBytes() uint64 { return s.memUsedBytes }

// MemTotalBytes returns the total memory reported by the platform.
func (s Sample) MemTotalBytes() uint64 { return s.memTotalBytes }

// MemUsedPercent returns MemUsedBytes as a share of MemTotalBytes.
func (s Sample) MemUsedPercent() float64 {
	if s.memTotalBytes == 0 {
		return 0
	}
	return 100 * float64(s.memUsedBytes) / float64(s.memTotalBytes)
}

// WithCPUModes returns a copy of s carrying the per-mode CPU split, each
// share clamped to [0,100].
func (s Sample) WithCPUModes(m estimator.ModeShares) Sample {
	s.cpuModes = estimator.ModeShares{
		User:    estimator.ClampPercent(m.User),
		Nice:    estimator.ClampPercent(m.Nice),
		System:  estimator.ClampPercent(m.System),
		Idle:    estimator.ClampPercent(m.Idle),
		Iowait:  estimator.ClampPercent(m.Iowait),
		IRQ:     estimator.ClampPercent(m.IRQ),
		SoftIRQ: estimator.ClampPercent(m.SoftIRQ),
		Steal:   estimator.ClampPercent(m.Steal),
	}
	return s
}

// CPUModes returns the per-mode CPU split. It is the zero value when the
// source reported no mode counters.
func (s Sample) CPUModes() estimator.ModeShares { return s.cpuModes }

// HasCPUModes reports whether any mode share is set.
func (s Sample) HasCPUModes() bool { return s.cpuModes != estimator.ModeShares{} }

// Source names the counter source the sample was read from.
func (s Sample) Source() string { return s.source }

// String implements fmt.Stringer.
func (s Sample) String() string {
	return fmt.Sprintf("cpu=%.2f%% mem_used=%d", s.cpuUsagePercent, s.memUsedBytes)
}

// CPUModesJSON is the JSON form of estimator.ModeShares.
type CPUModesJSON struct {
	User    float64 `json:"user"`
	Nice    float64 `json:"nice"`
	System  float64 `json:"system"`
	Idle    float64 `json:"idle"`
	Iowait  float64 `json:"iowait"`
	IRQ     float64 `json:"irq"`
	SoftIRQ float64 `json:"softirq"`
	Steal   float64 `json:"steal"`
}

// CPUModesJSON returns the JSON form of the mode split, or nil when none was
// reported.
func (s Sample) CPUModesJSON() *CPUModesJSON {
	if !s.HasCPUModes() {
		return nil
	}
	m := s.cpuModes
	return &CPUModesJSON{
		User: m.User, Nice: m.Nice, System: m.System, Idle: m.Idle,
		Iowait: m.Iowait, IRQ: m.IRQ, SoftIRQ: m.SoftIRQ, Steal: m.Steal,
	}
}

type sampleJSON struct {
	CPUUsagePercent float64       `json:"cpu_usage_percent"`
	MemUsedBytes    uint64        `json:"mem_used_bytes"`
	MemTotalBytes   uint64        `json:"mem_total_bytes"`
	Source          string        `json:"source,omitempty"`
	CPUModes        *CPUModesJSON `json:"cpu_modes,omitempty"`
}

// MarshalJSON encodes the sample with snake_case keys.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleJSON{
		CPUUsagePercent: s.cpuUsagePercent,
		MemUsedBytes:    s.memUsedBytes,
		MemTotalBytes:   s.memTotalBytes,
		Source:          s.source,
		CPUModes:        s.CPUModesJSON(),
	})
}

// UnmarshalJSON decodes a sample, applying the same clamping as NewSample
// and WithCPUModes.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var raw sampleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded := NewSample(raw.CPUUsagePercent, raw.MemUsedBytes, raw.MemTotalBytes, raw.Source)
	if m := raw.CPUModes; m != nil {
		decoded = decoded.WithCPUModes(estimator.ModeShares{
			User: m.User, Nice: m.Nice, System: m.System, Idle: m.Idle,
			Iowait: m.Iowait, IRQ: m.IRQ, SoftIRQ: m.SoftIRQ, Steal: m.Steal,
		})
	}
	*s = decoded
	return nil
}
