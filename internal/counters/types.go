//go:generate mockgen -source=types.go -destination=mocks/mock_source.go -package=mocks

package counters

import (
	"context"
	"sort"
	"time"
)

// ModeTimes splits the cumulative counters of one core by CPU mode.
// Modes a platform does not report stay zero.
type ModeTimes struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	Iowait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// CoreTimes holds the cumulative time counters of one logical CPU.
// Units are source-defined ticks and are only comparable between snapshots
// taken from the same Source.
type CoreTimes struct {
	// ID identifies the core across snapshots (e.g. "cpu0").
	ID string
	// Active is user+nice+system+irq+softirq+steal, or the platform equivalent.
	Active uint64
	// Idle is idle+iowait, or the platform equivalent.
	Idle uint64
	// Modes is the per-mode split of Active and Idle.
	Modes ModeTimes
}

// NewCoreTimes derives Active and Idle from per-mode counters.
func NewCoreTimes(id string, m ModeTimes) CoreTimes {
	return CoreTimes{
		ID:     id,
		Active: m.User + m.Nice + m.System + m.IRQ + m.SoftIRQ + m.Steal,
		Idle:   m.Idle + m.Iowait,
		Modes:  m,
	}
}

// Total returns Active+Idle.
func (c CoreTimes) Total() uint64 { return c.Active + c.Idle }

// CPUSnapshot is one read of the per-core cumulative CPU counters.
type CPUSnapshot struct {
	// Cores is sorted by ID in lexicographic order ("cpu10" before "cpu2").
	// Consumers match cores by ID, never by position.
	Cores []CoreTimes
	// Taken carries a monotonic clock reading.
	Taken time.Time
}

// NewCPUSnapshot builds a snapshot with cores sorted lexicographically by ID.
func NewCPUSnapshot(cores []CoreTimes, taken time.Time) CPUSnapshot {
	sorted := make([]CoreTimes, len(cores))
	copy(sorted, cores)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return CPUSnapshot{Cores: sorted, Taken: taken}
}

// MemorySnapshot is one read of the system memory counters, in bytes.
// Optional fields are nil when the platform does not report them.
type MemorySnapshot struct {
	Total     uint64
	Free      uint64
	Available *uint64
	Cached    *uint64
	Taken     time.Time
}

// Source yields CPU and memory counter snapshots on demand.
// Failures are reported as apperrors.PlatformQueryError.
type Source interface {
	// Name identifies the variant (e.g. "procfs").
	Name() string
	// Resolution is the granularity of one CPU counter tick.
	Resolution() time.Duration
	// SampleCPU reads the per-core CPU counters.
	SampleCPU(ctx context.Context) (CPUSnapshot, error)
	// SampleMemory reads the memory counters.
	SampleMemory(ctx context.Context) (MemorySnapshot, error)
}

func uint64Ptr(v uint64) *uint64 { return &v }
