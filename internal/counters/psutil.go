package counters

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	apperrors "github.com/agbru/scrapster/internal/errors"
)

// psutilTicksPerSecond converts gopsutil's float seconds back to integer
// ticks. gopsutil derives its seconds from USER_HZ on Linux and from coarser
// or finer native units elsewhere; centiseconds keep every platform exact
// enough for a delta.
const psutilTicksPerSecond = 100

// PsutilSource reads counters through shirou/gopsutil. It works on every
// platform gopsutil supports.
type PsutilSource struct {
	times   func(ctx context.Context, percpu bool) ([]cpu.TimesStat, error)
	virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	now     func() time.Time
}

// NewPsutilSource returns a gopsutil-backed Source.
func NewPsutilSource() *PsutilSource {
	return &PsutilSource{
		times:   cpu.TimesWithContext,
		virtual: mem.VirtualMemoryWithContext,
		now:     time.Now,
	}
}

// Name implements Source.
func (s *PsutilSource) Name() string { return "psutil" }

// Resolution implements Source.
func (s *PsutilSource) Resolution() time.Duration { return time.Second / psutilTicksPerSecond }

// SampleCPU implements Source.
func (s *PsutilSource) SampleCPU(ctx context.Context) (CPUSnapshot, error) {
	stats, err := s.times(ctx, true)
	if err != nil {
		return CPUSnapshot{}, s.fail("cpu", err)
	}
	taken := s.now()
	if len(stats) == 0 {
		return CPUSnapshot{}, s.fail("cpu", errors.New("no per-cpu times reported"))
	}

	cores := make([]CoreTimes, 0, len(stats))
	for _, t := range stats {
		cores = append(cores, NewCoreTimes(t.CPU, ModeTimes{
			User:    toTicks(t.User),
			Nice:    toTicks(t.Nice),
			System:  toTicks(t.System),
			Idle:    toTicks(t.Idle),
			Iowait:  toTicks(t.Iowait),
			IRQ:     toTicks(t.Irq),
			SoftIRQ: toTicks(t.Softirq),
			Steal:   toTicks(t.Steal),
		}))
	}
	return NewCPUSnapshot(cores, taken), nil
}

// SampleMemory implements Source. gopsutil reports zero for fields a
// platform does not expose, so zero Available or Cached is treated as absent.
func (s *PsutilSource) SampleMemory(ctx context.Context) (MemorySnapshot, error) {
	vm, err := s.virtual(ctx)
	if err != nil {
		return MemorySnapshot{}, s.fail("memory", err)
	}
	if vm == nil || vm.Total == 0 {
		return MemorySnapshot{}, s.fail("memory", errors.New("total memory not reported"))
	}

	snap := MemorySnapshot{
		Total: vm.Total,
		Free:  vm.Free,
		Taken: s.now(),
	}
	if vm.Available > 0 {
		snap.Available = uint64Ptr(vm.Available)
	}
	if vm.Cached > 0 {
		snap.Cached = uint64Ptr(vm.Cached + vm.Buffers)
	}
	return snap, nil
}

func (s *PsutilSource) fail(op string, err error) error {
	return apperrors.PlatformQueryError{Source: s.Name(), Op: op, Cause: err}
}

func toTicks(sec float64) uint64 {
	if sec <= 0 || math.IsNaN(sec) {
		return 0
	}
	return uint64(math.Round(sec * psutilTicksPerSecond))
}
