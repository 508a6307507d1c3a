//go:build linux

package counters

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/procfs"

	apperrors "github.com/agbru/scrapster/internal/errors"
)

// userHZ is the kernel's USER_HZ, the unit of the /proc/stat counters.
// procfs reports those counters divided by it, in seconds.
const userHZ = 100

// DefaultProcRoot is the default procfs mount point.
const DefaultProcRoot = procfs.DefaultMountPoint

// ProcfsSource reads /proc/stat and /proc/meminfo through prometheus/procfs.
// The filesystem handle is opened on every call.
type ProcfsSource struct {
	root string
	now  func() time.Time
}

// NewProcfsSource returns a Source rooted at the given procfs mount point.
// An empty root means DefaultProcRoot.
func NewProcfsSource(root string) *ProcfsSource {
	if root == "" {
		root = DefaultProcRoot
	}
	return &ProcfsSource{root: root, now: time.Now}
}

// Name implements Source.
func (s *ProcfsSource) Name() string { return "procfs" }

// Resolution implements Source.
func (s *ProcfsSource) Resolution() time.Duration { return time.Second / userHZ }

// SampleCPU implements Source. Offline cores are absent from the snapshot.
func (s *ProcfsSource) SampleCPU(ctx context.Context) (CPUSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return CPUSnapshot{}, s.fail("cpu", err)
	}
	fs, err := procfs.NewFS(s.root)
	if err != nil {
		return CPUSnapshot{}, s.fail("cpu", err)
	}
	stat, err := fs.Stat()
	if err != nil {
		return CPUSnapshot{}, s.fail("cpu", err)
	}
	taken := s.now()
	if len(stat.CPU) == 0 {
		return CPUSnapshot{}, s.fail("cpu", fmt.Errorf("no per-cpu lines in %s/stat", s.root))
	}

	cores := make([]CoreTimes, 0, len(stat.CPU))
	for id, c := range stat.CPU {
		cores = append(cores, NewCoreTimes(fmt.Sprintf("cpu%d", id), ModeTimes{
			User:    secondsToTicks(c.User),
			Nice:    secondsToTicks(c.Nice),
			System:  secondsToTicks(c.System),
			Idle:    secondsToTicks(c.Idle),
			Iowait:  secondsToTicks(c.Iowait),
			IRQ:     secondsToTicks(c.IRQ),
			SoftIRQ: secondsToTicks(c.SoftIRQ),
			Steal:   secondsToTicks(c.Steal),
		}))
	}
	return NewCPUSnapshot(cores, taken), nil
}

// SampleMemory implements Source. Cached is reported as Cached+Buffers, the
// page cache and block buffers the kernel can drop under pressure.
func (s *ProcfsSource) SampleMemory(ctx context.Context) (MemorySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return MemorySnapshot{}, s.fail("memory", err)
	}
	fs, err := procfs.NewFS(s.root)
	if err != nil {
		return MemorySnapshot{}, s.fail("memory", err)
	}
	mi, err := fs.Meminfo()
	if err != nil {
		return MemorySnapshot{}, s.fail("memory", err)
	}
	if mi.MemTotal == nil || *mi.MemTotal == 0 {
		return MemorySnapshot{}, s.fail("memory", fmt.Errorf("MemTotal missing from %s/meminfo", s.root))
	}
	if mi.MemFree == nil {
		return MemorySnapshot{}, s.fail("memory", fmt.Errorf("MemFree missing from %s/meminfo", s.root))
	}

	snap := MemorySnapshot{
		Total: kibToBytes(*mi.MemTotal),
		Free:  kibToBytes(*mi.MemFree),
		Taken: s.now(),
	}
	if mi.MemAvailable != nil {
		snap.Available = uint64Ptr(kibToBytes(*mi.MemAvailable))
	}
	if mi.Cached != nil {
		cached := *mi.Cached
		if mi.Buffers != nil {
			cached += *mi.Buffers
		}
		snap.Cached = uint64Ptr(kibToBytes(cached))
	}
	return snap, nil
}

func (s *ProcfsSource) fail(op string, err error) error {
	return apperrors.PlatformQueryError{Source: s.Name(), Op: op, Cause: err}
}

func secondsToTicks(sec float64) uint64 {
	if sec <= 0 || math.IsNaN(sec) {
		return 0
	}
	return uint64(math.Round(sec * userHZ))
}

func kibToBytes(kib uint64) uint64 { return kib * 1024 }
