package estimator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/scrapster/internal/counters"
	apperrors "github.com/agbru/scrapster/internal/errors"
)

// coreDelta describes one core's counters before and after an interval.
type coreDelta struct {
	Active, Idle           uint32
	ActiveDelta, IdleDelta uint32
}

func genCoreDelta() gopter.Gen {
	return gopter.CombineGens(
		gen.UInt32(), gen.UInt32(), gen.UInt32Range(0, 100000), gen.UInt32Range(0, 100000),
	).Map(func(v []interface{}) coreDelta {
		return coreDelta{Active: v[0].(uint32), Idle: v[1].(uint32), ActiveDelta: v[2].(uint32), IdleDelta: v[3].(uint32)}
	})
}

func buildSnapshots(deltas []coreDelta) (counters.CPUSnapshot, counters.CPUSnapshot) {
	prev := make([]counters.CoreTimes, len(deltas))
	curr := make([]counters.CoreTimes, len(deltas))
	for i, d := range deltas {
		id := fmt.Sprintf("cpu%d", i)
		prev[i] = counters.CoreTimes{ID: id, Active: uint64(d.Active), Idle: uint64(d.Idle)}
		curr[i] = counters.CoreTimes{ID: id, Active: uint64(d.Active) + uint64(d.ActiveDelta), Idle: uint64(d.Idle) + uint64(d.IdleDelta)}
	}
	return snap(prev...), snap(curr...)
}

// TestCPUUsage_PropertyBased checks the range, purity and failure-mode
// properties of the CPU estimator over random monotonic counters.
func TestCPUUsage_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("percent is within [0,100] whenever some core advanced", prop.ForAll(
		func(deltas []coreDelta) bool {
			prev, curr := buildSnapshots(deltas)
			p, err := CPUUsagePercent(prev, curr)
			if err != nil {
				var windowErr apperrors.InsufficientSampleWindowError
				return errors.As(err, &windowErr)
			}
			return p >= 0 && p <= 100
		},
		gen.SliceOf(genCoreDelta()),
	))

	properties.Property("insufficient window iff no core advanced", prop.ForAll(
		func(deltas []coreDelta) bool {
			advanced := false
			for _, d := range deltas {
				if d.ActiveDelta+d.IdleDelta > 0 {
					advanced = true
				}
			}
			prev, curr := buildSnapshots(deltas)
			_, err := CPUUsagePercent(prev, curr)
			return advanced == (err == nil)
		},
		gen.SliceOf(genCoreDelta()),
	))

	properties.Property("computation is idempotent", prop.ForAll(
		func(deltas []coreDelta) bool {
			prev, curr := buildSnapshots(deltas)
			p1, err1 := CPUUsagePercent(prev, curr)
			p2, err2 := CPUUsagePercent(prev, curr)
			return p1 == p2 && (err1 == nil) == (err2 == nil)
		},
		gen.SliceOf(genCoreDelta()),
	))

	properties.Property("swapping snapshots never yields a positive reading from reset cores", prop.ForAll(
		func(deltas []coreDelta) bool {
			prev, curr := buildSnapshots(deltas)
			u, err := CPUUsage(curr, prev)
			if err != nil {
				return true
			}
			// Only cores with zero delta in both counters could survive the reversal,
			// and those contribute no ticks, so nothing may be included.
			return len(u.Included) == 0
		},
		gen.SliceOf(genCoreDelta()),
	))

	properties.TestingRun(t)
}

// TestMemUsedBytes_PropertyBased checks the used-memory bound.
func TestMemUsedBytes_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("used never exceeds total", prop.ForAll(
		func(total, free, avail, cached uint64, hasAvail, hasCached bool) bool {
			s := counters.MemorySnapshot{Total: total, Free: free}
			if hasAvail {
				s.Available = &avail
			}
			if hasCached {
				s.Cached = &cached
			}
			used := MemUsedBytes(s)
			return used <= total && used == MemUsedBytes(s)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
