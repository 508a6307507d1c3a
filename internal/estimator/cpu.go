package estimator

import (
	"math"

	"github.com/agbru/scrapster/internal/counters"
	apperrors "github.com/agbru/scrapster/internal/errors"
)

// Exclusion reasons reported in Breakdown.Excluded.
const (
	ReasonReset     = "counter_reset"
	ReasonNoElapsed = "no_elapsed_ticks"
	ReasonHotplug   = "hotplug"
)

// ExcludedCore names a core left out of the aggregate and why.
type ExcludedCore struct {
	ID     string
	Reason string
}

// ModeShares is the percentage of elapsed CPU time spent in each mode over
// the included cores. Modes the source does not report stay zero.
type ModeShares struct {
	User    float64
	Nice    float64
	System  float64
	Idle    float64
	Iowait  float64
	IRQ     float64
	SoftIRQ float64
	Steal   float64
}

// Breakdown is the detail behind a utilization figure.
type Breakdown struct {
	// Percent is 100*ActiveDelta/TotalDelta, clamped to [0,100].
	Percent float64
	// ActiveDelta and TotalDelta are summed over included cores.
	ActiveDelta uint64
	TotalDelta  uint64
	// Modes splits TotalDelta by CPU mode.
	Modes ModeShares
	// Included lists the cores that contributed, in snapshot order.
	Included []string
	// Excluded lists the cores that were dropped.
	Excluded []ExcludedCore
}

// CPUUsagePercent returns the system-wide CPU utilization between prev and curr.
func CPUUsagePercent(prev, curr counters.CPUSnapshot) (float64, error) {
	u, err := CPUUsage(prev, curr)
	if err != nil {
		return 0, err
	}
	return u.Percent, nil
}

// CPUUsage computes utilization by summing active and total tick deltas over
// every core present in both snapshots. Summing deltas, rather than averaging
// per-core percentages, weights each core by the time it actually accounted.
//
// A core is excluded when it is missing from either snapshot, when any of its
// counters decreased, or when it accumulated no ticks. If no core remains the
// result is an apperrors.InsufficientSampleWindowError.
func CPUUsage(prev, curr counters.CPUSnapshot) (Breakdown, error) {
	before := make(map[string]counters.CoreTimes, len(prev.Cores))
	for _, c := range prev.Cores {
		before[c.ID] = c
	}

	var u Breakdown
	var modes counters.ModeTimes
	seen := make(map[string]struct{}, len(curr.Cores))
	for _, c := range curr.Cores {
		seen[c.ID] = struct{}{}
		p, ok := before[c.ID]
		if !ok {
			u.Excluded = append(u.Excluded, ExcludedCore{ID: c.ID, Reason: ReasonHotplug})
			continue
		}
		if c.Active < p.Active || c.Idle < p.Idle {
			u.Excluded = append(u.Excluded, ExcludedCore{ID: c.ID, Reason: ReasonReset})
			continue
		}
		active := c.Active - p.Active
		total := active + (c.Idle - p.Idle)
		if total == 0 {
			u.Excluded = append(u.Excluded, ExcludedCore{ID: c.ID, Reason: ReasonNoElapsed})
			continue
		}
		u.ActiveDelta += active
		u.TotalDelta += total
		u.Included = append(u.Included, c.ID)
		addModeDeltas(&modes, p.Modes, c.Modes)
	}
	for _, p := range prev.Cores {
		if _, ok := seen[p.ID]; !ok {
			u.Excluded = append(u.Excluded, ExcludedCore{ID: p.ID, Reason: ReasonHotplug})
		}
	}

	if len(u.Included) == 0 {
		return Breakdown{Excluded: u.Excluded}, apperrors.InsufficientSampleWindowError{
			Cores:    len(u.Excluded),
			Excluded: len(u.Excluded),
		}
	}
	u.Percent = ClampPercent(100 * float64(u.ActiveDelta) / float64(u.TotalDelta))
	u.Modes = modeShares(modes, u.TotalDelta)
	return u, nil
}

// addModeDeltas adds curr-prev per mode to acc. A mode that went backwards
// contributes nothing.
func addModeDeltas(acc *counters.ModeTimes, prev, curr counters.ModeTimes) {
	acc.User += delta(prev.User, curr.User)
	acc.Nice += delta(prev.Nice, curr.Nice)
	acc.System += delta(prev.System, curr.System)
	acc.Idle += delta(prev.Idle, curr.Idle)
	acc.Iowait += delta(prev.Iowait, curr.Iowait)
	acc.IRQ += delta(prev.IRQ, curr.IRQ)
	acc.SoftIRQ += delta(prev.SoftIRQ, curr.SoftIRQ)
	acc.Steal += delta(prev.Steal, curr.Steal)
}

func delta(prev, curr uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}

func modeShares(m counters.ModeTimes, total uint64) ModeShares {
	share := func(v uint64) float64 {
		return ClampPercent(100 * float64(v) / float64(total))
	}
	return ModeShares{
		User:    share(m.User),
		Nice:    share(m.Nice),
		System:  share(m.System),
		Idle:    share(m.Idle),
		Iowait:  share(m.Iowait),
		IRQ:     share(m.IRQ),
		SoftIRQ: share(m.SoftIRQ),
		Steal:   share(m.Steal),
	}
}

// ClampPercent bounds p to [0,100]. NaN maps to 0.
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
