package estimator

import "github.com/agbru/scrapster/internal/counters"

// MemUsedBytes collapses a memory snapshot into one "used" figure, preferring
// the most reclaim-aware field the platform reports:
//
//	Available reported: Total - Available
//	Cached reported:    Total - Free - Cached
//	otherwise:          Total - Free
//
// The result is clamped to [0, Total].
func MemUsedBytes(snap counters.MemorySnapshot) uint64 {
	switch {
	case snap.Available != nil:
		return saturatingSub(snap.Total, *snap.Available)
	case snap.Cached != nil:
		return saturatingSub(saturatingSub(snap.Total, snap.Free), *snap.Cached)
	default:
		return saturatingSub(snap.Total, snap.Free)
	}
}

func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}
