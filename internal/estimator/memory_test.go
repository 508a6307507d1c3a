package estimator

import (
	"testing"

	"github.com/agbru/scrapster/internal/counters"
)

func ptr(v uint64) *uint64 { return &v }

func TestMemUsedBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		snap counters.MemorySnapshot
		want uint64
	}{
		{
			name: "available preferred",
			snap: counters.MemorySnapshot{Total: 1_000_000, Free: 100_000, Available: ptr(400_000), Cached: ptr(50_000)},
			want: 600_000,
		},
		{
			name: "cached when available missing",
			snap: counters.MemorySnapshot{Total: 1_000_000, Free: 100_000, Cached: ptr(300_000)},
			want: 600_000,
		},
		{
			name: "free only",
			snap: counters.MemorySnapshot{Total: 1_000_000, Free: 250_000},
			want: 750_000,
		},
		{
			name: "available above total clamps to zero",
			snap: counters.MemorySnapshot{Total: 1_000, Free: 0, Available: ptr(2_000)},
			want: 0,
		},
		{
			name: "free plus cached above total clamps to zero",
			snap: counters.MemorySnapshot{Total: 1_000, Free: 800, Cached: ptr(400)},
			want: 0,
		},
		{
			name: "free above total clamps to zero",
			snap: counters.MemorySnapshot{Total: 1_000, Free: 5_000},
			want: 0,
		},
		{
			name: "zero available means fully used",
			snap: counters.MemorySnapshot{Total: 1_000, Free: 10, Available: ptr(0)},
			want: 1_000,
		},
		{
			name: "empty snapshot",
			snap: counters.MemorySnapshot{},
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MemUsedBytes(tt.snap)
			if got != tt.want {
				t.Errorf("MemUsedBytes() = %d, want %d", got, tt.want)
			}
			if got > tt.snap.Total {
				t.Errorf("MemUsedBytes() = %d exceeds total %d", got, tt.snap.Total)
			}
		})
	}
}
