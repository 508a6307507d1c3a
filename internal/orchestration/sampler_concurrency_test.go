package orchestration

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/scrapster/internal/counters"
)

// tickingSource derives counters from wall time, so any positive window
// yields a valid delta: one core is 25% busy in every millisecond.
type tickingSource struct {
	start time.Time
	calls atomic.Int64
}

func (s *tickingSource) Name() string              { return "ticking" }
func (s *tickingSource) Resolution() time.Duration { return time.Millisecond }

func (s *tickingSource) SampleCPU(ctx context.Context) (counters.CPUSnapshot, error) {
	s.calls.Add(1)
	ms := uint64(time.Since(s.start) / time.Millisecond)
	now := time.Now()
	return counters.NewCPUSnapshot([]counters.CoreTimes{
		{ID: "cpu0", Active: ms, Idle: 3 * ms},
		{ID: "cpu1", Active: 0, Idle: 4 * ms},
	}, now), nil
}

func (s *tickingSource) SampleMemory(ctx context.Context) (counters.MemorySnapshot, error) {
	available := uint64(3 << 30)
	return counters.MemorySnapshot{Total: 8 << 30, Free: 1 << 30, Available: &available, Taken: time.Now()}, nil
}

func TestSampler_ConcurrentCallsAreIndependent(t *testing.T) {
	t.Parallel()
	src := &tickingSource{start: time.Now()}
	sampler := NewSampler(src)
	require.Equal(t, 5*time.Millisecond, sampler.Floor())

	intervals := []int64{30, 60, 45, 90}
	elapsed := make([]time.Duration, len(intervals))
	cpu := make([]float64, len(intervals))

	g, ctx := errgroup.WithContext(context.Background())
	for i, ms := range intervals {
		i := i
		ms := ms
		g.Go(func() error {
			start := time.Now()
			sample, err := sampler.GetMetricsOnce(ctx, ms)
			elapsed[i] = time.Since(start)
			if err != nil {
				return err
			}
			cpu[i] = sample.CPUUsagePercent()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, ms := range intervals {
		assert.GreaterOrEqual(t, elapsed[i], time.Duration(ms)*time.Millisecond, "call %d returned before its interval", i)
		assert.InDelta(t, 12.5, cpu[i], 2.5, "call %d", i)
	}
	assert.Equal(t, int64(2*len(intervals)), src.calls.Load())
}

func TestSampler_ConcurrentFailuresDoNotLeak(t *testing.T) {
	t.Parallel()
	sampler := NewSampler(&tickingSource{start: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	results := make([]error, 8)
	for i := range results {
		i := i
		g.Go(func() error {
			_, results[i] = sampler.GetMetricsOnce(ctx, 60_000)
			return nil
		})
	}
	time.AfterFunc(20*time.Millisecond, cancel)

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled calls did not return")
	}
	for i, err := range results {
		assert.Error(t, err, "call %d", i)
	}
}
