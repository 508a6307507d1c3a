//go:build linux

package counters

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/scrapster/internal/errors"
)

// writeProc lays out a fake procfs tree under a temp dir.
func writeProc(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

const statTwoCores = `cpu  250 5 100 1830 30 2 3 0 0 0
cpu0 100 5 50 900 30 2 3 0 0 0
cpu1 150 0 50 930 0 0 0 0 0 0
intr 0
ctxt 1000
btime 1700000000
processes 42
procs_running 1
procs_blocked 0
`

func TestProcfsSource_SampleCPU(t *testing.T) {
	t.Parallel()
	root := writeProc(t, map[string]string{"stat": statTwoCores})
	src := NewProcfsSource(root)

	snap, err := src.SampleCPU(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Cores, 2)

	assert.Equal(t, CoreTimes{
		ID: "cpu0", Active: 160, Idle: 930,
		Modes: ModeTimes{User: 100, Nice: 5, System: 50, Idle: 900, Iowait: 30, IRQ: 2, SoftIRQ: 3},
	}, snap.Cores[0])
	assert.Equal(t, CoreTimes{
		ID: "cpu1", Active: 200, Idle: 930,
		Modes: ModeTimes{User: 150, System: 50, Idle: 930},
	}, snap.Cores[1])
	assert.False(t, snap.Taken.IsZero())
}

func TestProcfsSource_SampleCPU_OfflineCoreAbsent(t *testing.T) {
	t.Parallel()
	root := writeProc(t, map[string]string{"stat": "cpu  10 0 10 100 0 0 0 0 0 0\ncpu0 5 0 5 50 0 0 0 0 0 0\ncpu2 5 0 5 50 0 0 0 0 0 0\n"})

	snap, err := NewProcfsSource(root).SampleCPU(context.Background())
	require.NoError(t, err)
	ids := []string{snap.Cores[0].ID, snap.Cores[1].ID}
	assert.Equal(t, []string{"cpu0", "cpu2"}, ids)
}

func TestProcfsSource_SampleMemory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		meminfo       string
		wantTotal     uint64
		wantFree      uint64
		wantAvailable *uint64
		wantCached    *uint64
	}{
		{
			name: "modern kernel",
			meminfo: `MemTotal:        1000000 kB
MemFree:          200000 kB
MemAvailable:     400000 kB
Buffers:           10000 kB
Cached:            90000 kB
`,
			wantTotal:     1000000 * 1024,
			wantFree:      200000 * 1024,
			wantAvailable: uint64Ptr(400000 * 1024),
			wantCached:    uint64Ptr(100000 * 1024),
		},
		{
			name: "kernel without MemAvailable",
			meminfo: `MemTotal:        1000000 kB
MemFree:          200000 kB
Cached:            90000 kB
`,
			wantTotal:  1000000 * 1024,
			wantFree:   200000 * 1024,
			wantCached: uint64Ptr(90000 * 1024),
		},
		{
			name: "only total and free",
			meminfo: `MemTotal:        2048 kB
MemFree:          1024 kB
`,
			wantTotal: 2048 * 1024,
			wantFree:  1024 * 1024,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := writeProc(t, map[string]string{"meminfo": tt.meminfo})

			snap, err := NewProcfsSource(root).SampleMemory(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, snap.Total)
			assert.Equal(t, tt.wantFree, snap.Free)
			assert.Equal(t, tt.wantAvailable, snap.Available)
			assert.Equal(t, tt.wantCached, snap.Cached)
		})
	}
}

func TestProcfsSource_Failures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		files map[string]string
		call  func(*ProcfsSource) error
		op    string
	}{
		{
			name:  "missing stat",
			files: map[string]string{},
			call: func(s *ProcfsSource) error {
				_, err := s.SampleCPU(context.Background())
				return err
			},
			op: "cpu",
		},
		{
			name:  "stat without per-cpu lines",
			files: map[string]string{"stat": "cpu  1 2 3 4 0 0 0 0 0 0\nbtime 1\n"},
			call: func(s *ProcfsSource) error {
				_, err := s.SampleCPU(context.Background())
				return err
			},
			op: "cpu",
		},
		{
			name:  "missing meminfo",
			files: map[string]string{},
			call: func(s *ProcfsSource) error {
				_, err := s.SampleMemory(context.Background())
				return err
			},
			op: "memory",
		},
		{
			name:  "meminfo without total",
			files: map[string]string{"meminfo": "MemFree:  10 kB\n"},
			call: func(s *ProcfsSource) error {
				_, err := s.SampleMemory(context.Background())
				return err
			},
			op: "memory",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := writeProc(t, tt.files)
			err := tt.call(NewProcfsSource(root))
			require.Error(t, err)

			var platformErr apperrors.PlatformQueryError
			require.True(t, errors.As(err, &platformErr), "expected PlatformQueryError, got %T", err)
			assert.Equal(t, "procfs", platformErr.Source)
			assert.Equal(t, tt.op, platformErr.Op)
		})
	}
}

func TestProcfsSource_MissingRoot(t *testing.T) {
	t.Parallel()
	src := NewProcfsSource(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := src.SampleCPU(context.Background())
	assert.Equal(t, apperrors.KindPlatformQuery, apperrors.KindOf(err))
}

func TestProcfsSource_CancelledContext(t *testing.T) {
	t.Parallel()
	root := writeProc(t, map[string]string{"stat": statTwoCores})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcfsSource(root).SampleCPU(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcfsSource_Defaults(t *testing.T) {
	t.Parallel()
	src := NewProcfsSource("")
	assert.Equal(t, "procfs", src.Name())
	assert.Equal(t, DefaultProcRoot, src.root)
	assert.Equal(t, "10ms", src.Resolution().String())
}
