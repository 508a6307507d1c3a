package cli

import (
	"io"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/scrapster/internal/cli/mocks"
)

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("suffix = %q", s.Suffix)
	}
}

// TestSpinnerIndicator overrides the package-level spinner factory and so
// does not run in parallel.
func TestSpinnerIndicator(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockSpinner(ctrl)
	second := mocks.NewMockSpinner(ctrl)

	gomock.InOrder(
		first.EXPECT().UpdateSuffix(" sample 0: measuring over 1s"),
		first.EXPECT().Start(),
		first.EXPECT().Stop(),
		second.EXPECT().UpdateSuffix(" sample 1: measuring over 1s"),
		second.EXPECT().Start(),
		second.EXPECT().Stop(),
	)

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	spinners := []Spinner{first, second}
	newSpinner = func(...spinner.Option) Spinner {
		s := spinners[0]
		spinners = spinners[1:]
		return s
	}

	var si SpinnerIndicator
	si.Start(io.Discard, "sample 0: measuring over 1s")
	// Starting again stops the running spinner.
	si.Start(io.Discard, "sample 1: measuring over 1s")
	si.Stop()
	si.Stop()
}
