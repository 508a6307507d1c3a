//go:generate mockgen -source=spinner.go -destination=mocks/mock_spinner.go -package=mocks

package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/scrapster/internal/orchestration"
)

// SpinnerRefreshRate defines the refresh frequency of the wait spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner abstracts a terminal spinner so that the wait indicator can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation and clears its line.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerIndicator shows a spinner while a sample is being measured.
// It implements orchestration.WaitIndicator.
type SpinnerIndicator struct {
	mu      sync.Mutex
	current Spinner
}

var _ orchestration.WaitIndicator = (*SpinnerIndicator)(nil)

// Start shows a spinner followed by label on out. A spinner that is already
// running is stopped first.
func (si *SpinnerIndicator) Start(out io.Writer, label string) {
	si.mu.Lock()
	defer si.mu.Unlock()
	if si.current != nil {
		si.current.Stop()
	}
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + label)
	s.Start()
	si.current = s
}

// Stop halts the running spinner, if any.
func (si *SpinnerIndicator) Stop() {
	si.mu.Lock()
	defer si.mu.Unlock()
	if si.current != nil {
		si.current.Stop()
		si.current = nil
	}
}
