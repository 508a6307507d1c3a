package cli

import (
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/orchestration"
)

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output. Quiet mode prints only the canonical sample lines.
type CLIResultPresenter struct {
	Quiet bool
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
	_ orchestration.ResultPresenter = JSONResultPresenter{}
	_ orchestration.ErrorHandler    = JSONResultPresenter{}
)

// PresentSample displays one sample.
func (p CLIResultPresenter) PresentSample(result orchestration.SampleResult, out io.Writer) {
	DisplaySample(out, result, p.Quiet)
}

// PresentSummary displays the run summary unless in quiet mode.
func (p CLIResultPresenter) PresentSummary(results []orchestration.SampleResult, out io.Writer) {
	if p.Quiet {
		return
	}
	DisplaySummary(out, results)
}

// HandleError displays err and returns the matching exit code.
func (p CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	if p.Quiet {
		fmt.Fprintf(out, "error: %v\n", err)
	} else {
		DisplayError(out, err, duration)
	}
	return apperrors.ExitCode(err)
}

// JSONResultPresenter prints one JSON object per line, for scripts.
type JSONResultPresenter struct{}

// PresentSample encodes one sample.
func (JSONResultPresenter) PresentSample(result orchestration.SampleResult, out io.Writer) {
	_ = DisplaySampleJSON(out, result)
}

// PresentSummary prints nothing: each line is self-contained.
func (JSONResultPresenter) PresentSummary([]orchestration.SampleResult, io.Writer) {}

// HandleError encodes err and returns the matching exit code.
func (JSONResultPresenter) HandleError(err error, _ time.Duration, out io.Writer) int {
	_ = DisplayErrorJSON(out, err)
	return apperrors.ExitCode(err)
}
