package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/orchestration"
)

func TestCLIResultPresenter(t *testing.T) {
	withoutColors(t)

	t.Run("quiet", func(t *testing.T) {
		p := CLIResultPresenter{Quiet: true}
		var buf bytes.Buffer
		p.PresentSample(sampleResult(0), &buf)
		p.PresentSummary([]orchestration.SampleResult{sampleResult(0)}, &buf)
		if buf.String() != "sample 0: cpu=62.50% mem_used=600000\n" {
			t.Errorf("unexpected quiet output %q", buf.String())
		}

		buf.Reset()
		code := p.HandleError(apperrors.CancelledError{Cause: context.Canceled}, time.Second, &buf)
		if code != apperrors.ExitErrorCanceled {
			t.Errorf("HandleError() = %d, want %d", code, apperrors.ExitErrorCanceled)
		}
		if !strings.HasPrefix(buf.String(), "error: sampling cancelled") {
			t.Errorf("unexpected quiet error %q", buf.String())
		}
	})

	t.Run("normal", func(t *testing.T) {
		p := CLIResultPresenter{}
		var buf bytes.Buffer
		p.PresentSummary([]orchestration.SampleResult{sampleResult(0)}, &buf)
		if !strings.Contains(buf.String(), "--- Summary ---") {
			t.Errorf("summary missing: %q", buf.String())
		}
		code := p.HandleError(apperrors.InsufficientSampleWindowError{Cores: 1, Excluded: 1}, 0, &buf)
		if code != apperrors.ExitErrorSampleWindow {
			t.Errorf("HandleError() = %d, want %d", code, apperrors.ExitErrorSampleWindow)
		}
	})
}

func TestJSONResultPresenter(t *testing.T) {
	t.Parallel()
	var p JSONResultPresenter
	var buf bytes.Buffer

	p.PresentSample(sampleResult(1), &buf)
	p.PresentSummary(nil, &buf)
	code := p.HandleError(apperrors.ValidationError{Field: "interval_ms", Message: "must be positive"}, 0, &buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"sample":1`) {
		t.Errorf("first line should be the sample: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"kind":"invalid_argument"`) {
		t.Errorf("second line should be the error: %s", lines[1])
	}
	if code != apperrors.ExitErrorConfig {
		t.Errorf("HandleError() = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}
