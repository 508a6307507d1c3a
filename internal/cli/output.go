// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySample], [DisplaySampleJSON], [DisplayError].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatSampleLine], [FormatSampleDetails], [FormatCPUModes].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/format"
	"github.com/agbru/scrapster/internal/metrics"
	"github.com/agbru/scrapster/internal/orchestration"
	"github.com/agbru/scrapster/internal/ui"
)

// GaugeWidth is the number of cells of the CPU gauge.
const GaugeWidth = 20

// FormatSampleLine formats the canonical, uncolored line of one sample:
//
//	sample 0: cpu=12.34% mem_used=123456789
func FormatSampleLine(index int, s metrics.Sample) string {
	return fmt.Sprintf("sample %d: %s", index, s)
}

// FormatSampleDetails formats the human-readable extras shown after the
// sample line in normal mode.
func FormatSampleDetails(s metrics.Sample) string {
	return fmt.Sprintf("%s of %s used (%s), source %s",
		format.FormatBytes(s.MemUsedBytes()),
		format.FormatBytes(s.MemTotalBytes()),
		format.FormatPercent(s.MemUsedPercent()),
		s.Source())
}

// FormatCPUModes formats the CPU modes an operator usually looks at first.
func FormatCPUModes(s metrics.Sample) string {
	m := s.CPUModes()
	return fmt.Sprintf("user %s, system %s, iowait %s, irq %s, steal %s",
		format.FormatPercent(m.User+m.Nice),
		format.FormatPercent(m.System),
		format.FormatPercent(m.Iowait),
		format.FormatPercent(m.IRQ+m.SoftIRQ),
		format.FormatPercent(m.Steal))
}

// DisplaySample writes one sample. Quiet mode prints only the canonical line.
func DisplaySample(out io.Writer, res orchestration.SampleResult, quiet bool) {
	line := FormatSampleLine(res.Index, res.Sample)
	if quiet {
		fmt.Fprintln(out, line)
		return
	}
	fmt.Fprintf(out, "%s%s%s  %s %s\n",
		ui.ColorBold(), line, ui.ColorReset(),
		ui.RenderGauge(res.Sample.CPUUsagePercent(), GaugeWidth),
		format.FormatExecutionDuration(res.Duration))
	fmt.Fprintf(out, "  %s%s%s\n", ui.ColorCyan(), FormatSampleDetails(res.Sample), ui.ColorReset())
	if res.Sample.HasCPUModes() {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorMagenta(), FormatCPUModes(res.Sample), ui.ColorReset())
	}
}

type jsonSample struct {
	Sample          int     `json:"sample"`
	CPUUsagePercent float64 `json:"cpu_usage_percent"`
	MemUsedBytes    uint64  `json:"mem_used_bytes"`
	MemTotalBytes   uint64  `json:"mem_total_bytes"`
	Source          string  `json:"source"`
	DurationMs      int64   `json:"duration_ms"`

	CPUModes *metrics.CPUModesJSON `json:"cpu_modes,omitempty"`
}

type jsonError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// DisplaySampleJSON writes one sample as a single-line JSON object.
func DisplaySampleJSON(out io.Writer, res orchestration.SampleResult) error {
	return json.NewEncoder(out).Encode(jsonSample{
		Sample:          res.Index,
		CPUUsagePercent: res.Sample.CPUUsagePercent(),
		MemUsedBytes:    res.Sample.MemUsedBytes(),
		MemTotalBytes:   res.Sample.MemTotalBytes(),
		Source:          res.Sample.Source(),
		DurationMs:      res.Duration.Milliseconds(),
		CPUModes:        res.Sample.CPUModesJSON(),
	})
}

// DisplayErrorJSON writes a failed call as a single-line JSON object.
func DisplayErrorJSON(out io.Writer, err error) error {
	return json.NewEncoder(out).Encode(jsonError{
		Error: err.Error(),
		Kind:  string(apperrors.KindOf(err)),
	})
}

// DisplayError writes a colored, kind-specific error message.
func DisplayError(out io.Writer, err error, duration time.Duration) {
	var title string
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidArgument:
		title = "Invalid sampling request"
	case apperrors.KindPlatformQuery:
		title = "Could not read system counters"
	case apperrors.KindInsufficientSampleWindow:
		title = "Sampling window too short"
	case apperrors.KindCancelled:
		title = "Sampling cancelled"
	default:
		title = "Sampling failed"
	}
	fmt.Fprintf(out, "%s%s%s after %s: %v\n", ui.ColorRed(), title, ui.ColorReset(),
		format.FormatExecutionDuration(duration), err)
}

// DisplaySummary writes the run summary: how many samples succeeded and the
// mean CPU utilization over the successful ones.
func DisplaySummary(out io.Writer, results []orchestration.SampleResult) {
	var ok int
	var sum float64
	for _, r := range results {
		if r.Err == nil {
			ok++
			sum += r.Sample.CPUUsagePercent()
		}
	}
	fmt.Fprintf(out, "\n%s--- Summary ---%s\n", ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(out, "Samples: %s%d/%d%s\n", ui.ColorGreen(), ok, len(results), ui.ColorReset())
	if ok > 0 {
		fmt.Fprintf(out, "Mean CPU: %s%s%s\n", ui.ColorYellow(), format.FormatPercent(sum/float64(ok)), ui.ColorReset())
	}
}
