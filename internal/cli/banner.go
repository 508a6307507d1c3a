package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/scrapster/internal/config"
	"github.com/agbru/scrapster/internal/ui"
)

// PrintExecutionConfig displays the run configuration before sampling starts.
//
// Parameters:
//   - cfg: The application configuration.
//   - sourceName: The counter source in use.
//   - floor: The smallest interval the sampler accepts.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, sourceName string, floor time.Duration, out io.Writer) {
	fmt.Fprintf(out, "--- Sampling Configuration ---\n")
	fmt.Fprintf(out, "Taking %s%d%s samples of %s%s%s each, %s apart.\n",
		ui.ColorMagenta(), cfg.Count, ui.ColorReset(),
		ui.ColorYellow(), cfg.Interval, ui.ColorReset(),
		cfg.Pause)
	fmt.Fprintf(out, "Counter source: %s%s%s (minimum interval %s).\n",
		ui.ColorCyan(), sourceName, ui.ColorReset(), floor)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s/%s, Go %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	fmt.Fprintf(out, "\n--- Sampling ---\n")
}
