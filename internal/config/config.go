// Package config handles the command-line configuration of scrapster.
// Values are resolved with the priority: CLI flags > environment variables
// (SCRAPSTER_*) > TOML configuration file > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/scrapster/internal/errors"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "SCRAPSTER_"

// Default values of the example caller.
const (
	DefaultCount    = 3
	DefaultInterval = time.Second
	DefaultPause    = 100 * time.Millisecond
	DefaultTimeout  = time.Minute
	DefaultSource   = "auto"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Count is the number of samples to take.
	Count int
	// Interval is the sampling interval of each GetMetricsOnce call.
	Interval time.Duration
	// Pause is the delay between two consecutive calls.
	Pause time.Duration
	// MinInterval raises the platform floor; zero keeps the platform floor.
	MinInterval time.Duration
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Source names the counter source ("auto", "procfs", "psutil", "windows").
	Source string
	// ProcRoot is the procfs mount point used by the procfs source.
	ProcRoot string
	// ConfigFile is an optional TOML file with default values.
	ConfigFile string
	// TelemetryOut, when set, receives the self-telemetry in Prometheus text format.
	TelemetryOut string
	// JSON prints one JSON object per sample.
	JSON bool
	// Quiet prints only the sample lines.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// NoColor disables colored output.
	NoColor bool
	// Completion, when set, prints a shell completion script and exits.
	Completion string
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	return AppConfig{
		Count:    DefaultCount,
		Interval: DefaultInterval,
		Pause:    DefaultPause,
		Timeout:  DefaultTimeout,
		Source:   DefaultSource,
	}
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: An apperrors.ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate() error {
	if c.Count < 1 {
		return apperrors.NewConfigError("count must be at least 1, got %d", c.Count)
	}
	if c.Interval < time.Millisecond {
		return apperrors.NewConfigError("interval must be at least 1ms, got %s", c.Interval)
	}
	if c.Pause < 0 {
		return apperrors.NewConfigError("pause must not be negative, got %s", c.Pause)
	}
	if c.MinInterval < 0 {
		return apperrors.NewConfigError("min-interval must not be negative, got %s", c.MinInterval)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// ParseConfig parses the command-line arguments, applies the configuration
// file and environment overrides, and validates the result.
//
// Parameters:
//   - programName: The name used in usage messages.
//   - args: The arguments without the program name.
//   - errorWriter: Receives usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when -h was given, a parse error, or an apperrors.ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags]\n\nSamples system-wide CPU utilization and memory usage.\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	config := Default()
	fs.IntVar(&config.Count, "n", config.Count, "Number of samples to take.")
	fs.IntVar(&config.Count, "count", config.Count, "Number of samples to take (alias for -n).")
	fs.DurationVar(&config.Interval, "interval", config.Interval, "Sampling interval of each call (e.g. 500ms, 1s).")
	fs.DurationVar(&config.Pause, "pause", config.Pause, "Pause between two calls.")
	fs.DurationVar(&config.MinInterval, "min-interval", config.MinInterval, "Minimum accepted interval (0 keeps the platform floor).")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum duration of the whole run.")
	fs.StringVar(&config.Source, "source", config.Source, "Counter source: auto, procfs, psutil or windows.")
	fs.StringVar(&config.ProcRoot, "proc-root", config.ProcRoot, "procfs mount point (default /proc).")
	fs.StringVar(&config.ConfigFile, "config", config.ConfigFile, "TOML configuration file.")
	fs.StringVar(&config.TelemetryOut, "telemetry-out", config.TelemetryOut, "Write self-telemetry in Prometheus text format to this file.")
	fs.BoolVar(&config.JSON, "json", config.JSON, "Print one JSON object per sample.")
	fs.BoolVar(&config.Quiet, "q", config.Quiet, "Quiet mode: print only the sample lines.")
	fs.BoolVar(&config.Quiet, "quiet", config.Quiet, "Quiet mode (alias for -q).")
	fs.BoolVar(&config.Verbose, "v", config.Verbose, "Verbose mode: log each snapshot.")
	fs.BoolVar(&config.Verbose, "verbose", config.Verbose, "Verbose mode (alias for -v).")
	fs.BoolVar(&config.NoColor, "no-color", config.NoColor, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", config.Completion, "Print a completion script for bash, zsh or fish, then exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		file, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		file.applyTo(&config, fs)
	}

	applyEnvOverrides(&config, fs)
	config.Source = strings.ToLower(strings.TrimSpace(config.Source))

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
