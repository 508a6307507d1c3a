// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the SCRAPSTER_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
// Unparsable values are ignored.
var envOverrides = []envOverride{
	// Numeric overrides
	{"COUNT", []string{"n", "count"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Count = parsed
		}
	}},

	// Duration overrides
	{"INTERVAL", []string{"interval"}, func(c *AppConfig, v string) {
		setDuration(&c.Interval, v)
	}},
	{"PAUSE", []string{"pause"}, func(c *AppConfig, v string) {
		setDuration(&c.Pause, v)
	}},
	{"MIN_INTERVAL", []string{"min-interval"}, func(c *AppConfig, v string) {
		setDuration(&c.MinInterval, v)
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		setDuration(&c.Timeout, v)
	}},

	// String overrides
	{"SOURCE", []string{"source"}, func(c *AppConfig, v string) {
		c.Source = v
	}},
	{"PROC_ROOT", []string{"proc-root"}, func(c *AppConfig, v string) {
		c.ProcRoot = v
	}},
	{"TELEMETRY_OUT", []string{"telemetry-out"}, func(c *AppConfig, v string) {
		c.TelemetryOut = v
	}},

	// Boolean overrides
	{"JSON", []string{"json"}, func(c *AppConfig, v string) {
		c.JSON = parseBoolEnv(v, c.JSON)
	}},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

func setDuration(dst *time.Duration, v string) {
	if parsed, err := time.ParseDuration(v); err == nil {
		*dst = parsed
	}
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with SCRAPSTER_):
//   - COUNT, INTERVAL, PAUSE, MIN_INTERVAL, TIMEOUT, SOURCE, PROC_ROOT,
//     TELEMETRY_OUT, JSON, QUIET, VERBOSE, NO_COLOR, CONFIG
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
