package config

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/scrapster/internal/errors"
)

// FileConfig mirrors AppConfig in a TOML configuration file. Durations are
// written as Go duration strings ("500ms", "1m").
//
//	count = 5
//	interval = "2s"
//	source = "procfs"
type FileConfig struct {
	Count        int    `toml:"count"`
	Interval     string `toml:"interval"`
	Pause        string `toml:"pause"`
	MinInterval  string `toml:"min_interval"`
	Timeout      string `toml:"timeout"`
	Source       string `toml:"source"`
	ProcRoot     string `toml:"proc_root"`
	TelemetryOut string `toml:"telemetry_out"`
	JSON         bool   `toml:"json"`
	Quiet        bool   `toml:"quiet"`
	Verbose      bool   `toml:"verbose"`
	NoColor      bool   `toml:"no_color"`

	meta      toml.MetaData
	durations map[string]time.Duration
}

// LoadFile reads and decodes a TOML configuration file. Unknown keys and
// malformed durations are reported as apperrors.ConfigError.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("read config file: %v", err)
	}
	return decodeFile(path, string(data))
}

func decodeFile(name, data string) (*FileConfig, error) {
	fc := &FileConfig{}
	meta, err := toml.Decode(data, fc)
	if err != nil {
		return nil, apperrors.NewConfigError("decode TOML %s: %v", name, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, apperrors.NewConfigError("unknown keys in %s: %s", name, strings.Join(keys, ", "))
	}
	fc.meta = meta
	if err := fc.postProcess(); err != nil {
		return nil, apperrors.NewConfigError("%s: %v", name, err)
	}
	return fc, nil
}

func (f *FileConfig) postProcess() error {
	f.durations = make(map[string]time.Duration)
	for key, raw := range map[string]string{
		"interval":     f.Interval,
		"pause":        f.Pause,
		"min_interval": f.MinInterval,
		"timeout":      f.Timeout,
	} {
		if !f.meta.IsDefined(key) {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		f.durations[key] = d
	}
	return nil
}

// applyTo copies the values defined in the file into config, skipping those
// whose flag was set on the command line.
func (f *FileConfig) applyTo(config *AppConfig, fs *flag.FlagSet) {
	set := func(key string, flags []string, apply func()) {
		if f.meta.IsDefined(key) && !isFlagSetAny(fs, flags...) {
			apply()
		}
	}
	setDur := func(key string, flags []string, dst *time.Duration) {
		set(key, flags, func() { *dst = f.durations[key] })
	}

	set("count", []string{"n", "count"}, func() { config.Count = f.Count })
	setDur("interval", []string{"interval"}, &config.Interval)
	setDur("pause", []string{"pause"}, &config.Pause)
	setDur("min_interval", []string{"min-interval"}, &config.MinInterval)
	setDur("timeout", []string{"timeout"}, &config.Timeout)
	set("source", []string{"source"}, func() { config.Source = f.Source })
	set("proc_root", []string{"proc-root"}, func() { config.ProcRoot = f.ProcRoot })
	set("telemetry_out", []string{"telemetry-out"}, func() { config.TelemetryOut = f.TelemetryOut })
	set("json", []string{"json"}, func() { config.JSON = f.JSON })
	set("quiet", []string{"q", "quiet"}, func() { config.Quiet = f.Quiet })
	set("verbose", []string{"v", "verbose"}, func() { config.Verbose = f.Verbose })
	set("no_color", []string{"no-color"}, func() { config.NoColor = f.NoColor })
}
