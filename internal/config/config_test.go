package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	apperrors "github.com/agbru/scrapster/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("scrapster", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("ParseConfig() = %+v, want %+v", cfg, want)
	}
	if cfg.Count != 3 || cfg.Interval != time.Second || cfg.Pause != 100*time.Millisecond {
		t.Errorf("unexpected example caller defaults: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "short count",
			args: []string{"-n", "5"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Count != 5 {
					t.Errorf("Count = %d, want 5", cfg.Count)
				}
			},
		},
		{
			name: "long count alias",
			args: []string{"-count", "7"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Count != 7 {
					t.Errorf("Count = %d, want 7", cfg.Count)
				}
			},
		},
		{
			name: "durations",
			args: []string{"-interval", "250ms", "-pause", "0s", "-min-interval", "50ms", "-timeout", "10s"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Interval != 250*time.Millisecond || cfg.Pause != 0 ||
					cfg.MinInterval != 50*time.Millisecond || cfg.Timeout != 10*time.Second {
					t.Errorf("unexpected durations: %+v", cfg)
				}
			},
		},
		{
			name: "source is normalized",
			args: []string{"-source", " PSUtil "},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Source != "psutil" {
					t.Errorf("Source = %q, want psutil", cfg.Source)
				}
			},
		},
		{
			name: "output flags",
			args: []string{"-json", "-q", "-no-color", "-telemetry-out", "metrics.prom", "-proc-root", "/host/proc"},
			check: func(t *testing.T, cfg AppConfig) {
				if !cfg.JSON || !cfg.Quiet || !cfg.NoColor {
					t.Errorf("bool flags not set: %+v", cfg)
				}
				if cfg.TelemetryOut != "metrics.prom" || cfg.ProcRoot != "/host/proc" {
					t.Errorf("string flags not set: %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ParseConfig("scrapster", tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("ParseConfig(%v) error = %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		args       []string
		wantConfig bool
	}{
		{"zero count", []string{"-n", "0"}, true},
		{"sub-millisecond interval", []string{"-interval", "500us"}, true},
		{"negative pause", []string{"-pause", "-1s"}, true},
		{"negative min interval", []string{"-min-interval", "-5ms"}, true},
		{"zero timeout", []string{"-timeout", "0s"}, true},
		{"positional argument", []string{"extra"}, true},
		{"unknown flag", []string{"-bogus"}, false},
		{"missing config file", []string{"-config", "/nonexistent/scrapster.toml"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("scrapster", tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatalf("ParseConfig(%v) expected error", tt.args)
			}
			var configErr apperrors.ConfigError
			if got := errors.As(err, &configErr); got != tt.wantConfig {
				t.Errorf("errors.As(ConfigError) = %v, want %v (err: %v)", got, tt.wantConfig, err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := ParseConfig("scrapster", []string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Usage: scrapster")) {
		t.Errorf("usage not printed: %q", buf.String())
	}
}
