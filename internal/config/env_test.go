package config

import (
	"bytes"
	"testing"
	"time"
)

// Tests in this file use t.Setenv and therefore cannot run in parallel.

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCRAPSTER_COUNT", "9")
	t.Setenv("SCRAPSTER_INTERVAL", "2s")
	t.Setenv("SCRAPSTER_SOURCE", "psutil")
	t.Setenv("SCRAPSTER_JSON", "yes")
	t.Setenv("SCRAPSTER_PAUSE", "not-a-duration")

	cfg, err := ParseConfig("scrapster", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Count != 9 {
		t.Errorf("Count = %d, want 9", cfg.Count)
	}
	if cfg.Interval != 2*time.Second {
		t.Errorf("Interval = %s, want 2s", cfg.Interval)
	}
	if cfg.Source != "psutil" {
		t.Errorf("Source = %q, want psutil", cfg.Source)
	}
	if !cfg.JSON {
		t.Error("JSON should be enabled by SCRAPSTER_JSON=yes")
	}
	if cfg.Pause != DefaultPause {
		t.Errorf("invalid SCRAPSTER_PAUSE should be ignored, got %s", cfg.Pause)
	}
}

func TestEnvOverrides_FlagsWin(t *testing.T) {
	t.Setenv("SCRAPSTER_COUNT", "9")
	t.Setenv("SCRAPSTER_QUIET", "true")

	cfg, err := ParseConfig("scrapster", []string{"-count", "2", "-quiet=false"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Count != 2 {
		t.Errorf("Count = %d, want flag value 2", cfg.Count)
	}
	if cfg.Quiet {
		t.Error("Quiet should keep the flag value")
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}
