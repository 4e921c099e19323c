package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaudRate != 1200 {
		t.Errorf("BaudRate = %d, want 1200", cfg.BaudRate)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.PollInterval)
	}
	if cfg.XMax != 60 || cfg.YMax != 14 {
		t.Errorf("bounds = %v/%v, want 60/14", cfg.XMax, cfg.YMax)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadBaud(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaudRate = 300
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported baud rate")
	}
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YMin = 10
	cfg.YMax = 4
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted Y bounds")
	}
}

func TestValidateRejectsFileWithoutDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputFile = "run1"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for output file without directory")
	}
}

func TestValidateAllowsEmptyPort(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty port should pass validation (settings fallback applies later): %v", err)
	}
}

func TestSetterRespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = "/dev/flagged"

	s := newConfigSetter(map[string]bool{"port": true})
	s.setString("port", "/dev/fromfile", &cfg.Port)

	if cfg.Port != "/dev/flagged" {
		t.Errorf("Port = %q, flag value must win", cfg.Port)
	}
}

func TestSetFloatAppliesZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YMin = 3

	zero := 0.0
	s := newConfigSetter(nil)
	s.setFloat("y-min", &zero, &cfg.YMin)

	if cfg.YMin != 0 {
		t.Errorf("YMin = %v, want 0 (zero is a legitimate bound)", cfg.YMin)
	}
}
