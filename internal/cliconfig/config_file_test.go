package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
port = "/dev/ttyUSB0"
baud_rate = 9600
output_dir = "/data/ph"
output_file = "run1"
poll_interval = "500ms"

[chart]
x_min = 0.0
x_max = 120.0
y_min = 4.0
y_max = 10.0
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.BaudRate != 9600 {
		t.Errorf("BaudRate = %d", cfg.BaudRate)
	}
	if cfg.OutputDir != "/data/ph" || cfg.OutputFile != "run1" {
		t.Errorf("output binding = %q/%q", cfg.OutputDir, cfg.OutputFile)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.XMax != 120 || cfg.YMin != 4 || cfg.YMax != 10 {
		t.Errorf("bounds = %+v", cfg)
	}
}

func TestApplyFileConfigPartial(t *testing.T) {
	path := writeConfig(t, `port = "/dev/ttyACM0"`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		t.Fatal(err)
	}

	// Unspecified fields keep their defaults.
	if cfg.BaudRate != 1200 {
		t.Errorf("BaudRate = %d, want default 1200", cfg.BaudRate)
	}
	if cfg.XMax != 60 || cfg.YMax != 14 {
		t.Errorf("bounds changed without being set: %v/%v", cfg.XMax, cfg.YMax)
	}
}

func TestApplyFileConfigFlagPrecedence(t *testing.T) {
	path := writeConfig(t, `
port = "/dev/fromfile"
baud_rate = 9600
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Port = "/dev/flagged"
	changed := map[string]bool{"port": true}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatal(err)
	}

	if cfg.Port != "/dev/flagged" {
		t.Errorf("Port = %q, flag must win over file", cfg.Port)
	}
	if cfg.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, file value should apply", cfg.BaudRate)
	}
}

func TestLoadFileConfigBadDuration(t *testing.T) {
	path := writeConfig(t, `poll_interval = "soon"`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err == nil {
		t.Error("expected error for unparseable poll_interval")
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
