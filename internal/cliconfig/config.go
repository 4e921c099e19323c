// Package cliconfig merges phlog's CLI configuration from its three
// sources: the TOML config file, PHLOG_* environment variables, and
// command-line flags. Flags win over environment, environment wins over
// file.
package cliconfig

import (
	"fmt"
	"time"

	"github.com/bench-labs/phlog/internal/adapters/serial"
)

// Config holds CLI configuration for phlog.
type Config struct {
	Port     string
	BaudRate int

	OutputDir  string
	OutputFile string

	ChartPath   string
	SettingsDir string

	PollInterval time.Duration

	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// DefaultConfig returns a Config with default values.
// The meter ships configured for 1200 baud, hence the conservative default.
func DefaultConfig() Config {
	return Config{
		BaudRate:     1200,
		PollInterval: serial.DefaultPollInterval,
		XMin:         0,
		XMax:         60,
		YMin:         0,
		YMax:         14,
	}
}

// Validate checks the configuration for errors.
// An empty port is not rejected here: the caller falls back to the saved
// settings first and reports ErrNoPort itself if none exist.
func (c *Config) Validate() error {
	if !serial.SupportedBaud(c.BaudRate) {
		return fmt.Errorf("baud rate %d not supported (valid: %v)", c.BaudRate, serial.SupportedBaudRates)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.XMax < c.XMin {
		return fmt.Errorf("x-max %v below x-min %v", c.XMax, c.XMin)
	}
	if c.YMax < c.YMin {
		return fmt.Errorf("y-max %v below y-min %v", c.YMax, c.YMin)
	}
	if c.OutputFile != "" && c.OutputDir == "" {
		return fmt.Errorf("output-file set without output-dir")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value from a pointer if not nil and flag not
// changed. Pointer form so a legitimate zero (axis minimum) still applies.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}
