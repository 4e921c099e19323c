package phlog

import (
	"fmt"
	"time"

	"github.com/bench-labs/phlog/internal/adapters/serial"
	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

// AxisBounds holds the chart axis limits: elapsed minutes on X, pH on Y.
type AxisBounds = ports.AxisBounds

// DefaultAxisBounds returns the default chart limits: one hour of elapsed
// time and the full pH scale.
func DefaultAxisBounds() AxisBounds {
	return ports.DefaultAxisBounds()
}

// Config holds the configuration for a pH recorder.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Port is the platform serial port identifier (e.g. /dev/ttyUSB0,
	// COM3). Required unless a custom source is injected via WithSource.
	Port string

	// BaudRate must be one of serial.SupportedBaudRates. Default: 1200,
	// the rate the meter ships configured for.
	BaudRate int

	// OutputDir and OutputFile together name the CSV log. Both must be set
	// for CSV persistence; when either is empty samples are kept in memory
	// only.
	OutputDir  string
	OutputFile string

	// ChartPath is where the session chart PNG is written after every
	// sample. Empty disables chart rendering.
	ChartPath string

	// SettingsDir is where operator settings (the selected port) are
	// persisted across runs. Empty disables settings persistence.
	SettingsDir string

	// PollInterval is the pause between empty serial polls.
	// Default: one second.
	PollInterval time.Duration

	// Bounds are the chart axis limits. A zero value means
	// DefaultAxisBounds().
	Bounds AxisBounds

	// ConfigPath is the TOML config file path handed to plugins that watch
	// it (see plugins/chartbounds). Empty disables such plugins.
	ConfigPath string
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, set Port before calling New.
func DefaultConfig() Config {
	return Config{
		BaudRate:     1200,
		PollInterval: serial.DefaultPollInterval,
		Bounds:       DefaultAxisBounds(),
	}
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = 1200
	}
	if c.PollInterval <= 0 {
		c.PollInterval = serial.DefaultPollInterval
	}
	if (c.Bounds == AxisBounds{}) {
		c.Bounds = DefaultAxisBounds()
	}
}

// Validate checks the configuration for errors. It does not reject an
// empty Port; New does that itself, because an injected source removes the
// need for one.
func (c *Config) Validate() error {
	if !serial.SupportedBaud(c.BaudRate) {
		return fmt.Errorf("%w: baud rate %d not supported (valid: %v)",
			domain.ErrInvalidConfig, c.BaudRate, serial.SupportedBaudRates)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", domain.ErrInvalidConfig)
	}
	if c.Bounds.XMax < c.Bounds.XMin {
		return fmt.Errorf("%w: x-max %v below x-min %v", domain.ErrInvalidConfig, c.Bounds.XMax, c.Bounds.XMin)
	}
	if c.Bounds.YMax < c.Bounds.YMin {
		return fmt.Errorf("%w: y-max %v below y-min %v", domain.ErrInvalidConfig, c.Bounds.YMax, c.Bounds.YMin)
	}
	if c.OutputFile != "" && c.OutputDir == "" {
		return fmt.Errorf("%w: output file set without output directory", domain.ErrInvalidConfig)
	}
	return nil
}
