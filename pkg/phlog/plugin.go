package phlog

import "context"

// Plugin extends a Recorder with optional functionality, such as watching
// the config file for chart axis changes. Register plugins with
// WithPlugin; they are initialized when the Recorder starts and shut down
// when it stops.
type Plugin interface {
	// Name returns a short identifier used in logs.
	Name() string

	// Initialize starts the plugin. The context is cancelled when the
	// Recorder stops. An error aborts the Recorder start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and releases its resources. It runs on
	// both the stop and crash paths and may be followed by another
	// Initialize when the recorder restarts; implementations must
	// tolerate repeated calls.
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to every plugin at initialization.
type PluginConfig struct {
	// ConfigPath is the TOML config file path, or "" when none is in use.
	ConfigPath string

	// SettingsDir is the operator settings directory, or "".
	SettingsDir string

	// Logger is the recorder's logger.
	Logger Logger

	// ApplyAxisBounds updates the chart axis limits and redraws the chart.
	// Safe to call from plugin goroutines.
	ApplyAxisBounds func(bounds AxisBounds)
}
