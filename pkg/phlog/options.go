package phlog

import (
	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// SampleSource owns the connection to the meter and converts raw lines
// into Samples. *serial.Reader is the production implementation; tests
// inject scripted sources.
type SampleSource = ports.SampleSource

// SeriesSink persists the session series to durable storage.
type SeriesSink = ports.SeriesSink

// ChartRenderer redraws the session chart after every sample.
type ChartRenderer = ports.ChartRenderer

// SettingsRepository persists operator settings across runs.
type SettingsRepository = ports.SettingsRepository

// Settings are the persisted operator settings.
type Settings = domain.Settings

// Field helpers for the Logger interface, re-exported for plugins and
// embedders.
var (
	String   = ports.String
	Int      = ports.Int
	Float64  = ports.Float64
	Duration = ports.Duration
	Err      = ports.Err
)

// Option configures optional behavior of a Recorder.
type Option func(*options)

// options holds the optional configuration for a Recorder instance.
type options struct {
	logger       ports.Logger
	eventHandler EventHandler
	source       ports.SampleSource
	sink         ports.SeriesSink
	chart        ports.ChartRenderer
	settingsRepo ports.SettingsRepository
	plugins      []Plugin
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for recorder events.
// Events are called synchronously from recorder goroutines.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithSource replaces the serial port reader with a custom sample source.
// When set, Config.Port and Config.BaudRate are ignored.
func WithSource(source SampleSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithSink replaces the CSV file sink with a custom series sink.
// When set, Config.OutputDir and Config.OutputFile are ignored.
func WithSink(sink SeriesSink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithChartRenderer replaces the PNG chart renderer.
// When set, Config.ChartPath is ignored.
func WithChartRenderer(chart ChartRenderer) Option {
	return func(o *options) {
		o.chart = chart
	}
}

// WithSettingsRepository replaces the file-based settings store.
// When set, Config.SettingsDir is ignored.
func WithSettingsRepository(repo SettingsRepository) Option {
	return func(o *options) {
		o.settingsRepo = repo
	}
}

// WithPlugin registers a plugin to be initialized when the Recorder
// starts. Plugins are initialized in registration order and shut down in
// reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
