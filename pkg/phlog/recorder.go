package phlog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bench-labs/phlog/internal/adapters/chartpng"
	"github.com/bench-labs/phlog/internal/adapters/csvfile"
	"github.com/bench-labs/phlog/internal/adapters/fs"
	logAdapter "github.com/bench-labs/phlog/internal/adapters/log"
	"github.com/bench-labs/phlog/internal/adapters/serial"
	"github.com/bench-labs/phlog/internal/app"
	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

// Re-exported sentinel errors. Use errors.Is to match them.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrNoPort          = domain.ErrNoPort
)

// sampleChanCapacity buffers ingestion so a slow chart render does not
// stall the serial read loop.
const sampleChanCapacity = 64

// Recorder is a pH meter session recorder that can be embedded in other
// applications. Use New() to create an instance, then Start() to begin
// ingesting readings.
type Recorder struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	agg       *app.Aggregator
	sink      ports.SeriesSink
	chart     ports.ChartRenderer
	settings  ports.SettingsRepository
	logger    ports.Logger
	emitter   *eventEmitterWrapper
	plugins   []Plugin

	mu     sync.Mutex
	source ports.SampleSource
}

// New creates a new Recorder with the given configuration.
// The instance is created in StateIdle; call Start() to begin ingesting.
// Returns an error if the configuration is invalid, or ErrNoPort when no
// port is configured and no custom source is injected.
func New(cfg Config, opts ...Option) (*Recorder, error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Port == "" && o.source == nil {
		return nil, domain.ErrNoPort
	}

	var logger ports.Logger
	if o.logger != nil {
		logger = o.logger
	} else {
		logger = logAdapter.NewNoopLogger()
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(logger, emitter)

	sink := o.sink
	if sink == nil {
		sink = csvfile.NewSink(cfg.OutputDir, cfg.OutputFile, logger)
	}

	chart := o.chart
	if chart == nil && cfg.ChartPath != "" {
		chart = chartpng.NewRenderer(cfg.ChartPath, logger)
	}

	settings := o.settingsRepo
	if settings == nil && cfg.SettingsDir != "" {
		settings = fs.NewSettingsFileRepository(cfg.SettingsDir)
	}

	agg := app.NewAggregator(sink, chart, cfg.Bounds, logger, emitter)

	return &Recorder{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle,
		agg:       agg,
		sink:      sink,
		chart:     chart,
		settings:  settings,
		logger:    logger,
		emitter:   emitter,
		plugins:   o.plugins,
	}, nil
}

// Start begins ingesting readings in the background.
// Returns immediately after starting the read loop.
// Starting from StateIdle fixes the session start time; starting from
// StateStopped or StateCrashed resumes the existing session, so elapsed
// minutes stay continuous across the gap.
// Returns an error if already running or if the port cannot be opened.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := r.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	start := r.agg.Begin(time.Now())

	runCtx, cancel := context.WithCancel(ctx)
	r.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		ConfigPath:      r.config.ConfigPath,
		SettingsDir:     r.config.SettingsDir,
		Logger:          r.logger,
		ApplyAxisBounds: r.agg.SetAxisBounds,
	}
	for _, p := range r.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			r.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = r.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		r.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	source := r.opts.source
	if source == nil {
		source = serial.NewReader(serial.Config{
			Port:         r.config.Port,
			BaudRate:     r.config.BaudRate,
			SessionStart: start,
			PollInterval: r.config.PollInterval,
			Logger:       r.logger,
		})
	}

	out := make(chan domain.Sample, sampleChanCapacity)
	errs := make(chan error, 1)

	if err := source.Start(runCtx, out, errs); err != nil {
		r.logger.Error("sample source start failed", ports.Err(err))
		cancel()
		_ = r.lifecycle.TransitionTo(app.StateCrashed, "source start failed")
		return err
	}
	r.source = source

	r.lifecycle.AddWorker()
	go r.run(runCtx, source, out, errs)

	return nil
}

// run consumes the sample and error channels until shutdown or failure.
func (r *Recorder) run(ctx context.Context, source ports.SampleSource, out <-chan domain.Sample, errs <-chan error) {
	defer r.lifecycle.WorkerDone()

	if err := r.lifecycle.TransitionTo(app.StateRunning, "ingestion started"); err != nil {
		// Stop() won the race; nothing to do.
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case sample := <-out:
			r.agg.OnSample(sample)
		case err := <-errs:
			r.logger.Error("sample source failed", ports.Err(err))
			r.emitter.onSourceError(err)

			// Cancel the run context so plugin watchers exit, then release
			// the port so a restart can reopen it.
			r.lifecycle.Cancel()
			r.mu.Lock()
			if r.source == source {
				r.source = nil
			}
			r.mu.Unlock()
			_ = source.Stop()

			r.shutdownPlugins()

			_ = r.lifecycle.TransitionTo(app.StateCrashed, err.Error())
			return
		}
	}
}

// Stop gracefully shuts down ingestion. The session and its start time are
// preserved, so a later Start() resumes it; use Reset() to discard it.
// Waits up to ShutdownTimeout before forcing shutdown.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (r *Recorder) Stop() error {
	r.mu.Lock()

	if !r.lifecycle.CanStop() {
		r.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := r.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		r.mu.Unlock()
		return err
	}

	r.lifecycle.Cancel()
	source := r.source
	r.source = nil
	r.mu.Unlock()

	if source != nil {
		_ = source.Stop()
	}

	err := r.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	r.shutdownPlugins()

	if err != nil {
		_ = r.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = r.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// shutdownPlugins shuts plugins down in reverse order. Called on both the
// Stop and crash paths; plugin Shutdown must tolerate a repeated call.
func (r *Recorder) shutdownPlugins() {
	shutdownCtx := context.Background()
	for i := len(r.plugins) - 1; i >= 0; i-- {
		p := r.plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
		} else {
			r.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}
}

// Reset discards the current session: ingestion is stopped first if
// running, the in-memory series is cleared, the chart is blanked, and the
// state returns to Idle so the next Start() fixes a fresh start time.
// Already-written CSV files are left untouched.
func (r *Recorder) Reset() error {
	if err := r.Stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
		return err
	}

	switch r.lifecycle.State() {
	case app.StateStopped, app.StateCrashed:
		if err := r.lifecycle.TransitionTo(app.StateIdle, "session reset"); err != nil {
			return err
		}
	}

	r.agg.Reset()
	return nil
}

// SaveSettings persists the operator settings (the selected port).
// A no-op when no settings directory or repository is configured.
func (r *Recorder) SaveSettings(ctx context.Context) error {
	if r.settings == nil {
		return nil
	}
	return r.settings.Save(ctx, domain.Settings{Port: r.config.Port})
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (r *Recorder) Status() State {
	return r.lifecycle.State()
}

// Series returns a copy of the accumulated session series.
func (r *Recorder) Series() []Sample {
	return r.agg.Series()
}

// Len returns the number of samples recorded in the current session.
func (r *Recorder) Len() int {
	return r.agg.Len()
}

// SetAxisBounds applies new chart axis limits and redraws the chart.
func (r *Recorder) SetAxisBounds(bounds AxisBounds) {
	r.agg.SetAxisBounds(bounds)
}

// AxisBounds returns the current chart axis limits.
func (r *Recorder) AxisBounds() AxisBounds {
	return r.agg.AxisBounds()
}

// OutputPath returns the resolved CSV destination, or "" when no output
// binding is configured.
func (r *Recorder) OutputPath() string {
	return r.sink.Target()
}

// ListPorts enumerates the serial ports present on this machine.
func ListPorts() ([]string, error) {
	return serial.ListPorts()
}
