// Package chartbounds provides live chart axis adjustment for phlog.
// When enabled, it watches the TOML config file for changes and applies
// the [chart] axis limits to the running recorder, redrawing the chart
// without a restart.
package chartbounds

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bench-labs/phlog/internal/cliconfig"
	"github.com/bench-labs/phlog/pkg/phlog"
)

// Plugin implements live chart axis adjustment.
// It monitors the config file and reapplies the [chart] section whenever
// the file is written.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration

	// Runtime state
	configPath string
	logger     phlog.Logger
	apply      func(phlog.AxisBounds)
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	debounce   *time.Timer
	closed     bool
}

// Config holds configuration options for the chart bounds plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// reloading. Editors often produce several write events per save.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new chart bounds plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "chartbounds"
}

// Initialize sets up the plugin and starts the config file watcher.
// A watcher left over from a previous session is torn down first, so the
// plugin instance can be reused across recorder restarts.
func (p *Plugin) Initialize(ctx context.Context, cfg phlog.PluginConfig) error {
	if p.cancel != nil {
		p.cancel()
		p.wg.Wait()
	}

	p.mu.Lock()
	p.configPath = cfg.ConfigPath
	p.logger = cfg.Logger
	p.apply = cfg.ApplyAxisBounds
	p.closed = false
	p.mu.Unlock()

	if p.configPath == "" || p.apply == nil {
		p.logger.Warn("chart bounds watcher disabled: no config file in use")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("chart bounds plugin initialized",
		phlog.String("config", p.configPath))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the config file watcher and any pending debounced
// reload, so no bounds are applied after it returns.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	if p.debounce != nil {
		p.debounce.Stop()
		p.debounce = nil
	}
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// watchLoop watches the config file's directory for changes.
// Watching the directory rather than the file survives the
// write-to-temp-then-rename pattern editors and config writers use.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("chart bounds watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.configPath)); err != nil {
		p.logger.Error("chart bounds watcher: failed to watch directory")
		return
	}

	// Apply the current file once so a change made while the recorder was
	// stopped still takes effect.
	p.reload()

	base := filepath.Base(p.configPath)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.debounceReload()

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("chart bounds watcher: watcher error")
		}
	}
}

func (p *Plugin) debounceReload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		p.mu.Lock()
		closed := p.closed
		p.mu.Unlock()
		if closed {
			return
		}
		p.reload()
	})
}

// reload parses the config file and applies its [chart] section.
func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.configPath)
	if err != nil {
		p.logger.Warn("chart bounds watcher: config reload failed",
			phlog.Err(err))
		return
	}

	bounds := phlog.DefaultAxisBounds()
	if fc.Chart.XMin != nil {
		bounds.XMin = *fc.Chart.XMin
	}
	if fc.Chart.XMax != nil {
		bounds.XMax = *fc.Chart.XMax
	}
	if fc.Chart.YMin != nil {
		bounds.YMin = *fc.Chart.YMin
	}
	if fc.Chart.YMax != nil {
		bounds.YMax = *fc.Chart.YMax
	}
	if bounds.XMax < bounds.XMin || bounds.YMax < bounds.YMin {
		p.logger.Warn("chart bounds watcher: ignoring inverted bounds")
		return
	}

	p.apply(bounds)
	p.logger.Info("chart bounds applied",
		phlog.Float64("x_max", bounds.XMax),
		phlog.Float64("y_max", bounds.YMax))
}
