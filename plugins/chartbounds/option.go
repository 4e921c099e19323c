package chartbounds

import "github.com/bench-labs/phlog/pkg/phlog"

// WithChartBounds returns a phlog Option that enables live chart axis
// adjustment. When enabled, the plugin watches the config file for changes
// and applies the [chart] axis limits to the running recorder.
//
// Usage:
//
//	rec, err := phlog.New(cfg,
//	    chartbounds.WithChartBounds(chartbounds.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithChartBounds(cfg Config) phlog.Option {
	plugin := New(cfg)
	return phlog.WithPlugin(plugin)
}

// WithDefaultChartBounds returns a phlog Option that enables live chart
// axis adjustment with default settings (debounce 100ms).
//
// Usage:
//
//	rec, err := phlog.New(cfg, chartbounds.WithDefaultChartBounds())
func WithDefaultChartBounds() phlog.Option {
	return WithChartBounds(DefaultConfig())
}
