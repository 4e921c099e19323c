// Package phlog provides an embeddable session recorder for serial bench
// pH meters.
//
// A Recorder reads raw lines from the meter's serial port, extracts pH
// values, and turns them into a session: an in-memory time series, an
// append-only CSV log, and a continuously redrawn chart PNG. It can be
// used through the phlog CLI or embedded as a library in other Go
// programs.
//
// # Basic Usage
//
// To embed a recorder in your application:
//
//	cfg := phlog.DefaultConfig()
//	cfg.Port = "/dev/ttyUSB0"
//	cfg.OutputDir = "/data/runs"
//	cfg.OutputFile = "titration-01"
//	cfg.ChartPath = "/data/runs/chart.png"
//
//	rec, err := phlog.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := rec.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := rec.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Sessions
//
// A session begins when Start() is called from [StateIdle]; that moment
// anchors the elapsed-minutes column of every sample. Stop() halts
// ingestion but keeps the session, so a later Start() resumes it with
// continuous elapsed time. Reset() discards the session entirely; files
// already written are left in place.
//
// # Event Handling
//
// To receive notifications about recorder operations, implement
// [EventHandler] and pass it via [WithEventHandler]:
//
//	handler := &myEventHandler{}
//	rec, err := phlog.New(cfg, phlog.WithEventHandler(handler))
//
// Events are called synchronously from recorder goroutines.
// Implementations should return quickly to avoid blocking ingestion.
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external
// dependencies:
//
//	rec, err := phlog.New(cfg,
//	    phlog.WithSource(scriptedSource),
//	    phlog.WithLogger(customLogger),
//	)
//
// # Lifecycle States
//
// A Recorder can be in one of six states: [StateIdle], [StateStarting],
// [StateRunning], [StateStopping], [StateStopped], or [StateCrashed].
// Use [Recorder.Status] to query the current state.
//
// # Plugins
//
// Recorders support optional plugins for extended functionality:
//
//	import "github.com/bench-labs/phlog/plugins/chartbounds"
//
//	rec, err := phlog.New(cfg,
//	    chartbounds.WithChartBounds(chartbounds.DefaultConfig()),
//	)
package phlog
