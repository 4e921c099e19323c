// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Hexagonal Architecture, ports are the boundaries between the
// application core and the outside world. They define what the application
// needs from external systems without specifying how those needs are
// fulfilled.
//
// # Port Interfaces
//
//   - [SampleSource]: Owns the serial connection and produces Samples
//   - [SeriesSink]: Persists the session series to durable storage
//   - [ChartRenderer]: Redraws the session chart
//   - [SettingsRepository]: Persists and loads operator settings
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (serial port, CSV file, PNG renderer, zerolog).
package ports
