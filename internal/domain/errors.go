package domain

import "errors"

// Domain errors represent error conditions in the phlog domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("phlog: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("phlog: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("phlog: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("phlog: invalid configuration")

	// ErrNoPort is returned when ingestion is started without a serial port
	// configured.
	ErrNoPort = errors.New("phlog: no serial port configured")
)
