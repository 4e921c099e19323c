package ports

import (
	"context"

	"github.com/bench-labs/phlog/internal/domain"
)

// SampleSource owns the physical connection to the meter and converts raw
// lines into Samples. Implementations run their read loop in a background
// goroutine and never touch files or aggregator state directly.
type SampleSource interface {
	// Start opens the connection and begins reading. Parsed samples are
	// delivered on out and connection-level failures on errs, in arrival
	// order (FIFO, no reordering). A connection failure is reported once;
	// the source stops reading afterwards and does not retry.
	// Start returns an error only when the connection cannot be opened.
	Start(ctx context.Context, out chan<- domain.Sample, errs chan<- error) error

	// Stop requests the read loop to exit, waits for it, and releases the
	// serial handle. No partially-read line is emitted. Callers must wait
	// for Stop to return before reopening the same port. Safe to call on a
	// source that is not running.
	Stop() error
}
