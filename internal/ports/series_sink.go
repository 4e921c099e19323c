package ports

import "github.com/bench-labs/phlog/internal/domain"

// SeriesSink persists the session series to durable storage.
type SeriesSink interface {
	// Append persists latest, which is already the last element of series.
	// When the target does not exist yet the implementation writes the full
	// current series (header included); afterwards it appends only the new
	// row without repeating the header.
	Append(series []domain.Sample, latest domain.Sample) error

	// Target returns the resolved destination path, or "" when no output
	// binding (directory and filename) is configured. The aggregator skips
	// persistence for an empty target without raising an error.
	Target() string
}
