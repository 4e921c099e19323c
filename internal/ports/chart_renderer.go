package ports

import "github.com/bench-labs/phlog/internal/domain"

// AxisBounds holds the operator-set chart axis limits: elapsed minutes on X,
// pH on Y.
type AxisBounds struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// DefaultAxisBounds returns the default limits: one hour of elapsed time
// and the full pH scale.
func DefaultAxisBounds() AxisBounds {
	return AxisBounds{XMin: 0, XMax: 60, YMin: 0, YMax: 14}
}

// ChartRenderer redraws the session chart. The redraw policy is clear and
// redraw: every call receives the full series, not a delta.
type ChartRenderer interface {
	// Render draws the series within the given axis bounds. An empty series
	// produces a blank chart (after a reset).
	Render(series []domain.Sample, bounds AxisBounds) error
}
