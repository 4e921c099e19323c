// Package chartpng renders the session series to a PNG file.
//
// The redraw policy is clear and redraw: the whole chart is rebuilt on
// every update rather than patched incrementally. The file is replaced
// atomically so a viewer refreshing it never sees a torn image.
package chartpng

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

// Renderer implements ports.ChartRenderer by writing a PNG file.
type Renderer struct {
	path   string
	logger ports.Logger
}

// NewRenderer creates a renderer that writes to the given path.
func NewRenderer(path string, logger ports.Logger) *Renderer {
	return &Renderer{path: path, logger: logger}
}

// Path returns the destination PNG path.
func (r *Renderer) Path() string {
	return r.path
}

// Render draws the series within bounds and replaces the PNG atomically.
// An empty series yields a blank chart with axes only, which is what a
// reset should leave behind.
func (r *Renderer) Render(series []domain.Sample, bounds ports.AxisBounds) error {
	ch := chart.Chart{
		XAxis:  axis("Time (minutes)", bounds.XMin, bounds.XMax),
		YAxis:  yAxis("pH Value", bounds.YMin, bounds.YMax),
		Series: []chart.Series{buildSeries(series)},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return os.Rename(tmp, r.path)
}

// buildSeries converts samples to a continuous series. go-chart needs at
// least two X values, so short series are padded with a hidden twin point.
func buildSeries(series []domain.Sample) chart.Series {
	if len(series) == 0 {
		return chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
			Style:   chart.Style{Hidden: true},
		}
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, s := range series {
		xs[i] = s.ElapsedMinutes
		ys[i] = s.Value
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+0.001)
		ys = append(ys, ys[0])
	}

	return chart.ContinuousSeries{
		Name:    "pH",
		XValues: xs,
		YValues: ys,
	}
}

func axis(name string, min, max float64) chart.XAxis {
	a := chart.XAxis{Name: name}
	if max > min {
		a.Range = &chart.ContinuousRange{Min: min, Max: max}
	}
	return a
}

func yAxis(name string, min, max float64) chart.YAxis {
	a := chart.YAxis{Name: name}
	if max > min {
		a.Range = &chart.ContinuousRange{Min: min, Max: max}
	}
	return a
}

var _ ports.ChartRenderer = (*Renderer)(nil)
