package chartpng

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func renderToTemp(t *testing.T, series []domain.Sample) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.png")
	r := NewRenderer(path, nil)
	if err := r.Render(series, ports.DefaultAxisBounds()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return path
}

func TestRenderWritesPNG(t *testing.T) {
	start := time.Now()
	series := []domain.Sample{
		domain.NewSample(7.0, start, start),
		domain.NewSample(7.1, start, start.Add(time.Minute)),
		domain.NewSample(6.9, start, start.Add(2*time.Minute)),
	}

	path := renderToTemp(t, series)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderEmptySeries(t *testing.T) {
	path := renderToTemp(t, nil)
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("blank chart not written: %v", err)
	}
}

func TestRenderSingleSample(t *testing.T) {
	start := time.Now()
	renderToTemp(t, []domain.Sample{domain.NewSample(7.0, start, start)})
}

func TestRenderLeavesNoTempFile(t *testing.T) {
	path := renderToTemp(t, nil)
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after render")
	}
}

func TestRenderReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	r := NewRenderer(path, nil)
	start := time.Now()

	if err := r.Render(nil, ports.DefaultAxisBounds()); err != nil {
		t.Fatalf("first Render: %v", err)
	}
	series := []domain.Sample{
		domain.NewSample(7.0, start, start),
		domain.NewSample(7.2, start, start.Add(time.Minute)),
	}
	if err := r.Render(series, ports.AxisBounds{XMin: 0, XMax: 10, YMin: 6, YMax: 8}); err != nil {
		t.Fatalf("second Render: %v", err)
	}
}
