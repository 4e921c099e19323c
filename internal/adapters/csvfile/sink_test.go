package csvfile

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

func sampleAt(start time.Time, offset time.Duration, value float64) domain.Sample {
	return domain.NewSample(value, start, start.Add(offset))
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return rows
}

func TestTargetResolution(t *testing.T) {
	var noop ports.Logger
	tests := []struct {
		name, dir, file, wantSuffix string
		wantEmpty                   bool
	}{
		{"both set", "/data", "run1", "run1.csv", false},
		{"extension kept", "/data", "run1.csv", "run1.csv", false},
		{"no dir", "", "run1", "", true},
		{"no file", "/data", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSink(tt.dir, tt.file, noop)
			got := s.Target()
			if tt.wantEmpty {
				if got != "" {
					t.Errorf("Target() = %q, want empty", got)
				}
				return
			}
			if got == "" || got[len(got)-len(tt.wantSuffix):] != tt.wantSuffix {
				t.Errorf("Target() = %q, want suffix %q", got, tt.wantSuffix)
			}
		})
	}
}

func TestFreshFileGetsHeaderAndFullSeries(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir, "session", nil)
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

	// Series accumulated before the first write reaches the file whole.
	series := []domain.Sample{
		sampleAt(start, 0, 7.00),
		sampleAt(start, time.Minute, 7.10),
		sampleAt(start, 2*time.Minute, 6.90),
	}
	if err := sink.Append(series, series[2]); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, sink.Target())
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 1 header + 3 data", len(rows))
	}
	if rows[0][0] != "Timestamp" || rows[0][1] != "Elapsed Time (min)" || rows[0][2] != "pH" {
		t.Errorf("header = %v", rows[0])
	}

	for i, want := range []float64{7.00, 7.10, 6.90} {
		got, err := strconv.ParseFloat(rows[i+1][2], 64)
		if err != nil {
			t.Fatalf("row %d pH parse: %v", i+1, err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("row %d pH = %v, want %v", i+1, got, want)
		}
	}
}

func TestExistingFileGetsSingleRowAppend(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir, "session", nil)
	start := time.Now()

	series := []domain.Sample{sampleAt(start, 0, 7.00)}
	if err := sink.Append(series, series[0]); err != nil {
		t.Fatalf("first Append: %v", err)
	}

	next := sampleAt(start, time.Minute, 7.10)
	series = append(series, next)
	if err := sink.Append(series, next); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	rows := readRows(t, sink.Target())
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 1 header + 2 data", len(rows))
	}

	// Header must appear exactly once.
	for i := 1; i < len(rows); i++ {
		if rows[i][0] == "Timestamp" {
			t.Errorf("header repeated at row %d", i)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir, "roundtrip", nil)
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

	var series []domain.Sample
	for i := 0; i < 10; i++ {
		s := sampleAt(start, time.Duration(i)*30*time.Second, 6.5+float64(i)*0.07)
		series = append(series, s)
		if err := sink.Append(series, s); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	rows := readRows(t, sink.Target())
	if len(rows) != 11 {
		t.Fatalf("rows = %d, want 11", len(rows))
	}
	for i, s := range series {
		row := rows[i+1]
		elapsed, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			t.Fatalf("row %d elapsed parse: %v", i+1, err)
		}
		value, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			t.Fatalf("row %d value parse: %v", i+1, err)
		}
		if math.Abs(elapsed-s.ElapsedMinutes) > 1e-9 {
			t.Errorf("row %d elapsed = %v, want %v", i+1, elapsed, s.ElapsedMinutes)
		}
		if math.Abs(value-s.Value) > 1e-9 {
			t.Errorf("row %d value = %v, want %v", i+1, value, s.Value)
		}
	}
}

func TestAppendWithEmptyBindingIsNoop(t *testing.T) {
	sink := NewSink("", "", nil)
	s := sampleAt(time.Now(), 0, 7.0)
	if err := sink.Append([]domain.Sample{s}, s); err != nil {
		t.Errorf("Append with empty binding: %v", err)
	}
}

func TestAppendFailsWhenDirectoryVanished(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir+"/gone", "session", nil)
	s := sampleAt(time.Now(), 0, 7.0)
	if err := sink.Append([]domain.Sample{s}, s); err == nil {
		t.Error("expected error when output directory does not exist")
	}
}
