// Package csvfile implements the series sink as a CSV log file.
//
// The file is created fresh with a header and the full current series on the
// first sample targeting a new path; every later sample is appended as a
// single row without repeating the header.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

// timestampLayout is the human-readable form written to the first column.
const timestampLayout = "2006-01-02 15:04:05"

var header = []string{"Timestamp", "Elapsed Time (min)", "pH"}

// Sink implements ports.SeriesSink over a (directory, filename) binding.
type Sink struct {
	dir    string
	file   string
	logger ports.Logger
}

// NewSink creates a Sink for the given output binding. Either part of the
// binding may be empty; Target() then resolves to "" and appends are skipped
// by the caller.
func NewSink(dir, file string, logger ports.Logger) *Sink {
	return &Sink{dir: dir, file: file, logger: logger}
}

// Target returns the resolved CSV path, or "" when the binding is incomplete.
// A filename without a .csv extension gets one appended.
func (s *Sink) Target() string {
	if s.dir == "" || s.file == "" {
		return ""
	}
	name := s.file
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		name += ".csv"
	}
	return filepath.Join(s.dir, name)
}

// Append persists the latest sample. A missing target file receives the
// header and the entire series so rows accumulated before the binding
// existed are not lost; an existing file gets only the new row.
func (s *Sink) Append(series []domain.Sample, latest domain.Sample) error {
	path := s.Target()
	if path == "" {
		return nil
	}

	_, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return s.writeAll(path, series)
	case err != nil:
		return fmt.Errorf("stat %s: %w", path, err)
	default:
		return s.appendRow(path, latest)
	}
}

// writeAll creates the file with the header and every accumulated row.
func (s *Sink) writeAll(path string, series []domain.Sample) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if s.logger != nil {
		s.logger.Info("created csv log", ports.String("path", path), ports.Int("rows", len(series)))
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, sample := range series {
		if err := w.Write(record(sample)); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// appendRow appends one data row without touching the header.
func (s *Sink) appendRow(path string, sample domain.Sample) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(record(sample)); err != nil {
		f.Close()
		return fmt.Errorf("append row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// record formats one sample as a CSV row. Floats use the shortest
// representation that round-trips exactly.
func record(sample domain.Sample) []string {
	return []string{
		sample.CapturedAt.Format(timestampLayout),
		strconv.FormatFloat(sample.ElapsedMinutes, 'f', -1, 64),
		strconv.FormatFloat(sample.Value, 'f', -1, 64),
	}
}

var _ ports.SeriesSink = (*Sink)(nil)
