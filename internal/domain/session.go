package domain

import "time"

// Session accumulates the ordered series of samples between a start and an
// explicit reset. Samples are append-only and insertion-ordered; stopping
// ingestion preserves the series, only Reset clears it.
//
// Session performs no locking. The aggregator owns the session and
// serializes all access to it.
type Session struct {
	startedAt time.Time
	samples   []Sample
}

// NewSession creates an empty session with no start time.
func NewSession() *Session {
	return &Session{}
}

// Begin fixes the session start time if it is not already set and returns
// the effective start. A resumed session (stop then start) keeps its
// original start time so elapsed minutes stay continuous.
func (s *Session) Begin(now time.Time) time.Time {
	if s.startedAt.IsZero() {
		s.startedAt = now
	}
	return s.startedAt
}

// Started reports whether the session has a fixed start time.
func (s *Session) Started() bool {
	return !s.startedAt.IsZero()
}

// StartedAt returns the session start time, or the zero time if the session
// has not begun.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Append adds a sample to the series, preserving arrival order.
func (s *Session) Append(sample Sample) {
	s.samples = append(s.samples, sample)
}

// Len returns the number of accumulated samples.
func (s *Session) Len() int {
	return len(s.samples)
}

// Samples returns a copy of the series so callers never alias the
// session's mutable backing slice.
func (s *Session) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Reset clears the series and the start time. A subsequent Begin
// establishes a fresh start. Reset never touches anything on disk.
func (s *Session) Reset() {
	s.samples = nil
	s.startedAt = time.Time{}
}
