package domain

import (
	"testing"
	"time"
)

func TestSessionBeginFixesStart(t *testing.T) {
	s := NewSession()
	if s.Started() {
		t.Fatal("new session should not be started")
	}

	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if got := s.Begin(t0); !got.Equal(t0) {
		t.Fatalf("Begin returned %v, want %v", got, t0)
	}

	// Resume must reuse the original start.
	later := t0.Add(5 * time.Minute)
	if got := s.Begin(later); !got.Equal(t0) {
		t.Errorf("Begin after resume returned %v, want original %v", got, t0)
	}
}

func TestSessionAppendPreservesOrder(t *testing.T) {
	s := NewSession()
	start := time.Now()
	s.Begin(start)

	for i := 0; i < 5; i++ {
		s.Append(NewSample(7.0+float64(i)/10, start, start.Add(time.Duration(i)*time.Minute)))
	}

	samples := s.Samples()
	if len(samples) != 5 {
		t.Fatalf("len = %d, want 5", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].ElapsedMinutes < samples[i-1].ElapsedMinutes {
			t.Errorf("elapsed minutes not monotonic at %d: %v < %v",
				i, samples[i].ElapsedMinutes, samples[i-1].ElapsedMinutes)
		}
	}
}

func TestSessionSamplesReturnsCopy(t *testing.T) {
	s := NewSession()
	start := time.Now()
	s.Begin(start)
	s.Append(NewSample(7.0, start, start))

	got := s.Samples()
	got[0].Value = 99

	if s.Samples()[0].Value != 7.0 {
		t.Error("mutating the returned slice changed the session series")
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.Begin(t0)
	s.Append(NewSample(7.0, t0, t0))

	s.Reset()

	if s.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", s.Len())
	}
	if s.Started() {
		t.Error("session still started after reset")
	}

	// A later start establishes a new session start.
	t1 := t0.Add(time.Hour)
	if got := s.Begin(t1); !got.Equal(t1) {
		t.Errorf("Begin after reset returned %v, want %v", got, t1)
	}
}
