package domain

import (
	"regexp"
	"strconv"
	"time"
)

// readingPattern matches a pH reading embedded in a raw serial line.
// The meter terminates each value with the literal marker "pH",
// e.g. "7.42pH" or "25.0C 7.42pH".
var readingPattern = regexp.MustCompile(`(\d+\.\d+)pH`)

// Sample represents a single parsed observation from the meter.
type Sample struct {
	// CapturedAt is the wall-clock timestamp at receipt.
	CapturedAt time.Time

	// ElapsedMinutes is the time since session start, in minutes.
	ElapsedMinutes float64

	// Value is the pH reading. Nominally 0-14; not enforced.
	Value float64
}

// NewSample builds a Sample for a reading received at now within a session
// started at start.
func NewSample(value float64, start, now time.Time) Sample {
	return Sample{
		CapturedAt:     now,
		ElapsedMinutes: now.Sub(start).Minutes(),
		Value:          value,
	}
}

// ExtractValue pulls the pH value out of a raw serial line.
// Lines without a reading are normal line noise or meter chatter,
// not errors; the second return is false for them.
func ExtractValue(line string) (float64, bool) {
	m := readingPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
