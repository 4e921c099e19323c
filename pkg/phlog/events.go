package phlog

import (
	"github.com/bench-labs/phlog/internal/app"
	"github.com/bench-labs/phlog/internal/domain"
)

// State represents the lifecycle state of a Recorder.
type State = app.State

// Lifecycle states. A new Recorder is Idle; starting from Idle fixes the
// session start time, starting from Stopped resumes the existing session.
const (
	StateIdle     = app.StateIdle
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateStopped  = app.StateStopped
	StateCrashed  = app.StateCrashed
)

// Sample is one parsed pH reading with its capture time and elapsed
// minutes since session start.
type Sample = domain.Sample

// StateChangeEvent is emitted on every lifecycle state transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// SampleEvent is emitted after a sample has been appended to the in-memory
// series. Total is the series length including the new sample.
type SampleEvent struct {
	Sample Sample
	Total  int
}

// SourceErrorEvent is emitted when the serial connection fails. The
// recorder transitions to StateCrashed afterwards; it does not reconnect
// on its own.
type SourceErrorEvent struct {
	Err error
}

// StorageErrorEvent is emitted when persisting a sample to CSV failed.
// The in-memory series already contains the sample; the next sample
// retries the file.
type StorageErrorEvent struct {
	Err error
}

// EventHandler receives notifications about recorder operations.
// All methods are called synchronously from recorder goroutines and should
// return quickly to avoid blocking ingestion.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnSampleRecorded(event SampleEvent)
	OnSourceError(event SourceErrorEvent)
	OnStorageError(event StorageErrorEvent)
}

// eventEmitterWrapper adapts EventHandler to the internal emitter
// interfaces. A nil handler makes every method a no-op.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnSampleRecorded(sample domain.Sample, total int) {
	if e.handler == nil {
		return
	}
	e.handler.OnSampleRecorded(SampleEvent{Sample: sample, Total: total})
}

func (e *eventEmitterWrapper) OnStorageError(err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnStorageError(StorageErrorEvent{Err: err})
}

func (e *eventEmitterWrapper) onSourceError(err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnSourceError(SourceErrorEvent{Err: err})
}

var (
	_ app.StateEmitter  = (*eventEmitterWrapper)(nil)
	_ app.SampleEmitter = (*eventEmitterWrapper)(nil)
)
