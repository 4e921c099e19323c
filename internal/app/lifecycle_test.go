package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	logadapter "github.com/bench-labs/phlog/internal/adapters/log"
	"github.com/bench-labs/phlog/internal/domain"
)

type recordingEmitter struct {
	mu          sync.Mutex
	transitions []string
}

func (e *recordingEmitter) OnStateChange(previous, current State, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transitions = append(e.transitions, previous.String()+"->"+current.String())
}

func newTestLifecycle(emitter StateEmitter) *Lifecycle {
	return NewLifecycle(logadapter.NewNoopLogger(), emitter)
}

func TestInitialStateIsIdle(t *testing.T) {
	l := newTestLifecycle(nil)
	if l.State() != StateIdle {
		t.Errorf("initial state = %v, want Idle", l.State())
	}
	if !l.CanStart() {
		t.Error("CanStart should be true in Idle")
	}
	if l.CanStop() {
		t.Error("CanStop should be false in Idle")
	}
}

func TestStartStopResumeCycle(t *testing.T) {
	l := newTestLifecycle(nil)

	steps := []State{StateStarting, StateRunning, StateStopping, StateStopped}
	for _, s := range steps {
		if err := l.TransitionTo(s, "test"); err != nil {
			t.Fatalf("transition to %v: %v", s, err)
		}
	}

	// Stopped→Starting is a resume.
	if !l.CanStart() {
		t.Fatal("CanStart should be true in Stopped")
	}
	if err := l.TransitionTo(StateStarting, "resume"); err != nil {
		t.Fatalf("resume: %v", err)
	}
}

func TestResetTransitions(t *testing.T) {
	l := newTestLifecycle(nil)
	for _, s := range []State{StateStarting, StateRunning, StateStopping, StateStopped} {
		if err := l.TransitionTo(s, "test"); err != nil {
			t.Fatalf("transition to %v: %v", s, err)
		}
	}

	if err := l.TransitionTo(StateIdle, "reset"); err != nil {
		t.Fatalf("Stopped->Idle: %v", err)
	}
}

func TestInvalidTransitions(t *testing.T) {
	l := newTestLifecycle(nil)

	// Cannot go straight to Running from Idle.
	if err := l.TransitionTo(StateRunning, "test"); err == nil {
		t.Error("Idle->Running should be rejected")
	}

	if err := l.TransitionTo(StateStarting, "test"); err != nil {
		t.Fatal(err)
	}
	// Double start.
	if err := l.TransitionTo(StateStarting, "test"); !errors.Is(err, domain.ErrAlreadyRunning) {
		t.Errorf("Starting->Starting = %v, want ErrAlreadyRunning", err)
	}
}

func TestCrashAndRestart(t *testing.T) {
	l := newTestLifecycle(nil)
	if err := l.TransitionTo(StateStarting, "test"); err != nil {
		t.Fatal(err)
	}
	if err := l.TransitionTo(StateRunning, "test"); err != nil {
		t.Fatal(err)
	}
	if err := l.TransitionTo(StateCrashed, "device unplugged"); err != nil {
		t.Fatalf("Running->Crashed: %v", err)
	}
	if !l.CanStart() {
		t.Error("CanStart should be true in Crashed")
	}
	if err := l.TransitionTo(StateIdle, "reset"); err != nil {
		t.Errorf("Crashed->Idle: %v", err)
	}
}

func TestEmitterReceivesTransitions(t *testing.T) {
	emitter := &recordingEmitter{}
	l := newTestLifecycle(emitter)

	_ = l.TransitionTo(StateStarting, "test")
	_ = l.TransitionTo(StateRunning, "test")

	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	want := []string{"Idle->Starting", "Starting->Running"}
	if len(emitter.transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", emitter.transitions, want)
	}
	for i := range want {
		if emitter.transitions[i] != want[i] {
			t.Errorf("transition %d = %q, want %q", i, emitter.transitions[i], want[i])
		}
	}
}

func TestWaitWithTimeout(t *testing.T) {
	l := newTestLifecycle(nil)

	l.AddWorker()
	go func() {
		time.Sleep(10 * time.Millisecond)
		l.WorkerDone()
	}()
	if err := l.WaitWithTimeout(time.Second); err != nil {
		t.Errorf("WaitWithTimeout = %v, want nil", err)
	}

	l.AddWorker()
	defer l.WorkerDone()
	if err := l.WaitWithTimeout(20 * time.Millisecond); !errors.Is(err, domain.ErrShutdownTimeout) {
		t.Errorf("WaitWithTimeout = %v, want ErrShutdownTimeout", err)
	}
}
