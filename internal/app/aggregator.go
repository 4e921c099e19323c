package app

import (
	"sync"
	"time"

	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

// SampleEmitter receives aggregator events.
type SampleEmitter interface {
	// OnSampleRecorded is called after a sample has been appended to the
	// in-memory series (regardless of persistence outcome).
	OnSampleRecorded(sample domain.Sample, total int)

	// OnStorageError is called when persisting a sample failed. The
	// in-memory series already contains the sample.
	OnStorageError(err error)
}

// Aggregator owns the session: it turns the sample stream into the durable
// CSV log and the authoritative in-memory series, and triggers chart
// redraws.
//
// The in-memory series stays authoritative when persistence fails: charting
// must never be corrupted by a storage failure, and the next sample retries
// the sink naturally. Failed rows are not buffered or replayed.
//
// All methods lock internally. Samples arrive from the recorder's event
// loop; axis bounds may be updated from a watcher goroutine.
type Aggregator struct {
	session *domain.Session
	sink    ports.SeriesSink
	chart   ports.ChartRenderer
	bounds  ports.AxisBounds
	logger  ports.Logger
	emitter SampleEmitter

	mu sync.Mutex
}

// NewAggregator creates an aggregator around an empty session. sink and
// chart may be nil; the corresponding step is skipped.
func NewAggregator(sink ports.SeriesSink, chart ports.ChartRenderer, bounds ports.AxisBounds, logger ports.Logger, emitter SampleEmitter) *Aggregator {
	return &Aggregator{
		session: domain.NewSession(),
		sink:    sink,
		chart:   chart,
		bounds:  bounds,
		logger:  logger,
		emitter: emitter,
	}
}

// Begin fixes the session start time if unset and returns the effective
// start.
func (a *Aggregator) Begin(now time.Time) time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Begin(now)
}

// OnSample processes one sample as one logical step, in arrival order:
// in-memory append, CSV persist, chart redraw.
func (a *Aggregator) OnSample(sample domain.Sample) {
	a.mu.Lock()

	a.session.Append(sample)
	series := a.session.Samples()

	var storageErr error
	if a.sink != nil && a.sink.Target() != "" {
		if err := a.sink.Append(series, sample); err != nil {
			storageErr = err
			a.logger.Error("csv append failed",
				ports.String("path", a.sink.Target()),
				ports.Err(err),
			)
		}
	}

	a.renderLocked(series)

	total := len(series)
	a.mu.Unlock()

	// Emit outside of the lock so handlers can call back into accessors.
	if a.emitter != nil {
		if storageErr != nil {
			a.emitter.OnStorageError(storageErr)
		}
		a.emitter.OnSampleRecorded(sample, total)
	}
}

// Reset clears the session and blanks the chart. Already-written CSV files
// are left untouched.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session.Reset()
	a.renderLocked(nil)
}

// Series returns a copy of the accumulated series.
func (a *Aggregator) Series() []domain.Sample {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Samples()
}

// Len returns the number of accumulated samples.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Len()
}

// SetAxisBounds applies new chart axis limits and redraws immediately.
func (a *Aggregator) SetAxisBounds(bounds ports.AxisBounds) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.bounds = bounds
	a.renderLocked(a.session.Samples())
}

// AxisBounds returns the current chart axis limits.
func (a *Aggregator) AxisBounds() ports.AxisBounds {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bounds
}

func (a *Aggregator) renderLocked(series []domain.Sample) {
	if a.chart == nil {
		return
	}
	if err := a.chart.Render(series, a.bounds); err != nil {
		a.logger.Error("chart render failed", ports.Err(err))
	}
}
