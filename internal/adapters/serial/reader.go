// Package serial implements the line ingestion worker over a physical
// serial port.
//
// The worker owns the serial handle for its lifetime, converts raw lines
// into domain Samples, and communicates with the rest of the program only
// through the channels handed to Start.
package serial

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	serialport "go.bug.st/serial"

	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

// DefaultPollInterval is the pause between empty polls. It trades read
// latency for reduced poll overhead; a bench meter emits at most one
// reading per second anyway.
const DefaultPollInterval = time.Second

// SupportedBaudRates lists the rates the meter's UART accepts. Framing is
// fixed at 8 data bits, 1 stop bit, no parity, no flow control.
var SupportedBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// SupportedBaud reports whether rate is one of the accepted baud rates.
func SupportedBaud(rate int) bool {
	for _, r := range SupportedBaudRates {
		if r == rate {
			return true
		}
	}
	return false
}

// Config holds the immutable parameters of one reader. They are fixed for
// the worker's lifetime; a resumed session constructs a new reader with the
// same SessionStart.
type Config struct {
	// Port is the platform port identifier (e.g. /dev/ttyUSB0, COM3).
	Port string

	// BaudRate must be one of SupportedBaudRates.
	BaudRate int

	// SessionStart anchors the elapsed-minutes computation.
	SessionStart time.Time

	// PollInterval is the pause between empty polls. Zero means
	// DefaultPollInterval.
	PollInterval time.Duration

	// Logger receives per-line debug output. Nil means no logging.
	Logger ports.Logger
}

// Reader reads raw lines from a serial port and emits Samples.
type Reader struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	port    serialport.Port
	stop    chan struct{}
	wg      sync.WaitGroup
	started bool
}

// NewReader creates a reader for the given configuration. The port is not
// opened until Start.
func NewReader(cfg Config) *Reader {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &Reader{cfg: cfg, now: time.Now}
}

// Start opens the port and begins the read loop in a background goroutine.
// Returns an error if the reader is already running or the port cannot be
// opened.
func (r *Reader) Start(ctx context.Context, out chan<- domain.Sample, errs chan<- error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return domain.ErrAlreadyRunning
	}

	mode := &serialport.Mode{
		BaudRate: r.cfg.BaudRate,
		DataBits: 8,
		Parity:   serialport.NoParity,
		StopBits: serialport.OneStopBit,
	}
	port, err := serialport.Open(r.cfg.Port, mode)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.cfg.Port, err)
	}

	// The read timeout doubles as the poll pause: an idle port returns a
	// zero-byte read after PollInterval instead of blocking forever, so the
	// loop can observe a stop request promptly.
	if err := port.SetReadTimeout(r.cfg.PollInterval); err != nil {
		port.Close()
		return fmt.Errorf("set read timeout: %w", err)
	}

	r.port = port
	r.stop = make(chan struct{})
	r.started = true

	r.wg.Add(1)
	go r.loop(ctx, port, out, errs)

	return nil
}

// Stop requests the read loop to exit and waits for it. Closing the port
// unblocks any pending read. Safe to call on a reader that is not running.
func (r *Reader) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	close(r.stop)
	port := r.port
	r.port = nil
	r.mu.Unlock()

	if port != nil {
		_ = port.Close()
	}
	r.wg.Wait()
	return nil
}

// loop reads available bytes, assembles complete lines, and emits a Sample
// for every line carrying a reading. It exits on stop request, context
// cancellation, or the first connection-level failure.
func (r *Reader) loop(ctx context.Context, port serialport.Port, out chan<- domain.Sample, errs chan<- error) {
	defer r.wg.Done()

	buf := make([]byte, 256)
	var pending []byte

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		default:
		}

		n, err := port.Read(buf)
		if err != nil {
			if r.stopping() {
				return
			}
			// Report the failure once, then halt. The operator must
			// explicitly restart; there is no automatic retry.
			select {
			case errs <- fmt.Errorf("serial read %s: %w", r.cfg.Port, err):
			case <-ctx.Done():
			case <-r.stop:
			}
			return
		}
		if n == 0 {
			// Read timeout with nothing waiting; SetReadTimeout already
			// paced the poll.
			continue
		}

		pending = append(pending, buf[:n]...)
		var lines [][]byte
		lines, pending = splitLines(pending)

		for _, raw := range lines {
			line := decodeLine(raw)
			value, ok := domain.ExtractValue(line)
			if !ok {
				// Not an error: chatter and partial power-on banners are
				// normal between readings.
				continue
			}

			now := r.now()
			sample := domain.NewSample(value, r.cfg.SessionStart, now)
			if r.cfg.Logger != nil {
				r.cfg.Logger.Debug("reading",
					ports.String("line", line),
					ports.Float64("ph", value),
					ports.Float64("elapsed_min", sample.ElapsedMinutes),
				)
			}

			select {
			case out <- sample:
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			}
		}
	}
}

func (r *Reader) stopping() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}

// splitLines extracts complete newline-terminated lines from pending and
// returns the unterminated remainder. A partially-read line is never
// emitted; it waits for its terminator or is dropped on stop.
func splitLines(pending []byte) (lines [][]byte, rest []byte) {
	for {
		i := bytes.IndexByte(pending, '\n')
		if i < 0 {
			return lines, pending
		}
		line := pending[:i]
		pending = pending[i+1:]
		lines = append(lines, line)
	}
}

// decodeLine converts a raw line to text, replacing undecodable bytes
// rather than failing, and trims surrounding whitespace including the
// carriage return of CRLF-terminated meters.
func decodeLine(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
}

var _ ports.SampleSource = (*Reader)(nil)
