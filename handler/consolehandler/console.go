package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/handler"
)

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// ErrWriter receives lines whose level rank is at most ErrorRank
	// (default: Writer)
	ErrWriter io.Writer
	// ErrorRank is the least severe rank routed to ErrWriter. A negative
	// rank sends everything to Writer.
	ErrorRank int
	// Levels is the enumeration used for per-level statistics (default: core.Syslog)
	Levels core.Levels
	// ConcurrentWriter indicates both writers support concurrent Write calls.
	// When true, the handler skips write-level locking. Automatically detected
	// for io.Discard and *os.File; set true for other goroutine-safe writers.
	ConcurrentWriter bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = cfg.Writer
	}
	if cfg.Levels.Len() == 0 {
		cfg.Levels = core.Syslog
	}
}

// ConsoleHandler writes each line, followed by a newline, to a writer chosen
// by level. A line is written with a single Write call.
type ConsoleHandler struct {
	writer         io.Writer
	errWriter      io.Writer
	errorRank      int
	concurrentSafe bool // true if both writers are safe for concurrent Write calls
	stats          *handler.Stats
	mu             sync.Mutex // serializes writes to both writers
	bufPool        sync.Pool
	closed         chan struct{}
	closeOnce      sync.Once
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	applyConsoleDefaults(&cfg)
	h := &ConsoleHandler{
		writer:    cfg.Writer,
		errWriter: cfg.ErrWriter,
		errorRank: cfg.ErrorRank,
		concurrentSafe: cfg.ConcurrentWriter ||
			(isConcurrentSafeWriter(cfg.Writer) && isConcurrentSafeWriter(cfg.ErrWriter)),
		stats:  handler.NewStats(cfg.Levels),
		closed: make(chan struct{}),
	}
	h.bufPool = sync.Pool{
		New: func() interface{} {
			b := &bytes.Buffer{}
			b.Grow(256)
			return b
		},
	}
	return h
}

// Handle writes line to the writer for level.
func (h *ConsoleHandler) Handle(level core.Level, line string) error {
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}

	w := h.writer
	if level.Rank <= h.errorRank {
		w = h.errWriter
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.WriteString(line)
	buf.WriteByte('\n')

	var err error
	if h.concurrentSafe {
		_, err = w.Write(buf.Bytes())
	} else {
		h.mu.Lock()
		_, err = w.Write(buf.Bytes())
		h.mu.Unlock()
	}

	// Don't keep very large buffers in the pool
	if buf.Cap() <= 64*1024 {
		h.bufPool.Put(buf)
	}

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed(level)
	return nil
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler. Writers are owned by the caller and stay open.
func (h *ConsoleHandler) Close() error {
	h.closeOnce.Do(func() {
		close(h.closed)
	})
	return nil
}
