package handler

import (
	"sync/atomic"

	"github.com/philipp01105/rlog/core"
)

// Stats tracks handler statistics
type Stats struct {
	levels core.Levels
	// one counter per rank, plus one for levels outside the enumeration
	processed []uint64
	failed    uint64
}

// NewStats creates a new Stats instance counting the levels of ls
func NewStats(ls core.Levels) *Stats {
	return &Stats{
		levels:    ls,
		processed: make([]uint64, ls.Len()+1),
	}
}

func (s *Stats) slot(level core.Level) int {
	if level.Rank >= 0 && level.Rank < s.levels.Len() {
		if l, _ := s.levels.At(level.Rank); l.Name == level.Name {
			return level.Rank
		}
	}
	return s.levels.Len()
}

// IncrementProcessed atomically increments the processed counter for a level
func (s *Stats) IncrementProcessed(level core.Level) {
	atomic.AddUint64(&s.processed[s.slot(level)], 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.failed, 1)
}

// GetProcessed returns the processed count for a level
func (s *Stats) GetProcessed(level core.Level) uint64 {
	return atomic.LoadUint64(&s.processed[s.slot(level)])
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return atomic.LoadUint64(&s.failed)
}

// GetTotalProcessed returns the total processed across all levels
func (s *Stats) GetTotalProcessed() uint64 {
	var total uint64
	for i := range s.processed {
		total += atomic.LoadUint64(&s.processed[i])
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.processed {
		atomic.StoreUint64(&s.processed[i], 0)
	}
	atomic.StoreUint64(&s.failed, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Processed map[string]uint64
	Unknown   uint64
	Failed    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Processed: make(map[string]uint64, s.levels.Len()),
		Unknown:   atomic.LoadUint64(&s.processed[s.levels.Len()]),
		Failed:    s.GetFailed(),
	}
	for _, l := range s.levels.All() {
		snap.Processed[l.Name] = atomic.LoadUint64(&s.processed[l.Rank])
	}
	return snap
}

// CountingHandler counts the lines passing through to another handler
type CountingHandler struct {
	next  Handler
	stats *Stats
}

// NewCountingHandler wraps next, counting lines per level of ls
func NewCountingHandler(next Handler, ls core.Levels) *CountingHandler {
	return &CountingHandler{next: next, stats: NewStats(ls)}
}

// Handle forwards the line and records the outcome
func (h *CountingHandler) Handle(level core.Level, line string) error {
	if err := h.next.Handle(level, line); err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed(level)
	return nil
}

// Handles defers to the wrapped handler when it restricts its levels
func (h *CountingHandler) Handles(level string) bool {
	if lc, ok := h.next.(LevelChecker); ok {
		return lc.Handles(level)
	}
	return true
}

// Stats returns a snapshot of the current statistics
func (h *CountingHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the wrapped handler
func (h *CountingHandler) Close() error {
	return h.next.Close()
}
