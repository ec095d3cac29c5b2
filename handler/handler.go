package handler

import (
	"errors"

	"github.com/philipp01105/rlog/core"
)

// ErrNoSink is returned when a handler has nowhere to send a level
var ErrNoSink = errors.New("no sink for level")

// Handler is the transport a logger dispatches composed lines to
type Handler interface {
	// Handle delivers one composed line logged at level
	Handle(level core.Level, line string) error

	// Close closes the handler and releases resources
	Close() error
}

// LevelChecker is an optional interface for handlers that only serve some
// levels. Loggers check it at construction so that a missing sink is a
// configuration error instead of a failure at log time.
type LevelChecker interface {
	Handles(level string) bool
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(level core.Level, line string) error

// Handle calls f(level, line)
func (f HandlerFunc) Handle(level core.Level, line string) error {
	return f(level, line)
}

// Close does nothing
func (f HandlerFunc) Close() error {
	return nil
}

// Discard is a Handler that drops every line
var Discard Handler = discard{}

type discard struct{}

func (discard) Handle(core.Level, string) error { return nil }
func (discard) Close() error                     { return nil }
