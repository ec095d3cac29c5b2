package handler

import (
	"fmt"

	"github.com/philipp01105/rlog/core"
)

// LevelHandler routes each line to the function registered for its level
// name, one function per level.
type LevelHandler map[string]func(line string) error

// Handle calls the function registered for level
func (h LevelHandler) Handle(level core.Level, line string) error {
	fn, ok := h[level.Name]
	if !ok || fn == nil {
		return fmt.Errorf("%w: %q", ErrNoSink, level.Name)
	}
	return fn(line)
}

// Handles reports whether a function is registered for level
func (h LevelHandler) Handles(level string) bool {
	fn, ok := h[level]
	return ok && fn != nil
}

// Close does nothing
func (h LevelHandler) Close() error {
	return nil
}
