package handler

import (
	"errors"

	"github.com/philipp01105/rlog/core"
)

// MultiHandler sends every line to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	hs := make([]Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return &MultiHandler{handlers: hs}
}

// Handle sends the line to all handlers in order. Every handler is called
// even when an earlier one fails; the failures are joined.
func (h *MultiHandler) Handle(level core.Level, line string) error {
	var errs []error
	for _, handler := range h.handlers {
		if err := handler.Handle(level, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Handles reports whether every child that restricts its levels serves level
func (h *MultiHandler) Handles(level string) bool {
	for _, handler := range h.handlers {
		if lc, ok := handler.(LevelChecker); ok && !lc.Handles(level) {
			return false
		}
	}
	return true
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var errs []error
	for _, handler := range h.handlers {
		if err := handler.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
