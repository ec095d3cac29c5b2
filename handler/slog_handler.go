package handler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/rlog/core"
)

// SlogHandler forwards lines to a *slog.Logger. The line becomes the
// record message and the level name is attached under LevelKey.
type SlogHandler struct {
	logger *slog.Logger
}

// LevelKey is the attribute carrying the original level name
const LevelKey = "severity"

// NewSlogHandler creates a handler writing to l, or to slog.Default when l is nil
func NewSlogHandler(l *slog.Logger) *SlogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &SlogHandler{logger: l}
}

// Handle logs the line at the slog level matching the level's class
func (s *SlogHandler) Handle(level core.Level, line string) error {
	s.logger.LogAttrs(context.Background(), classToSlog(Classify(level)), line, slog.String(LevelKey, level.Name))
	return nil
}

// Close does nothing; the slog.Logger is owned by the caller
func (s *SlogHandler) Close() error {
	return nil
}

// classToSlog converts a Class to a slog.Level.
func classToSlog(c Class) slog.Level {
	switch c {
	case ClassError:
		return slog.LevelError
	case ClassWarn:
		return slog.LevelWarn
	case ClassInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
