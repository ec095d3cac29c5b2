// Package zerologhandler forwards composed log lines to a zerolog.Logger.
package zerologhandler

import (
	"github.com/rs/zerolog"

	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/handler"
)

// ZerologHandler writes each line as the message of a zerolog event, with
// the level name under handler.LevelKey.
type ZerologHandler struct {
	logger zerolog.Logger
}

// NewZerologHandler creates a handler for l
func NewZerologHandler(l zerolog.Logger) *ZerologHandler {
	return &ZerologHandler{logger: l}
}

// Handle logs line at the zerolog level for the level's class. WithLevel is
// used so that no mapping can exit or panic.
func (h *ZerologHandler) Handle(level core.Level, line string) error {
	h.logger.WithLevel(ClassLevel(handler.Classify(level))).
		Str(handler.LevelKey, level.Name).
		Msg(line)
	return nil
}

// Close does nothing
func (h *ZerologHandler) Close() error {
	return nil
}

// ClassLevel maps a Class to a zerolog level
func ClassLevel(c handler.Class) zerolog.Level {
	switch c {
	case handler.ClassError:
		return zerolog.ErrorLevel
	case handler.ClassWarn:
		return zerolog.WarnLevel
	case handler.ClassInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
