// Package logrushandler forwards composed log lines to a *logrus.Logger.
package logrushandler

import (
	"github.com/sirupsen/logrus"

	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/handler"
)

// LogrusHandler writes each line as the message of a logrus entry, with the
// level name under handler.LevelKey.
type LogrusHandler struct {
	logger *logrus.Logger
}

// NewLogrusHandler creates a handler for l, or for logrus.StandardLogger when l is nil
func NewLogrusHandler(l *logrus.Logger) *LogrusHandler {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusHandler{logger: l}
}

// Handle logs line at the logrus level for the level's class
func (h *LogrusHandler) Handle(level core.Level, line string) error {
	h.logger.WithField(handler.LevelKey, level.Name).Log(ClassLevel(handler.Classify(level)), line)
	return nil
}

// Close does nothing; the logger's output is owned by the caller
func (h *LogrusHandler) Close() error {
	return nil
}

// ClassLevel maps a Class to a logrus level. There is no mapping to Fatal
// or Panic.
func ClassLevel(c handler.Class) logrus.Level {
	switch c {
	case handler.ClassError:
		return logrus.ErrorLevel
	case handler.ClassWarn:
		return logrus.WarnLevel
	case handler.ClassInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
