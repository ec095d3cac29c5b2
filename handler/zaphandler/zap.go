// Package zaphandler forwards composed log lines to a *zap.Logger.
package zaphandler

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/handler"
)

// ZapHandler writes each line as the message of a zap entry. The level name
// is attached as a string field under handler.LevelKey.
type ZapHandler struct {
	logger *zap.Logger
}

// NewZapHandler creates a handler for l. A nil logger yields zap.NewNop().
func NewZapHandler(l *zap.Logger) *ZapHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapHandler{logger: l}
}

// Handle logs line at the zap level for the level's class
func (h *ZapHandler) Handle(level core.Level, line string) error {
	if ce := h.logger.Check(ClassLevel(handler.Classify(level)), line); ce != nil {
		ce.Write(zap.String(handler.LevelKey, level.Name))
	}
	return nil
}

// Close flushes buffered zap output
func (h *ZapHandler) Close() error {
	return h.logger.Sync()
}

// ClassLevel maps a Class to a zap level. There is no mapping to DPanic,
// Panic or Fatal.
func ClassLevel(c handler.Class) zapcore.Level {
	switch c {
	case handler.ClassError:
		return zapcore.ErrorLevel
	case handler.ClassWarn:
		return zapcore.WarnLevel
	case handler.ClassInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
