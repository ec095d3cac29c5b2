package logger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/formatter"
	"github.com/philipp01105/rlog/handler"
)

var (
	// ErrNoHandler is returned when a logger is configured without a handler
	ErrNoHandler = errors.New("logger: no handler")
	// ErrNoMessages is returned when a logger is configured without messages
	ErrNoMessages = errors.New("logger: no messages")
	// ErrInvalidTemplate is returned when a message names an unknown level
	ErrInvalidTemplate = errors.New("logger: invalid message template")
	// ErrUnknownMessage is returned by Log for keys that were never declared
	ErrUnknownMessage = errors.New("logger: unknown message")
)

// Config holds everything a Logger is built from
type Config struct {
	// Handler receives composed lines (required)
	Handler handler.Handler
	// Messages maps each key to the template logged under it (required)
	Messages map[string]core.Template
	// Level is the name of the least severe level that is emitted
	Level string
	// Levels is the level enumeration (default: core.Syslog)
	Levels core.Levels
	// Formatter renders details (default: formatter.Default)
	Formatter formatter.Formatter
}

// message is a resolved template
type message struct {
	template core.Template
	level    core.Level
	prefix   string
}

// Logger dispatches predeclared messages to a handler when their level
// passes the threshold. It is immutable after construction.
type Logger struct {
	handler   handler.Handler
	formatter formatter.Formatter
	levels    core.Levels
	threshold core.Level
	messages  map[string]message
}

// New validates cfg and builds a Logger
func New(cfg Config) (*Logger, error) {
	if cfg.Handler == nil {
		return nil, ErrNoHandler
	}
	if len(cfg.Messages) == 0 {
		return nil, ErrNoMessages
	}
	if cfg.Levels.Len() == 0 {
		cfg.Levels = core.Syslog
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.Default
	}

	threshold, err := cfg.Levels.Lookup(cfg.Level)
	if err != nil {
		return nil, err
	}

	lc, checkSinks := cfg.Handler.(handler.LevelChecker)

	messages := make(map[string]message, len(cfg.Messages))
	for key, tmpl := range cfg.Messages {
		if key == "" {
			return nil, fmt.Errorf("%w: empty message key", ErrInvalidTemplate)
		}
		level, err := cfg.Levels.Lookup(tmpl.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: message %q: %w", ErrInvalidTemplate, key, err)
		}
		if checkSinks && !lc.Handles(level.Name) {
			return nil, fmt.Errorf("%w: message %q logs at %q", handler.ErrNoSink, key, level.Name)
		}
		messages[key] = message{
			template: tmpl,
			level:    level,
			prefix:   tmpl.Compose(),
		}
	}

	return &Logger{
		handler:   cfg.Handler,
		formatter: cfg.Formatter,
		levels:    cfg.Levels,
		threshold: threshold,
		messages:  messages,
	}, nil
}

// Log emits the message declared under key with details when its level
// passes the threshold. It reports whether the handler was called; err is
// the handler's error, or ErrUnknownMessage for an undeclared key.
func (l *Logger) Log(key string, details interface{}) (bool, error) {
	msg, ok := l.messages[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownMessage, key)
	}

	// Level check before formatting
	if msg.level.Rank > l.threshold.Rank {
		return false, nil
	}

	line := msg.prefix + " " + l.formatter.Format(details)
	return true, l.handler.Handle(msg.level, line)
}

// Enabled reports whether Log would call the handler for key
func (l *Logger) Enabled(key string) bool {
	msg, ok := l.messages[key]
	return ok && msg.level.Rank <= l.threshold.Rank
}

// Level returns the threshold level
func (l *Logger) Level() core.Level {
	return l.threshold
}

// Levels returns the level enumeration
func (l *Logger) Levels() core.Levels {
	return l.levels
}

// Message returns the template declared under key
func (l *Logger) Message(key string) (core.Template, bool) {
	msg, ok := l.messages[key]
	return msg.template, ok
}

// Keys returns the declared message keys, sorted
func (l *Logger) Keys() []string {
	keys := make([]string, 0, len(l.messages))
	for k := range l.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close closes the handler
func (l *Logger) Close() error {
	return l.handler.Close()
}
