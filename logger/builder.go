package logger

import (
	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/formatter"
	"github.com/philipp01105/rlog/handler"
)

// Builder provides a fluent API for building Logger instances
type Builder struct {
	cfg Config
}

// NewBuilder creates a new logger builder. The threshold has no default and
// must be set with WithLevel.
func NewBuilder() *Builder {
	return &Builder{
		cfg: Config{
			Levels:   core.Syslog,
			Messages: make(map[string]core.Template),
		},
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.cfg.Handler = h
	return b
}

// WithLevel sets the threshold level by name
func (b *Builder) WithLevel(level string) *Builder {
	b.cfg.Level = level
	return b
}

// WithLevels sets the level enumeration
func (b *Builder) WithLevels(ls core.Levels) *Builder {
	b.cfg.Levels = ls
	return b
}

// WithFormatter sets the details formatter
func (b *Builder) WithFormatter(f formatter.Formatter) *Builder {
	b.cfg.Formatter = f
	return b
}

// WithMessage declares a message under key
func (b *Builder) WithMessage(key, level, text string) *Builder {
	b.cfg.Messages[key] = core.Template{Level: level, Message: text}
	return b
}

// WithMessages declares several messages, replacing earlier ones with the same key
func (b *Builder) WithMessages(messages map[string]core.Template) *Builder {
	for k, t := range messages {
		b.cfg.Messages[k] = t
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() (*Logger, error) {
	messages := make(map[string]core.Template, len(b.cfg.Messages))
	for k, t := range b.cfg.Messages {
		messages[k] = t
	}
	cfg := b.cfg
	cfg.Messages = messages
	return New(cfg)
}
