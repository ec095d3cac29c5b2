package logger

import "github.com/philipp01105/rlog/core"

// Re-export types and presets for convenience
type (
	Level    = core.Level
	Levels   = core.Levels
	Template = core.Template
	Field    = core.Field
	Fields   = core.Fields
)

var (
	// Syslog is core.Syslog
	Syslog = core.Syslog
	// Standard is core.Standard
	Standard = core.Standard
)
