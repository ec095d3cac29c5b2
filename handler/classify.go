package handler

import (
	"strings"

	"github.com/philipp01105/rlog/core"
)

// Class is the coarse severity used when forwarding to logging libraries
// that have a fixed set of levels
type Class int8

const (
	// ClassDebug for diagnostic lines
	ClassDebug Class = iota
	// ClassInfo for routine lines
	ClassInfo
	// ClassWarn for lines that need attention
	ClassWarn
	// ClassError for failures, including emergencies. Backends never get a
	// fatal or panic level, so forwarding cannot stop the process.
	ClassError
)

// String returns the string representation of the class
func (c Class) String() string {
	switch c {
	case ClassDebug:
		return "DEBUG"
	case ClassInfo:
		return "INFO"
	case ClassWarn:
		return "WARN"
	case ClassError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var knownClasses = map[string]Class{
	"emerg":     ClassError,
	"emergency": ClassError,
	"alert":     ClassError,
	"crit":      ClassError,
	"critical":  ClassError,
	"err":       ClassError,
	"error":     ClassError,
	"fatal":     ClassError,
	"panic":     ClassError,
	"warning":   ClassWarn,
	"warn":      ClassWarn,
	"notice":    ClassInfo,
	"info":      ClassInfo,
	"debug":     ClassDebug,
	"trace":     ClassDebug,
	"verbose":   ClassDebug,
}

// Classify maps a level to its Class by name. Unknown names are placed by
// rank: rank 0 is an error, 1 a warning, 2 and 3 info, anything above debug.
func Classify(level core.Level) Class {
	if c, ok := knownClasses[strings.ToLower(level.Name)]; ok {
		return c
	}
	switch {
	case level.Rank <= 0:
		return ClassError
	case level.Rank == 1:
		return ClassWarn
	case level.Rank <= 3:
		return ClassInfo
	default:
		return ClassDebug
	}
}
