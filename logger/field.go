package logger

import (
	"time"

	"github.com/philipp01105/rlog/core"
)

// Field helper functions for convenience

// Details collects fields into an ordered detail payload
func Details(fields ...core.Field) core.Fields {
	return core.Fields(fields)
}

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Value: val}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Value: val}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Value: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Value: val}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	return core.Field{Key: key, Value: val}
}

// Time creates a time field
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Value: val}
}

// Duration creates a duration field, rendered like "1.5s"
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Value: val.String()}
}

// Err creates an error field. The error is rendered as its message and stack.
func Err(err error) core.Field {
	return core.Field{Key: "error", Value: err}
}

// Any creates a field with any value
func Any(key string, val interface{}) core.Field {
	return core.Field{Key: key, Value: val}
}
