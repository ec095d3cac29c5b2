package core

import (
	"runtime"
	"strconv"
	"strings"
)

// CallerInfo contains information about a single stack frame
type CallerInfo struct {
	File     string
	Line     int
	Function string
	Defined  bool
}

// String renders the frame as "function (file:line)"
func (c CallerInfo) String() string {
	if !c.Defined {
		return ""
	}
	return c.Function + " (" + c.File + ":" + strconv.Itoa(c.Line) + ")"
}

// maxStackDepth bounds the frames captured by WithStack
const maxStackDepth = 32

// stackError carries the stack captured where it was wrapped
type stackError struct {
	err   error
	stack string
}

// WithStack annotates err with the stack of its caller. The formatter uses
// the stack when rendering error details. A nil err stays nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &stackError{err: err, stack: captureStack(err.Error(), 3)}
}

func (e *stackError) Error() string { return e.err.Error() }

// Unwrap returns the wrapped error
func (e *stackError) Unwrap() error { return e.err }

// Stack returns the message followed by one "at" line per frame
func (e *stackError) Stack() string { return e.stack }

func captureStack(msg string, skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	b.WriteString(msg)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			b.WriteString("\n    at ")
			b.WriteString(CallerInfo{
				File:     frame.File,
				Line:     frame.Line,
				Function: frame.Function,
				Defined:  true,
			}.String())
		}
		if !more {
			break
		}
	}
	return b.String()
}
