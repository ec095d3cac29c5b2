package formatter

import (
	"bytes"
	"fmt"
	"sync"
)

// Formatter turns an arbitrary detail payload into a string
type Formatter interface {
	// Format renders v. It must never panic.
	Format(v interface{}) string
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc func(v interface{}) string

// Format calls f(v)
func (f FormatterFunc) Format(v interface{}) string {
	return f(v)
}

// Safe is the default Formatter. It tries a strict, compact JSON encoding
// first and falls back to a verbose single-line dump when the value cannot
// be encoded, for example because it contains a cycle.
type Safe struct{}

// Format implements Formatter
func (Safe) Format(v interface{}) string {
	return Format(v)
}

// Default is the Formatter used by loggers that do not configure one
var Default Formatter = Safe{}

// Format renders v as compact JSON, substituting errors with their message
// and stack. If v cannot be encoded strictly it is rendered with the
// inspect fallback, which marks cyclic references as [Circular].
func Format(v interface{}) string {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := encodeStrict(buf, v); err == nil {
		return buf.String()
	}

	buf.Reset()
	if err := inspectValue(buf, v); err == nil {
		return buf.String()
	}

	return "[unformattable " + fmt.Sprintf("%T", v) + "]"
}

// Strict renders v as compact JSON only, reporting why it could not
func Strict(v interface{}) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := encodeStrict(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Inspect renders v with the verbose fallback form directly
func Inspect(v interface{}) string {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := inspectValue(buf, v); err != nil {
		return "[unformattable " + fmt.Sprintf("%T", v) + "]"
	}
	return buf.String()
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
