package formatter

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/philipp01105/rlog/core"
)

// inspector writes the verbose fallback form: `{ key: value }` objects,
// `[ a, b ]` lists, quoted strings and [Circular] where a value repeats one
// of its ancestors. There is no depth limit and no line wrapping.
type inspector struct {
	buf  *bytes.Buffer
	path ancestors
}

func inspectValue(buf *bytes.Buffer, v interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPanicked, r)
		}
	}()

	p := &inspector{buf: buf, path: ancestors{}}
	p.write(reflect.ValueOf(v))
	return nil
}

func (p *inspector) write(v reflect.Value) {
	if !v.IsValid() {
		p.buf.WriteString("null")
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			p.buf.WriteString("null")
			return
		}
		p.write(v.Elem())
		return
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			p.buf.WriteString("null")
			return
		}
	}

	if ev, ok := implements(v, errorType); ok {
		p.writeError(ev.Interface().(error))
		return
	}
	if tv, ok := implements(v, textMarshalerType); ok {
		if text, err := tv.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			appendInspectString(p.buf, string(text))
			return
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		p.buf.Write(strconv.AppendBool(p.buf.AvailableBuffer(), v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.buf.Write(strconv.AppendInt(p.buf.AvailableBuffer(), v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		p.buf.Write(strconv.AppendUint(p.buf.AvailableBuffer(), v.Uint(), 10))
	case reflect.Float32:
		p.writeFloat(v.Float(), 32)
	case reflect.Float64:
		p.writeFloat(v.Float(), 64)
	case reflect.Complex64, reflect.Complex128:
		p.buf.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, v.Type().Bits()))
	case reflect.String:
		appendInspectString(p.buf, v.String())
	case reflect.Pointer:
		key, ok := p.path.enter(v)
		if !ok {
			p.buf.WriteString("[Circular]")
			return
		}
		p.write(v.Elem())
		p.path.leave(key)
	case reflect.Map:
		p.writeMap(v)
	case reflect.Slice:
		key, ok := p.path.enter(v)
		if !ok {
			p.buf.WriteString("[Circular]")
			return
		}
		if v.Type() == fieldsType {
			p.writeFields(v.Interface().(core.Fields))
		} else {
			p.writeList(v)
		}
		p.path.leave(key)
	case reflect.Array:
		p.writeList(v)
	case reflect.Struct:
		p.writeStruct(v)
	case reflect.Func:
		p.buf.WriteString("[Function]")
	default:
		p.buf.WriteByte('[')
		p.buf.WriteString(v.Type().String())
		p.buf.WriteByte(']')
	}
}

// writeError prints the stack as a quoted string when there is one, else
// [Error: message]. Quoting keeps the stack's newlines escaped.
func (p *inspector) writeError(err error) {
	message, stack, hasStack := errorDetails(err)
	if hasStack {
		appendInspectString(p.buf, stack)
		return
	}
	p.buf.WriteString("[Error: ")
	p.buf.WriteString(message)
	p.buf.WriteByte(']')
}

func (p *inspector) writeMap(v reflect.Value) {
	key, ok := p.path.enter(v)
	if !ok {
		p.buf.WriteString("[Circular]")
		return
	}
	defer p.path.leave(key)

	entries, err := sortedMapEntries(v)
	if err != nil {
		// keys without a string form are printed with fmt
		entries = entries[:0]
		iter := v.MapRange()
		for iter.Next() {
			entries = append(entries, mapEntry{key: fmt.Sprint(iter.Key()), val: iter.Value()})
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	}
	if len(entries) == 0 {
		p.buf.WriteString("{}")
		return
	}

	p.buf.WriteString("{ ")
	for i, entry := range entries {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.writeKey(entry.key)
		p.write(entry.val)
	}
	p.buf.WriteString(" }")
}

func (p *inspector) writeFields(fs core.Fields) {
	if len(fs) == 0 {
		p.buf.WriteString("{}")
		return
	}
	p.buf.WriteString("{ ")
	for i, f := range fs {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.writeKey(f.Key)
		p.write(reflect.ValueOf(f.Value))
	}
	p.buf.WriteString(" }")
}

func (p *inspector) writeList(v reflect.Value) {
	if v.Len() == 0 {
		p.buf.WriteString("[]")
		return
	}
	p.buf.WriteString("[ ")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.write(v.Index(i))
	}
	p.buf.WriteString(" ]")
}

func (p *inspector) writeStruct(v reflect.Value) {
	type shown struct {
		name string
		val  reflect.Value
	}
	var visible []shown
	for _, f := range cachedFields(v.Type()) {
		fv, ok := fieldByIndex(v, f.index)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		visible = append(visible, shown{name: f.name, val: fv})
	}

	if len(visible) == 0 {
		// opaque structs only say something through String
		if sv, ok := implements(v, stringerType); ok {
			appendInspectString(p.buf, sv.Interface().(fmt.Stringer).String())
			return
		}
	}

	if name := v.Type().Name(); name != "" {
		p.buf.WriteString(name)
		p.buf.WriteByte(' ')
	}
	if len(visible) == 0 {
		p.buf.WriteString("{}")
		return
	}
	p.buf.WriteString("{ ")
	for i, f := range visible {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.writeKey(f.name)
		p.write(f.val)
	}
	p.buf.WriteString(" }")
}

func (p *inspector) writeKey(key string) {
	if isIdentifier(key) {
		p.buf.WriteString(key)
	} else {
		appendInspectString(p.buf, key)
	}
	p.buf.WriteString(": ")
}

func (p *inspector) writeFloat(f float64, bits int) {
	if b, ok := appendNumber(p.buf.AvailableBuffer(), f, bits); ok {
		p.buf.Write(b)
		return
	}
	switch {
	case math.IsNaN(f):
		p.buf.WriteString("NaN")
	case f > 0:
		p.buf.WriteString("Infinity")
	default:
		p.buf.WriteString("-Infinity")
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// appendInspectString writes s in single quotes, switching to double quotes
// or backticks when that avoids escaping.
func appendInspectString(buf *bytes.Buffer, s string) {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 {
		if strings.IndexByte(s, '"') < 0 {
			quote = '"'
		} else if strings.IndexByte(s, '`') < 0 && !strings.Contains(s, "${") {
			quote = '`'
		}
	}

	buf.WriteByte(quote)
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != 0x7f && c != '\\' && c != quote {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case quote:
			buf.WriteByte('\\')
			buf.WriteByte(quote)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\v':
			buf.WriteString(`\v`)
		default:
			buf.WriteString(`\x`)
			buf.WriteByte(upperHexChars[c>>4])
			buf.WriteByte(upperHexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
	buf.WriteByte(quote)
}

var upperHexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'A', 'B', 'C', 'D', 'E', 'F'}
