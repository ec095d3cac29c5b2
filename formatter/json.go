package formatter

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/philipp01105/rlog/core"
)

// jsonEncoder writes the strict, compact JSON form. It fails instead of
// recursing forever when a value is its own ancestor.
type jsonEncoder struct {
	buf  *bytes.Buffer
	path ancestors
}

// encodeStrict writes v into buf. Panics raised by user methods such as
// MarshalJSON or Error are returned as errors.
func encodeStrict(buf *bytes.Buffer, v interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPanicked, r)
		}
	}()

	e := &jsonEncoder{buf: buf, path: ancestors{}}
	return e.encode(reflect.ValueOf(v))
}

func (e *jsonEncoder) encode(v reflect.Value) error {
	if !v.IsValid() {
		e.buf.WriteString("null")
		return nil
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encode(v.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
	}

	if ev, ok := implements(v, errorType); ok {
		return e.encodeError(ev.Interface().(error))
	}
	if mv, ok := implements(v, marshalerType); ok {
		return e.encodeMarshaler(mv.Interface().(json.Marshaler))
	}
	if tv, ok := implements(v, textMarshalerType); ok {
		text, err := tv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return err
		}
		e.writeString(string(text))
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		e.buf.Write(strconv.AppendBool(e.buf.AvailableBuffer(), v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.Write(strconv.AppendInt(e.buf.AvailableBuffer(), v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.buf.Write(strconv.AppendUint(e.buf.AvailableBuffer(), v.Uint(), 10))
	case reflect.Float32:
		e.writeFloat(v.Float(), 32)
	case reflect.Float64:
		e.writeFloat(v.Float(), 64)
	case reflect.String:
		if v.Type() == numberType {
			num := v.String()
			if num == "" {
				num = "0"
			}
			if !json.Valid([]byte(num)) {
				return fmt.Errorf("invalid number literal %q", num)
			}
			e.buf.WriteString(num)
			return nil
		}
		e.writeString(v.String())
	case reflect.Pointer:
		key, ok := e.path.enter(v)
		if !ok {
			return errCircular
		}
		defer e.path.leave(key)
		return e.encode(v.Elem())
	case reflect.Map:
		return e.encodeMap(v)
	case reflect.Slice:
		if v.Type() == fieldsType {
			return e.encodeFields(v)
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			e.buf.WriteByte('"')
			e.buf.WriteString(base64.StdEncoding.EncodeToString(v.Bytes()))
			e.buf.WriteByte('"')
			return nil
		}
		key, ok := e.path.enter(v)
		if !ok {
			return errCircular
		}
		defer e.path.leave(key)
		return e.encodeList(v)
	case reflect.Array:
		return e.encodeList(v)
	case reflect.Struct:
		return e.encodeStruct(v)
	default:
		return &unsupportedTypeError{typ: v.Type()}
	}
	return nil
}

// encodeError substitutes an error by {"message": ..., "stack": ...}
func (e *jsonEncoder) encodeError(err error) error {
	message, stack, hasStack := errorDetails(err)
	e.buf.WriteString(`{"message":`)
	e.writeString(message)
	if hasStack {
		e.buf.WriteString(`,"stack":`)
		e.writeString(stack)
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *jsonEncoder) encodeMarshaler(m json.Marshaler) error {
	b, err := m.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Compact(e.buf, b)
}

func (e *jsonEncoder) encodeMap(v reflect.Value) error {
	key, ok := e.path.enter(v)
	if !ok {
		return errCircular
	}
	defer e.path.leave(key)

	entries, err := sortedMapEntries(v)
	if err != nil {
		return err
	}

	e.buf.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.writeString(entry.key)
		e.buf.WriteByte(':')
		if err := e.encode(entry.val); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *jsonEncoder) encodeFields(v reflect.Value) error {
	key, ok := e.path.enter(v)
	if !ok {
		return errCircular
	}
	defer e.path.leave(key)

	e.buf.WriteByte('{')
	for i, f := range v.Interface().(core.Fields) {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.writeString(f.Key)
		e.buf.WriteByte(':')
		if err := e.encode(reflect.ValueOf(f.Value)); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *jsonEncoder) encodeList(v reflect.Value) error {
	e.buf.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.encode(v.Index(i)); err != nil {
			return err
		}
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *jsonEncoder) encodeStruct(v reflect.Value) error {
	e.buf.WriteByte('{')
	first := true
	for _, f := range cachedFields(v.Type()) {
		fv, ok := fieldByIndex(v, f.index)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.writeString(f.name)
		e.buf.WriteByte(':')
		if f.quoted {
			if err := e.encodeQuoted(fv); err != nil {
				return err
			}
			continue
		}
		if err := e.encode(fv); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

// encodeQuoted handles the ",string" tag option
func (e *jsonEncoder) encodeQuoted(v reflect.Value) error {
	if v.Kind() == reflect.String {
		inner := getBuffer()
		defer putBuffer(inner)
		inner.WriteByte('"')
		appendJSONString(inner, v.String())
		inner.WriteByte('"')
		e.writeString(inner.String())
		return nil
	}
	e.buf.WriteByte('"')
	if err := e.encode(v); err != nil {
		return err
	}
	e.buf.WriteByte('"')
	return nil
}

func (e *jsonEncoder) writeFloat(f float64, bits int) {
	b, ok := appendNumber(e.buf.AvailableBuffer(), f, bits)
	if !ok {
		e.buf.WriteString("null")
		return
	}
	e.buf.Write(b)
}

func (e *jsonEncoder) writeString(s string) {
	e.buf.WriteByte('"')
	appendJSONString(e.buf, s)
	e.buf.WriteByte('"')
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			// Flush unescaped prefix
			if start < i {
				buf.WriteString(s[start:i])
			}
			switch c {
			case '"':
				buf.WriteString(`\"`)
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
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexChars[c>>4])
				buf.WriteByte(hexChars[c&0x0f])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if start < i {
				buf.WriteString(s[start:i])
			}
			buf.WriteString(`\ufffd`)
			i += size
			start = i
			continue
		}
		// U+2028 and U+2029 are valid JSON but break JavaScript parsers
		if r == '\u2028' || r == '\u2029' {
			if start < i {
				buf.WriteString(s[start:i])
			}
			buf.WriteString(`\u202`)
			buf.WriteByte(hexChars[r&0xF])
			i += size
			start = i
			continue
		}
		i += size
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
