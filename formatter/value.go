package formatter

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/philipp01105/rlog/core"
)

var (
	errCircular = errors.New("circular reference")
	errPanicked = errors.New("panic while formatting")
)

// unsupportedTypeError reports a value kind with no JSON form
type unsupportedTypeError struct {
	typ reflect.Type
}

func (e *unsupportedTypeError) Error() string {
	return "unsupported type: " + e.typ.String()
}

var (
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
	marshalerType     = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	numberType        = reflect.TypeOf(json.Number(""))
	fieldsType        = reflect.TypeOf(core.Fields(nil))
)

// visit identifies a container on the current path. Type and length are
// part of the key so that a struct and its first field, or a slice and a
// shorter re-slice of the same array, are not confused.
type visit struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// ancestors tracks the containers between the root and the value being
// rendered. A value found in its own ancestry closes a cycle.
type ancestors map[visit]struct{}

func (a ancestors) enter(v reflect.Value) (visit, bool) {
	key := visit{ptr: uintptr(v.UnsafePointer()), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		key.n = v.Len()
	}
	if _, ok := a[key]; ok {
		return key, false
	}
	a[key] = struct{}{}
	return key, true
}

func (a ancestors) leave(key visit) {
	delete(a, key)
}

// implements reports whether v, or its address, implements t. It returns
// the value carrying the implementation.
func implements(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.CanInterface() {
		return v, false
	}
	if v.Type().Implements(t) {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return v, false
		}
		return v, true
	}
	if v.Kind() != reflect.Pointer && v.CanAddr() && reflect.PointerTo(v.Type()).Implements(t) {
		return v.Addr(), true
	}
	return v, false
}

// errorDetails extracts the message and stack rendered for an error. The
// stack comes from a Stack() string method, or from %+v when that adds
// information beyond Error().
func errorDetails(err error) (message, stack string, hasStack bool) {
	message = err.Error()
	if st, ok := err.(interface{ Stack() string }); ok {
		return message, st.Stack(), true
	}
	if verbose := fmt.Sprintf("%+v", err); verbose != message {
		return message, verbose, true
	}
	return message, "", false
}

// appendNumber formats f the way JSON numbers are written: shortest form,
// exponent only outside [1e-6, 1e21). ok is false for NaN and infinities.
func appendNumber(b []byte, f float64, bits int) ([]byte, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return b, false
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b = strconv.AppendFloat(b, f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b, true
}

// mapEntry is a map element with its resolved string key
type mapEntry struct {
	key string
	val reflect.Value
}

// sortedMapEntries resolves and sorts the keys of a map
func sortedMapEntries(v reflect.Value) ([]mapEntry, error) {
	entries := make([]mapEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := resolveKey(iter.Key())
		if err != nil {
			return nil, err
		}
		entries = append(entries, mapEntry{key: key, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries, nil
}

func resolveKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := implements(k, textMarshalerType); ok {
		text, err := tm.Interface().(encoding.TextMarshaler).MarshalText()
		return string(text), err
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", &unsupportedTypeError{typ: k.Type()}
}

// field describes one encodable struct field
type field struct {
	name      string
	tagged    bool
	index     []int
	omitEmpty bool
	quoted    bool
}

var fieldCache sync.Map // map[reflect.Type][]field

// cachedFields returns the encodable fields of struct type t
func cachedFields(t reflect.Type) []field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]field)
	}
	f, _ := fieldCache.LoadOrStore(t, typeFields(t))
	return f.([]field)
}

// typeFields follows the encoding/json rules: exported fields, json tags,
// embedded structs promoted, shallower and tagged fields dominating.
func typeFields(t reflect.Type) []field {
	type queued struct {
		typ   reflect.Type
		index []int
	}

	var fields []field
	visited := map[reflect.Type]bool{}
	next := []queued{{typ: t}}

	for len(next) > 0 {
		current := next
		next = nil
		for _, q := range current {
			if visited[q.typ] {
				continue
			}
			visited[q.typ] = true

			for i := 0; i < q.typ.NumField(); i++ {
				sf := q.typ.Field(i)
				if sf.Anonymous {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if !sf.IsExported() && ft.Kind() != reflect.Struct {
						continue
					}
				} else if !sf.IsExported() {
					continue
				}

				tag := sf.Tag.Get("json")
				if tag == "-" {
					continue
				}
				name, opts, _ := strings.Cut(tag, ",")

				index := make([]int, len(q.index)+1)
				copy(index, q.index)
				index[len(q.index)] = i

				ft := sf.Type
				if ft.Name() == "" && ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}

				if name != "" || !sf.Anonymous || ft.Kind() != reflect.Struct {
					f := field{
						name:      name,
						tagged:    name != "",
						index:     index,
						omitEmpty: hasOption(opts, "omitempty"),
					}
					if f.name == "" {
						f.name = sf.Name
					}
					if hasOption(opts, "string") {
						switch ft.Kind() {
						case reflect.Bool,
							reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
							reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
							reflect.Float32, reflect.Float64,
							reflect.String:
							f.quoted = true
						}
					}
					fields = append(fields, f)
					continue
				}

				next = append(next, queued{typ: ft, index: index})
			}
		}
	}

	sort.Slice(fields, func(i, j int) bool {
		if fields[i].name != fields[j].name {
			return fields[i].name < fields[j].name
		}
		if len(fields[i].index) != len(fields[j].index) {
			return len(fields[i].index) < len(fields[j].index)
		}
		return fields[i].tagged && !fields[j].tagged
	})

	out := make([]field, 0, len(fields))
	for i := 0; i < len(fields); {
		j := i + 1
		for j < len(fields) && fields[j].name == fields[i].name {
			j++
		}
		group := fields[i:j]
		if len(group) == 1 || len(group[0].index) < len(group[1].index) || group[0].tagged != group[1].tagged {
			out = append(out, group[0])
		}
		i = j
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].index, out[j].index
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}

func hasOption(opts, name string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == name {
			return true
		}
	}
	return false
}

// fieldByIndex walks an index path, stopping at nil embedded pointers
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for _, i := range index {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, true
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
