package core

// Field is a single key/value pair of an ordered detail payload
type Field struct {
	Key   string
	Value interface{}
}

// Fields is an ordered detail payload. Unlike a map it keeps insertion
// order when formatted.
type Fields []Field

// Get returns the value of the first field named key
func (fs Fields) Get(key string) (interface{}, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field keys in order
func (fs Fields) Keys() []string {
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.Key
	}
	return keys
}
