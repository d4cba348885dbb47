package kvkit

import (
	"iter"
	"maps"
	"slices"
)

// Record is an ordered mapping from field names to values.
// It is the structural shape KeyValues are built from and converted back into.
//
// The zero value is an empty Record ready to use.
type Record struct {
	keys   []string
	fields map[string]any
}

// Field is a single named value of a Record.
type Field struct {
	Key   string
	Value any
}

// NewRecord creates a Record with the given fields in the given order.
// A repeated key overwrites the earlier value but keeps its position.
func NewRecord(fields ...Field) *Record {
	r := &Record{}
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set assigns value to key.
// A new key is appended after the existing ones, an existing key keeps its position.
func (r *Record) Set(key string, value any) {
	if r.fields == nil {
		r.fields = make(map[string]any)
	}
	if _, ok := r.fields[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = value
}

func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.fields[key]
	return v, ok
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Fields iterates over the fields in order.
func (r *Record) Fields() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.fields[k]) {
				return
			}
		}
	}
}

// Clone makes a shallow copy of the Record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return &Record{
		keys:   slices.Clone(r.keys),
		fields: maps.Clone(r.fields),
	}
}

// ToMap converts the Record into a map.
// Nested records, including the ones inside slices of any, are converted as well.
func (r *Record) ToMap() map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r.keys))
	for k, v := range r.Fields() {
		out[k] = toMapValue(v)
	}
	return out
}

func toMapValue(v any) any {
	switch v := v.(type) {
	case *Record:
		return v.ToMap()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = toMapValue(e)
		}
		return out
	default:
		return v
	}
}

// recordFromMap copies m into a Record, in ascending key order.
func recordFromMap(m map[string]any) *Record {
	r := &Record{}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		r.Set(k, m[k])
	}
	return r
}
