// Package report holds the ordered, nested key/value structure that every
// status report is built from, and the walk that flattens it into rows.
package report

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Section is an ordered mapping from string keys to values. A value is
// either a scalar (string, bool, integer, float or nil) or a nested
// *Section. Keys are unique; insertion order is preserved and setting an
// existing key keeps its original position.
//
// The zero value is ready to use. A Section is not safe for concurrent
// mutation.
type Section struct {
	keys   []string
	values map[string]any
}

// NewSection creates an empty section.
func NewSection() *Section {
	return &Section{}
}

// Set stores value under key and returns s for chaining.
//
// Maps with string keys become nested sections with sorted keys, slices
// and arrays become nested sections keyed by index, errors and
// fmt.Stringers become their string form, and any other non-scalar is
// formatted with fmt.Sprint. A map, slice or pointer that contains itself
// is cut at the repeat with CycleMarker, and conversion stops at
// DefaultMaxDepth levels with DepthMarker.
func (s *Section) Set(key string, value any) *Section {
	n := &normalizer{visiting: make(map[ref]bool)}
	return s.put(key, n.normalize(value, 0))
}

func (s *Section) put(key string, value any) *Section {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return s
}

// Get returns the value stored under key.
func (s *Section) Get(key string) (any, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Section returns the nested section stored under key, creating it when
// the key is missing or holds a scalar.
func (s *Section) Section(key string) *Section {
	if v, ok := s.Get(key); ok {
		if child, ok := v.(*Section); ok {
			return child
		}
	}
	child := NewSection()
	s.Set(key, child)
	return child
}

// Delete removes key and reports whether it was present.
func (s *Section) Delete(key string) bool {
	if _, ok := s.Get(key); !ok {
		return false
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of entries.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (s *Section) Range(fn func(key string, value any) bool) {
	if s == nil {
		return
	}
	for _, k := range s.keys {
		if !fn(k, s.values[k]) {
			return
		}
	}
}

// Merge copies the top-level entries of other into s.
func (s *Section) Merge(other *Section) *Section {
	other.Range(func(k string, v any) bool {
		s.Set(k, v)
		return true
	})
	return s
}

// FormatScalar returns the canonical string form of a scalar value.
// Booleans are "true" or "false", nil is the empty string, and floats use
// the shortest representation that round-trips.
func FormatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case *Section:
		return fmt.Sprintf("section(%d)", x.Len())
	}
	return fmt.Sprint(v)
}

// Markers stored in place of values that cannot be converted.
const (
	CycleMarker = "<cycle>"
	DepthMarker = "<too deep>"
)

// ref identifies a map, slice or pointer during conversion. Length and
// type are part of the key so sub-slices sharing a backing array differ.
type ref struct {
	ptr uintptr
	n   int
	typ reflect.Type
}

type normalizer struct {
	visiting map[ref]bool
}

// normalize converts value into a scalar or *Section.
func (n *normalizer) normalize(value any, depth int) any {
	switch x := value.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x
	case *Section:
		if x == nil {
			return nil
		}
		return x
	case []byte:
		return string(x)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
	default:
		return fmt.Sprint(value)
	}
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() != reflect.String {
		return fmt.Sprint(value)
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	if rv.Kind() != reflect.Array && rv.Pointer() != 0 {
		r := ref{ptr: rv.Pointer(), typ: rv.Type()}
		if rv.Kind() != reflect.Pointer {
			r.n = rv.Len()
		}
		if n.visiting[r] {
			return CycleMarker
		}
		n.visiting[r] = true
		defer delete(n.visiting, r)
	}

	if rv.Kind() == reflect.Pointer {
		return n.normalize(rv.Elem().Interface(), depth)
	}
	if depth >= DefaultMaxDepth {
		return DepthMarker
	}

	child := NewSection()
	if rv.Kind() == reflect.Map {
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
			child.put(k, n.normalize(v, depth+1))
		}
		return child
	}
	for i := 0; i < rv.Len(); i++ {
		child.put(strconv.Itoa(i), n.normalize(rv.Index(i).Interface(), depth+1))
	}
	return child
}
