// Package headers implements the header map described by the data model:
// a case-insensitive multi-map from name to one or more values that
// preserves the insertion order of distinct names.
package headers

import "strings"

// Map is an ordered, case-insensitive multi-map of header names to values.
type Map struct {
	order  []string
	values map[string][]string
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string][]string)}
}

func canon(name string) string {
	return strings.ToLower(name)
}

// Set replaces all existing values for name with value, inserting name at
// the end of the order if it is new.
func (m *Map) Set(name, value string) {
	key := canon(name)
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = []string{value}
}

// SetIfMissing sets name to value only if name is not already present.
func (m *Map) SetIfMissing(name, value string) {
	key := canon(name)
	if _, ok := m.values[key]; ok {
		return
	}
	m.order = append(m.order, key)
	m.values[key] = []string{value}
}

// Add appends value under name, preserving any existing values.
func (m *Map) Add(name, value string) {
	key := canon(name)
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = append(m.values[key], value)
}

// Get returns the first value stored under name, and whether it was present.
func (m *Map) Get(name string) (string, bool) {
	vals, ok := m.values[canon(name)]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Values returns every value stored under name, in append order.
func (m *Map) Values(name string) []string {
	return m.values[canon(name)]
}

// Has reports whether name has at least one value.
func (m *Map) Has(name string) bool {
	_, ok := m.values[canon(name)]
	return ok
}

// Del removes all values for name.
func (m *Map) Del(name string) {
	key := canon(name)
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, n := range m.order {
		if n == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct names stored.
func (m *Map) Len() int {
	return len(m.order)
}

// Range calls fn once per (name, value) pair in insertion order, visiting
// every value of a name before moving to the next name.
func (m *Map) Range(fn func(name, value string)) {
	for _, key := range m.order {
		for _, v := range m.values[key] {
			fn(key, v)
		}
	}
}

// tokenChar reports whether b is a valid RFC 7230 "tchar" byte, the
// grammar allowed in a header field name.
func tokenChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// IsValidName reports whether name is a syntactically valid header field
// name: one or more tchar bytes.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !tokenChar(name[i]) {
			return false
		}
	}
	return true
}

// IsValidValue reports whether value contains only bytes permitted in a
// header field value (no CR or LF byte anywhere).
func IsValidValue(value []byte) bool {
	for _, b := range value {
		if b == '\r' || b == '\n' {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	c := New()
	c.order = append([]string(nil), m.order...)
	for k, v := range m.values {
		c.values[k] = append([]string(nil), v...)
	}
	return c
}
