package value

import (
	"iter"
	"slices"
)

// Mapping is an insertion-ordered map from text keys to values.
//
// The zero Mapping is not usable; create one with [NewMapping].
type Mapping struct {
	vals map[string]Value
	keys []string
}

// NewMapping returns an empty mapping with room for n entries.
func NewMapping(n ...int) *Mapping {
	size := 0
	if len(n) > 0 {
		size = n[0]
	}

	return &Mapping{
		vals: make(map[string]Value, size),
		keys: make([]string, 0, size),
	}
}

// Len returns the number of entries in m.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Get returns the value stored for key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Empty(), false
	}

	v, ok := m.vals[key]

	return v, ok
}

// Set stores v for key. An existing key keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.vals[key] = v
}

// Add stores v for key unless key is already present.
// It reports whether v was stored.
func (m *Mapping) Add(key string, v Value) bool {
	if _, ok := m.vals[key]; ok {
		return false
	}

	m.keys = append(m.keys, key)
	m.vals[key] = v

	return true
}

// Keys returns the keys of m in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// SortedKeys returns the keys of m in ascending order.
func (m *Mapping) SortedKeys() []string {
	return slices.Sorted(slices.Values(m.Keys()))
}

// All returns an iterator over the entries of m in insertion order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}

		for _, key := range m.keys {
			if !yield(key, m.vals[key]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of m.
func (m *Mapping) Clone() *Mapping {
	c := NewMapping(m.Len())
	for key, v := range m.All() {
		c.Set(key, v)
	}

	return c
}
