package diff

import (
	"iter"
	"slices"
)

// OrderedMap is a string-keyed map that remembers insertion order. The
// zero value is ready to use.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Set stores v under key. A new key goes last; an existing key keeps its
// position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
	if len(m.keys) == 0 {
		m.keys = nil
	}
	return true
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order, or nil when m is empty.
func (m *OrderedMap[V]) Keys() []string {
	if len(m.keys) == 0 {
		return nil
	}
	return slices.Clone(m.keys)
}

// Values returns the values in insertion order.
func (m *OrderedMap[V]) Values() []V {
	out := make([]V, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.values[k]
	}
	return out
}

// All iterates over the entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (m *OrderedMap[V]) Clone() OrderedMap[V] {
	var c OrderedMap[V]
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// mapValues returns a copy with every value transformed by f.
func mapValues[V any](m *OrderedMap[V], f func(V) V) OrderedMap[V] {
	var c OrderedMap[V]
	for _, k := range m.keys {
		c.Set(k, f(m.values[k]))
	}
	return c
}

// Pair holds the two sides of a modified or renamed entity.
type Pair[T any] struct {
	From T
	To   T
}

// Reverse swaps the sides.
func (p Pair[T]) Reverse() Pair[T] { return Pair[T]{From: p.To, To: p.From} }

func reversePairs[T any](pairs []Pair[T]) []Pair[T] {
	if pairs == nil {
		return nil
	}
	out := make([]Pair[T], len(pairs))
	for i, p := range pairs {
		out[i] = p.Reverse()
	}
	return out
}
