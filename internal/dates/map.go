package dates

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/julianstephens/bookable/internal/models"
)

// Map is a DateID-keyed map that iterates in insertion order.
// Setting an existing key replaces its value without moving it.
type Map[V any] struct {
	keys   []models.DateID
	values map[models.DateID]V
}

func NewMap[V any]() *Map[V] {
	return &Map[V]{values: make(map[models.DateID]V)}
}

// ToMap folds items into a Map. Later items overwrite earlier ones with the same key.
func ToMap[V any](items []V, key func(V) models.DateID) *Map[V] {
	m := NewMap[V]()
	for _, item := range items {
		m.Set(key(item), item)
	}
	return m
}

func (m *Map[V]) Set(id models.DateID, v V) {
	if _, ok := m.values[id]; !ok {
		m.keys = append(m.keys, id)
	}
	m.values[id] = v
}

func (m *Map[V]) Get(id models.DateID) (V, bool) {
	v, ok := m.values[id]
	return v, ok
}

// Lookup finds a value by its YYYY-MM-DD key, ignoring the zone.
func (m *Map[V]) Lookup(key string) (V, bool) {
	for _, id := range m.keys {
		if id.String() == key {
			return m.values[id], true
		}
	}
	var zero V
	return zero, false
}

func (m *Map[V]) Len() int {
	return len(m.keys)
}

func (m *Map[V]) Keys() []models.DateID {
	out := make([]models.DateID, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, id := range m.keys {
		out = append(out, m.values[id])
	}
	return out
}

// All iterates entries in insertion order.
func (m *Map[V]) All() iter.Seq2[models.DateID, V] {
	return func(yield func(models.DateID, V) bool) {
		for _, id := range m.keys {
			if !yield(id, m.values[id]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the map as a JSON object keyed by YYYY-MM-DD, in insertion order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id.String())
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[id])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
