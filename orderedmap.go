package regionmap

import (
	"cmp"
	"sort"
)

// OrderedMap is a map whose iteration order is the ascending order of its
// keys, independent of insertion order.
type OrderedMap[K cmp.Ordered, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K cmp.Ordered, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// Set adds or replaces the value for key.
func (om *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := om.values[key]; !exists {
		i := sort.Search(len(om.keys), func(i int) bool {
			return om.keys[i] >= key
		})
		om.keys = append(om.keys, key)
		copy(om.keys[i+1:], om.keys[i:])
		om.keys[i] = key
	}
	om.values[key] = value
}

// Get retrieves the value for key.
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, exists := om.values[key]
	return val, exists
}

// Iterate calls f for each key-value pair in key order.
func (om *OrderedMap[K, V]) Iterate(f func(key K, value V)) {
	for _, k := range om.keys {
		f(k, om.values[k])
	}
}

// Len returns the number of elements in the map.
func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}
