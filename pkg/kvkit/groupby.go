package kvkit

import "slices"

// Groups is the result of GroupBy.
type Groups[K comparable, V any] struct {
	keys   []K
	groups map[K][]V
}

// GroupBy drains kv and groups its values by the key fn derives from them.
//
// Unlike the other transformations, GroupBy is eager,
// a group is only complete once every value has been seen.
// The groups keep the order in which their keys were first seen,
// and the values keep their original order within a group.
func GroupBy[K comparable, V any, K2 comparable](kv *KeyValues[K, V], fn func(V) K2) (*Groups[K2, V], error) {
	pairs, err := kv.ToPairs()
	if err != nil {
		return nil, err
	}
	g := &Groups[K2, V]{groups: make(map[K2][]V)}
	for _, p := range pairs {
		key := fn(p.Value)
		if _, ok := g.groups[key]; !ok {
			g.keys = append(g.keys, key)
		}
		g.groups[key] = append(g.groups[key], p.Value)
	}
	return g, nil
}

// Keys returns the group keys in first seen order.
func (g *Groups[K, V]) Keys() []K {
	return slices.Clone(g.keys)
}

func (g *Groups[K, V]) Len() int {
	return len(g.keys)
}

// Lookup returns a new Collection over the values of the group.
// Every call returns a fresh Collection.
func (g *Groups[K, V]) Lookup(key K) (*Collection[V], bool) {
	vs, ok := g.groups[key]
	if !ok {
		return nil, false
	}
	return FromSlice(vs), true
}

// ToKeyValues pairs each group key with the Collection of its values.
// ToObject on the result turns every group into an array field.
func (g *Groups[K, V]) ToKeyValues() *KeyValues[K, *Collection[V]] {
	pairs := make([]Pair[K, *Collection[V]], 0, len(g.keys))
	for _, k := range g.keys {
		pairs = append(pairs, Pair[K, *Collection[V]]{Key: k, Value: FromSlice(g.groups[k])})
	}
	return FromPairs(pairs...)
}
