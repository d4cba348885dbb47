package kvkit

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Pair is a single key value element of a KeyValues.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// KeyValues is a Collection of key value pairs that can be converted back into a Record.
//
// Typical usage:
//
//	kvkit.FromRecord(rec)
//	[ operations on it ]
//	...
//	.ToObject()
//
// Keys don't have to be unique, unless KeyedBy enforces it.
// When two pairs share a key, ToObject keeps the value of the later one.
type KeyValues[K comparable, V any] struct {
	pairs   *Collection[Pair[K, V]]
	drained bool
}

// NewKeyValues wraps a Collection of pairs.
func NewKeyValues[K comparable, V any](pairs *Collection[Pair[K, V]]) *KeyValues[K, V] {
	return &KeyValues[K, V]{pairs: pairs}
}

// FromPairs constructs a KeyValues from the given pairs, in order.
func FromPairs[K comparable, V any](pairs ...Pair[K, V]) *KeyValues[K, V] {
	return NewKeyValues(FromSlice(pairs))
}

// FromRecord pairs each field name of r with its value, in the Record's order.
func FromRecord(r *Record) *KeyValues[string, any] {
	var pairs []Pair[string, any]
	for k, v := range r.Fields() {
		pairs = append(pairs, Pair[string, any]{Key: k, Value: v})
	}
	return FromPairs(pairs...)
}

// FromMap pairs each key of m with its value, in ascending key order.
func FromMap[K cmp.Ordered, V any](m map[K]V) *KeyValues[K, V] {
	var pairs []Pair[K, V]
	for _, k := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: m[k]})
	}
	return FromPairs(pairs...)
}

// FromArray keys each element of vs by its zero based index.
// The index is assigned when the element is produced.
func FromArray[T any](vs []T) *KeyValues[int, T] {
	next := sequentialIndexer()
	return NewKeyValues(Map(FromSlice(vs), func(v T) Pair[int, T] {
		return Pair[int, T]{Key: next(), Value: v}
	}))
}

func sequentialIndexer() func() int {
	var i int
	return func() int {
		n := i
		i++
		return n
	}
}

// MapValues transforms the value of every pair, keeping its key.
func MapValues[K comparable, V, V2 any](kv *KeyValues[K, V], fn func(V) V2) *KeyValues[K, V2] {
	return FlatMapPairs(kv, func(p Pair[K, V]) (Pair[K, V2], bool) {
		return Pair[K, V2]{Key: p.Key, Value: fn(p.Value)}, true
	})
}

// TryMapValues is like MapValues, but fn may fail.
// The first error aborts the terminal operation and is returned by it.
func TryMapValues[K comparable, V, V2 any](kv *KeyValues[K, V], fn func(V) (V2, error)) *KeyValues[K, V2] {
	return NewKeyValues(TryMap(kv.pairs, func(p Pair[K, V]) (Pair[K, V2], error) {
		v, err := fn(p.Value)
		if err != nil {
			return Pair[K, V2]{}, err
		}
		return Pair[K, V2]{Key: p.Key, Value: v}, nil
	}))
}

// FlatMapPairs rewrites both the key and the value of every pair.
// Returning false drops the pair.
func FlatMapPairs[K comparable, V any, K2 comparable, V2 any](kv *KeyValues[K, V], fn func(Pair[K, V]) (Pair[K2, V2], bool)) *KeyValues[K2, V2] {
	return NewKeyValues(FlatMap(kv.pairs, func(p Pair[K, V]) []Pair[K2, V2] {
		out, ok := fn(p)
		if !ok {
			return nil
		}
		return []Pair[K2, V2]{out}
	}))
}

// Filter keeps the pairs for which pred returns true.
func (kv *KeyValues[K, V]) Filter(pred func(K, V) bool) *KeyValues[K, V] {
	return NewKeyValues(kv.pairs.Filter(func(p Pair[K, V]) bool {
		return pred(p.Key, p.Value)
	}))
}

// Pluck keeps only the pairs whose key is one of keys.
// Keys that are not present are ignored.
func (kv *KeyValues[K, V]) Pluck(keys ...K) *KeyValues[K, V] {
	set := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return kv.Filter(func(k K, _ V) bool {
		_, ok := set[k]
		return ok
	})
}

// Values drops the keys.
func (kv *KeyValues[K, V]) Values() *Collection[V] {
	return Map(kv.pairs, func(p Pair[K, V]) V { return p.Value })
}

// Keys drops the values.
func (kv *KeyValues[K, V]) Keys() *Collection[K] {
	return Map(kv.pairs, func(p Pair[K, V]) K { return p.Key })
}

// Pairs exposes the underlying Collection of pairs.
func (kv *KeyValues[K, V]) Pairs() *Collection[Pair[K, V]] {
	return kv.pairs
}

// ToPairs drains the KeyValues into a slice of pairs.
func (kv *KeyValues[K, V]) ToPairs() ([]Pair[K, V], error) {
	kv.drained = true
	return kv.pairs.ToSlice()
}

// ToObject drains the KeyValues and builds a Record from it.
//
// Each key becomes a field name in its fmt.Sprint form, and the value is converted recursively:
//   - a nested KeyValues is converted with ToObject,
//   - a nested Collection is converted with ToSlice,
//   - a *Record or a map[string]any is copied field by field,
//   - anything else, including slices, is used as it is.
//
// When multiple pairs share a field name, the last one wins.
// On an already drained KeyValues, ToObject fails with ErrKeyValuesAlreadyDrained.
func (kv *KeyValues[K, V]) ToObject() (*Record, error) {
	if kv.drained || kv.pairs.IsDrained() {
		return nil, ErrKeyValuesAlreadyDrained
	}
	kv.drained = true
	pairs, err := kv.pairs.ToSlice()
	if err != nil {
		return nil, err
	}
	r := &Record{}
	for _, p := range pairs {
		v, err := fieldValue(p.Value)
		if err != nil {
			return nil, err
		}
		r.Set(fmt.Sprint(p.Key), v)
	}
	return r, nil
}

// IsDrained reports whether a terminal operation was already called on the KeyValues.
func (kv *KeyValues[K, V]) IsDrained() bool {
	return kv.drained || kv.pairs.IsDrained()
}

// Close releases the underlying producer without reading it.
func (kv *KeyValues[K, V]) Close() error {
	kv.drained = true
	return kv.pairs.Close()
}

func (kv *KeyValues[K, V]) toObjectField() (any, error) {
	if kv == nil {
		return nil, nil
	}
	return kv.ToObject()
}

func (c *Collection[T]) toArrayField() (any, error) {
	if c == nil {
		return nil, nil
	}
	return c.ToSlice()
}
