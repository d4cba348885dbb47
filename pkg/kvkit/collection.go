package kvkit

import (
	"iter"

	"go.llib.dev/frameless/pkg/iterkit"
)

// Collection is a lazy, single-use sequence of T values.
//
// Transformations such as Map, FlatMap and Filter return a new Collection
// without pulling a single element from the source.
// Elements are produced only when a terminal operation (ToSlice, Iterate) asks for them,
// and a Collection can be drained only once.
//
// A Collection derived from another takes over the parent's producer,
// the parent should not be drained on its own afterwards.
type Collection[T any] struct {
	producer Producer[T]
	drained  bool
}

// NewCollection wraps a Producer into a Collection.
func NewCollection[T any](p Producer[T]) *Collection[T] {
	return &Collection[T]{producer: p}
}

// FromSlice constructs a Collection that yields the elements of vs in order.
// The slice is copied, later changes to vs are not observable through the Collection.
func FromSlice[T any](vs []T) *Collection[T] {
	return NewCollection[T](newSliceProducer(vs))
}

// Of is the variadic form of FromSlice.
func Of[T any](vs ...T) *Collection[T] {
	return FromSlice(vs)
}

// FromSeq constructs a Collection from an iter.Seq.
// The sequence is pulled one element at a time, and stopped when the Collection is done with it.
func FromSeq[T any](seq iter.Seq[T]) *Collection[T] {
	return NewCollection[T](newSeqProducer(seq))
}

// FromPullIter constructs a Collection from a pull iterator.
// The iterator's Err is reported by the terminal operation, and the iterator is closed afterwards.
func FromPullIter[T any](itr iterkit.PullIter[T]) *Collection[T] {
	return NewCollection[T](&pullIterProducer[T]{itr: itr})
}

// FlatMap maps every element of c into zero or more U values.
//
// An empty result drops the element, multiple results expand it.
// The output keeps the upstream order, and within one expansion the order fn returned.
// fn is called when the consumer pulls, never ahead of demand.
func FlatMap[T, U any](c *Collection[T], fn func(T) []U) *Collection[U] {
	return flatMap(c, func(v T) ([]U, error) { return fn(v), nil })
}

// Map transforms each element with fn.
// fn is called exactly once per element, at the time the element is pulled.
func Map[T, U any](c *Collection[T], fn func(T) U) *Collection[U] {
	return FlatMap(c, func(v T) []U { return []U{fn(v)} })
}

// TryMap is like Map, but fn may fail.
// The first error aborts the terminal operation and is returned by it.
func TryMap[T, U any](c *Collection[T], fn func(T) (U, error)) *Collection[U] {
	return flatMap(c, func(v T) ([]U, error) {
		out, err := fn(v)
		if err != nil {
			return nil, err
		}
		return []U{out}, nil
	})
}

// Filter keeps the elements for which pred returns true.
func (c *Collection[T]) Filter(pred func(T) bool) *Collection[T] {
	return FlatMap(c, func(v T) []T {
		if pred(v) {
			return []T{v}
		}
		return nil
	})
}

func flatMap[T, U any](c *Collection[T], fn func(T) ([]U, error)) *Collection[U] {
	return NewCollection[U](&flatMapProducer[T, U]{src: c.producer, fn: fn})
}

// ToSlice drains the Collection and returns its elements in order.
//
// ToSlice can be called only once, every later call fails with ErrCollectionAlreadyDrained,
// even when the first call failed.
func (c *Collection[T]) ToSlice() ([]T, error) {
	if c.drained {
		return nil, ErrCollectionAlreadyDrained
	}
	c.drained = true
	vs, err := drain(c.producer)
	if err != nil {
		return nil, err
	}
	return vs, nil
}

// Iterate is the streaming form of ToSlice.
// The Collection counts as drained from the moment Iterate is called.
// On an already drained Collection, the returned sequence yields ErrCollectionAlreadyDrained.
//
// Stopping the iteration early releases the producer.
func (c *Collection[T]) Iterate() iter.Seq2[T, error] {
	if c.drained {
		return func(yield func(T, error) bool) {
			var zero T
			yield(zero, ErrCollectionAlreadyDrained)
		}
	}
	c.drained = true
	p := c.producer
	var used bool
	return func(yield func(T, error) bool) {
		var zero T
		if used {
			yield(zero, ErrCollectionAlreadyDrained)
			return
		}
		used = true
		var done bool // the consumer already got its last value
		defer func() {
			if err := closeProducer(p); err != nil && !done {
				yield(zero, err)
			}
		}()
		for {
			v, ok, err := p.Next()
			if err != nil {
				done = true
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(v, nil) {
				done = true
				return
			}
		}
	}
}

// IsDrained reports whether a terminal operation was already called on the Collection.
func (c *Collection[T]) IsDrained() bool {
	return c.drained
}

// Close releases the underlying producer without reading it.
// A closed Collection counts as drained.
func (c *Collection[T]) Close() error {
	if c.drained {
		return nil
	}
	c.drained = true
	return closeProducer(c.producer)
}
