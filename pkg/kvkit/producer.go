package kvkit

import (
	"io"
	"iter"
	"slices"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
)

// Producer yields the elements of a Collection on demand.
//
// Next returns the next element with ok set to true.
// When the producer is exhausted, Next returns ok as false, and keeps doing so on every later call.
// A non-nil error aborts the production, the consumer will not call Next again.
//
// If a Producer also implements io.Closer, the owning Collection closes it
// once a terminal operation finished with it.
type Producer[T any] interface {
	Next() (value T, ok bool, err error)
}

// ProducerFunc enables anonymous functions to be used as a Producer.
type ProducerFunc[T any] func() (T, bool, error)

func (fn ProducerFunc[T]) Next() (T, bool, error) { return fn() }

func closeProducer[T any](p Producer[T]) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type sliceProducer[T any] struct {
	values []T
	index  int
}

func newSliceProducer[T any](vs []T) *sliceProducer[T] {
	return &sliceProducer[T]{values: slices.Clone(vs)}
}

func (p *sliceProducer[T]) Next() (T, bool, error) {
	if len(p.values) <= p.index {
		var zero T
		return zero, false, nil
	}
	v := p.values[p.index]
	p.index++
	return v, true, nil
}

type seqProducer[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

func newSeqProducer[T any](seq iter.Seq[T]) *seqProducer[T] {
	next, stop := iter.Pull(seq)
	return &seqProducer[T]{next: next, stop: stop}
}

func (p *seqProducer[T]) Next() (T, bool, error) {
	if p.done {
		var zero T
		return zero, false, nil
	}
	v, ok := p.next()
	if !ok {
		p.done = true
		p.stop()
	}
	return v, ok, nil
}

func (p *seqProducer[T]) Close() error {
	if !p.done {
		p.done = true
		p.stop()
	}
	return nil
}

type pullIterProducer[T any] struct {
	itr    iterkit.PullIter[T]
	done   bool
	closed bool
}

func (p *pullIterProducer[T]) Next() (T, bool, error) {
	var zero T
	if p.done {
		return zero, false, nil
	}
	if p.itr.Next() {
		return p.itr.Value(), true, nil
	}
	p.done = true
	if err := p.itr.Err(); err != nil {
		return zero, false, err
	}
	return zero, false, nil
}

func (p *pullIterProducer[T]) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.done = true
	return p.itr.Close()
}

// flatMapProducer is the single lazy stage every derived Collection is built from.
// It pulls the upstream producer only when its own buffer of expanded values ran dry.
// The buffer is the slice fn returned, it is only read, never written.
type flatMapProducer[T, U any] struct {
	src     Producer[T]
	fn      func(T) ([]U, error)
	pending []U
	index   int
	done    bool
}

func (p *flatMapProducer[T, U]) Next() (U, bool, error) {
	var zero U
	for len(p.pending) <= p.index {
		if p.done {
			return zero, false, nil
		}
		v, ok, err := p.src.Next()
		if err != nil {
			p.done = true
			return zero, false, err
		}
		if !ok {
			p.done = true
			return zero, false, nil
		}
		vs, err := p.fn(v)
		if err != nil {
			p.done = true
			return zero, false, err
		}
		p.pending, p.index = vs, 0
	}
	v := p.pending[p.index]
	p.index++
	if len(p.pending) <= p.index {
		p.pending, p.index = nil, 0
	}
	return v, true, nil
}

func (p *flatMapProducer[T, U]) Close() error {
	p.done = true
	p.pending, p.index = nil, 0
	return closeProducer(p.src)
}

// drain pulls p until exhaustion, then closes it.
func drain[T any](p Producer[T]) (_ []T, rErr error) {
	defer errorkit.Finish(&rErr, func() error { return closeProducer(p) })
	var vs = make([]T, 0)
	for {
		v, ok, err := p.Next()
		if err != nil {
			return vs, err
		}
		if !ok {
			return vs, nil
		}
		vs = append(vs, v)
	}
}
