package pipette

import (
	"iter"
	"slices"

	"github.com/KasperOmsK/pipette/internal/iterx"
)

// Pipe is a lazily-evaluated sequence of values of type T that stages can be
// chained onto from left to right.
//
// The first error raised while applying a stage sticks to the Pipe: every
// later stage is skipped and the Pipe yields nothing.
type Pipe[T any] struct {
	seq iter.Seq[T]
	err error
}

// From wraps seq in a Pipe. A nil seq is treated as empty.
func From[T any](seq iter.Seq[T]) Pipe[T] {
	if seq == nil {
		seq = iterx.Empty[T]()
	}
	return Pipe[T]{seq: seq}
}

// Of returns a Pipe over values.
func Of[T any](values ...T) Pipe[T] {
	return From(iterx.FromSlice(values))
}

// Then pipes p through a stage that keeps the element type.
func (p Pipe[T]) Then(s Stage[iter.Seq[T], iter.Seq[T]]) Pipe[T] {
	return Via(p, s)
}

// Via pipes p through a stage that changes the element type.
func Via[In, Out any](p Pipe[In], s Stage[iter.Seq[In], iter.Seq[Out]]) Pipe[Out] {
	if p.err != nil {
		return Pipe[Out]{seq: iterx.Empty[Out](), err: p.err}
	}
	out, err := s.Apply(p.seq)
	if err != nil {
		return Pipe[Out]{seq: iterx.Empty[Out](), err: err}
	}
	return From(out)
}

// Finish pipes p through a terminal stage and returns its result.
func Finish[T, Out any](p Pipe[T], s Stage[iter.Seq[T], Out]) (Out, error) {
	if p.err != nil {
		var zero Out
		return zero, p.err
	}
	return s.Apply(p.seq)
}

// Tap registers fn to be called with every value flowing through the
// returned Pipe. Taps run in the order they were added.
//
// Tap panics if fn is nil.
func (p Pipe[T]) Tap(fn func(T)) Pipe[T] {
	if fn == nil {
		panic("pipette.Pipe.Tap: nil function")
	}
	if p.err != nil {
		return p
	}
	return Pipe[T]{seq: Tap(p.seq, fn)}
}

// Values returns the underlying sequence.
func (p Pipe[T]) Values() iter.Seq[T] {
	return p.seq
}

// Err returns the first stage error, if any.
func (p Pipe[T]) Err() error {
	return p.err
}

// Results returns the underlying sequence together with the sticky error.
func (p Pipe[T]) Results() (iter.Seq[T], error) {
	return p.seq, p.err
}

// Collect drains the Pipe into a slice.
func (p Pipe[T]) Collect() ([]T, error) {
	if p.err != nil {
		return nil, p.err
	}
	return slices.Collect(p.seq), nil
}
