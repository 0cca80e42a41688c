package pipette

import (
	"iter"
	"slices"

	"github.com/KasperOmsK/pipette/maybe"
)

// The functions in this file are terminal: they consume their input (all of
// it, unless stated otherwise) and return a concrete value. None of them
// returns on an infinite sequence unless noted.

// Into hands seq to build and returns whatever build produces. build is the
// caller's container constructor, for example slices.Collect:
//
//	evens := pipette.Into(pipette.Where(seq, isEven), slices.Collect[int])
func Into[T, C any](seq iter.Seq[T], build func(iter.Seq[T]) C) C {
	return build(seq)
}

// Reduce folds seq from the left, seeding the accumulator with the first
// value. It returns ErrEmptySequence if seq yields nothing.
func Reduce[T any](seq iter.Seq[T], fn func(acc, v T) T) (T, error) {
	var acc T
	seeded := false
	for in := range seq {
		if !seeded {
			acc, seeded = in, true
			continue
		}
		acc = fn(acc, in)
	}
	if !seeded {
		return acc, ErrEmptySequence
	}
	return acc, nil
}

// ReduceFrom folds seq from the left starting at initial. An empty sequence
// returns initial unchanged, whatever its value.
func ReduceFrom[T, A any](seq iter.Seq[T], initial A, fn func(acc A, v T) A) A {
	acc := initial
	for in := range seq {
		acc = fn(acc, in)
	}
	return acc
}

// Partition splits seq into the values satisfying predicate and the rest,
// both in input order.
func Partition[T any](seq iter.Seq[T], predicate func(T) bool) (matched, rest []T) {
	for in := range seq {
		if predicate(in) {
			matched = append(matched, in)
		} else {
			rest = append(rest, in)
		}
	}
	return matched, rest
}

// Groups maps keys to the values that share them. Keys are kept in order of
// first occurrence and values in input order.
type Groups[K comparable, T any] struct {
	keys  []K
	index map[K][]T
}

// GroupBy collects seq into groups by key.
//
// Unlike a streaming group-by, values with the same key are gathered
// regardless of whether they are adjacent.
func GroupBy[T any, K comparable](seq iter.Seq[T], key func(T) K) *Groups[K, T] {
	g := &Groups[K, T]{index: make(map[K][]T)}
	for in := range seq {
		k := key(in)
		group, ok := g.index[k]
		if !ok {
			g.keys = append(g.keys, k)
		}
		g.index[k] = append(group, in)
	}
	return g
}

func (g *Groups[K, T]) Len() int { return len(g.keys) }

// Keys returns the keys in order of first occurrence.
func (g *Groups[K, T]) Keys() []K { return slices.Clone(g.keys) }

func (g *Groups[K, T]) Get(key K) ([]T, bool) {
	group, ok := g.index[key]
	return group, ok
}

// All yields every key with its group, in key order.
func (g *Groups[K, T]) All() iter.Seq2[K, []T] {
	return func(yield func(K, []T) bool) {
		for _, k := range g.keys {
			if !yield(k, g.index[k]) {
				return
			}
		}
	}
}

// First returns the first value of seq, or None if it is empty. Only one
// value is pulled, so First is safe on infinite sequences.
func First[T any](seq iter.Seq[T]) maybe.Maybe[T] {
	for in := range seq {
		return maybe.Some(in)
	}
	return maybe.None[T]()
}

// Last returns the last value of seq, or None if it is empty.
func Last[T any](seq iter.Seq[T]) maybe.Maybe[T] {
	last := maybe.None[T]()
	for in := range seq {
		last = maybe.Some(in)
	}
	return last
}

// Count consumes seq and returns the number of values it yielded.
func Count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// Length is Count. Sequences carry no size, so length is always measured
// by consumption.
func Length[T any](seq iter.Seq[T]) int {
	return Count(seq)
}

// Fork passes seq to each of fns in order and returns their results. Every
// function ranges over seq again, so seq must be restartable for all of
// them to see its values.
func Fork[T, U any](seq iter.Seq[T], fns ...func(iter.Seq[T]) U) []U {
	out := make([]U, 0, len(fns))
	for _, fn := range fns {
		out = append(out, fn(seq))
	}
	return out
}
