package pipette

import (
	"cmp"
	"iter"
	"slices"

	"github.com/KasperOmsK/pipette/maybe"
)

// Select transforms each input value using fn and returns a sequence of the
// mapped values, in input order.
func Select[In, Out any](seq iter.Seq[In], fn func(In) Out) iter.Seq[Out] {
	return func(yield func(Out) bool) {
		for in := range seq {
			if !yield(fn(in)) {
				return
			}
		}
	}
}

// Where returns a sequence that yields only the values for which predicate
// returns true.
//
// Where keeps scanning until it finds a match, so on an infinite sequence
// with no matches it never returns.
func Where[T any](seq iter.Seq[T], predicate func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for in := range seq {
			if predicate(in) {
				if !yield(in) {
					return
				}
			}
		}
	}
}

// FlatMap transforms each input value using fn and yields the elements of
// every resulting slice in order.
func FlatMap[In, Out any](seq iter.Seq[In], fn func(In) []Out) iter.Seq[Out] {
	return flattenSlices(Select(seq, fn))
}

func flattenSlices[T any](seq iter.Seq[[]T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for slice := range seq {
			for _, item := range slice {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Tap calls fn with every value as it passes through.
//
// Tap panics if fn is nil.
func Tap[T any](seq iter.Seq[T], fn func(T)) iter.Seq[T] {
	if fn == nil {
		panic("pipette.Tap: nil function")
	}
	return func(yield func(T) bool) {
		for in := range seq {
			fn(in)
			if !yield(in) {
				return
			}
		}
	}
}

// Take yields at most n values. It stops pulling from seq as soon as the
// n-th value has been yielded, so it is the usual way to bound an infinite
// sequence.
//
// Take panics if n is negative.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n < 0 {
		panic("pipette.Take: n must not be negative")
	}
	return func(yield func(T) bool) {
		if n == 0 {
			return
		}
		taken := 0
		for in := range seq {
			if !yield(in) {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}

// Skip discards the first n values and yields the rest.
//
// Skip panics if n is negative.
func Skip[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n < 0 {
		panic("pipette.Skip: n must not be negative")
	}
	return func(yield func(T) bool) {
		skipped := 0
		for in := range seq {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(in) {
				return
			}
		}
	}
}

// Distinct yields each value the first time it is seen and drops later
// duplicates, preserving the order of first occurrence.
//
// For interface element types the dynamic values must be hashable;
// Distinct panics otherwise, as a map insert would.
func Distinct[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return UniqueBy(seq, func(v T) T { return v })
}

// UniqueBy is like Distinct but compares key(v) instead of v. The first
// value seen for each key wins.
func UniqueBy[T any, K comparable](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := make(map[K]struct{})
		for in := range seq {
			k := key(in)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if !yield(in) {
				return
			}
		}
	}
}

type keyed[T any, K any] struct {
	key  K
	item T
}

// SortBy yields the values of seq in ascending order of key. Values with
// equal keys keep their input order.
//
// The whole of seq is read, and key called once per value, when iteration
// starts. SortBy never yields anything for an infinite sequence.
func SortBy[T any, K cmp.Ordered](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return sortKeyed(seq, key, cmp.Compare[K])
}

// SortByDesc is SortBy in descending order of key. It is also stable.
func SortByDesc[T any, K cmp.Ordered](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return sortKeyed(seq, key, func(a, b K) int { return cmp.Compare(b, a) })
}

// SortByFunc yields the values of seq ordered by compare, which follows the
// slices.SortFunc convention. The sort is stable.
func SortByFunc[T any](seq iter.Seq[T], compare func(a, b T) int) iter.Seq[T] {
	return func(yield func(T) bool) {
		items := slices.Collect(seq)
		slices.SortStableFunc(items, compare)
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func sortKeyed[T, K any](seq iter.Seq[T], key func(T) K, compare func(a, b K) int) iter.Seq[T] {
	return func(yield func(T) bool) {
		var items []keyed[T, K]
		for in := range seq {
			items = append(items, keyed[T, K]{key: key(in), item: in})
		}
		slices.SortStableFunc(items, func(a, b keyed[T, K]) int {
			return compare(a.key, b.key)
		})
		for _, k := range items {
			if !yield(k.item) {
				return
			}
		}
	}
}

// maxChunkPrealloc bounds the capacity reserved for a chunk before its
// values arrive.
const maxChunkPrealloc = 64

// Chunk groups consecutive values into slices of the given size.
//
// The final chunk may be smaller than chunkSize. Every chunk has its own
// backing array, so callers may retain chunks.
//
// Chunk panics if chunkSize is not positive.
func Chunk[T any](seq iter.Seq[T], chunkSize int) iter.Seq[[]T] {
	if chunkSize <= 0 {
		panic("pipette.Chunk: chunkSize must be positive")
	}

	return func(yield func([]T) bool) {
		accum := make([]T, 0, min(chunkSize, maxChunkPrealloc))
		for in := range seq {
			accum = append(accum, in)
			if len(accum) == chunkSize {
				if !yield(accum) {
					return
				}
				accum = make([]T, 0, min(chunkSize, maxChunkPrealloc))
			}
		}

		if len(accum) > 0 {
			yield(accum)
		}
	}
}

// Interleave yields one value from each source in turn. A source that runs
// out is dropped from later rounds; the others carry on until all are
// exhausted.
func Interleave[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		nexts := make([]func() (T, bool), 0, len(seqs))
		for _, seq := range seqs {
			next, stop := iter.Pull(seq)
			defer stop()
			nexts = append(nexts, next)
		}

		for len(nexts) > 0 {
			live := nexts[:0]
			for _, next := range nexts {
				v, ok := next()
				if !ok {
					continue
				}
				if !yield(v) {
					return
				}
				live = append(live, next)
			}
			nexts = live
		}
	}
}

// Intersperse yields the values of seq with sep between each adjacent pair.
func Intersperse[T any](seq iter.Seq[T], sep T) iter.Seq[T] {
	return func(yield func(T) bool) {
		first := true
		for in := range seq {
			if !first && !yield(sep) {
				return
			}
			first = false
			if !yield(in) {
				return
			}
		}
	}
}

// ZipWith yields, for each position, one entry per source. It runs until
// the longest source is exhausted; positions past the end of a shorter
// source are None.
func ZipWith[T any](seqs ...iter.Seq[T]) iter.Seq[[]maybe.Maybe[T]] {
	return func(yield func([]maybe.Maybe[T]) bool) {
		nexts := make([]func() (T, bool), len(seqs))
		for i, seq := range seqs {
			next, stop := iter.Pull(seq)
			defer stop()
			nexts[i] = next
		}
		done := make([]bool, len(seqs))

		for {
			row := make([]maybe.Maybe[T], len(nexts))
			live := 0
			for i, next := range nexts {
				if done[i] {
					continue
				}
				v, ok := next()
				if !ok {
					done[i] = true
					continue
				}
				row[i] = maybe.Some(v)
				live++
			}
			if live == 0 || !yield(row) {
				return
			}
		}
	}
}

// Repeat yields every value times consecutive times before moving on.
//
// Repeat panics if times is negative.
func Repeat[T any](seq iter.Seq[T], times int) iter.Seq[T] {
	if times < 0 {
		panic("pipette.Repeat: times must not be negative")
	}
	return func(yield func(T) bool) {
		for in := range seq {
			for range times {
				if !yield(in) {
					return
				}
			}
		}
	}
}

// RepeatForever cycles through seq without end. The first pass is
// remembered, so a single-pass source cycles correctly. An empty source
// produces an empty sequence.
//
// Bound the result with Take or another limiting consumer.
func RepeatForever[T any](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var cache []T
		for in := range seq {
			cache = append(cache, in)
			if !yield(in) {
				return
			}
		}
		if len(cache) == 0 {
			return
		}
		for {
			for _, v := range cache {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Rep replays the whole of seq times times. Each pass ranges over seq
// again, so a single-pass source only contributes its first pass.
//
// Rep panics if times is negative.
func Rep[T any](seq iter.Seq[T], times int) iter.Seq[T] {
	if times < 0 {
		panic("pipette.Rep: times must not be negative")
	}
	return func(yield func(T) bool) {
		for range times {
			for in := range seq {
				if !yield(in) {
					return
				}
			}
		}
	}
}
