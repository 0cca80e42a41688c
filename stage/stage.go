// Package stage provides ready-made pipette.Stage templates for every
// combinator in package pipette.
//
// Each constructor returns an unbound template. Configure it with Bind and
// feed it a sequence with pipette.Apply or one of the Pipe methods:
//
//	top := pipette.Of(3, 1, 3, 2).
//		Then(stage.Distinct[int]()).
//		Then(stage.SortByDesc[int, int]().Bind(func(v int) int { return v })).
//		Then(stage.Take[int]().Bind(2))
//	vals, err := top.Collect() // [3 2], nil
//
// Bound arguments are only checked when the stage is applied; a wrong count
// or type is reported as an error wrapping pipette.ErrArgumentMismatch.
package stage

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/KasperOmsK/pipette"
	"github.com/KasperOmsK/pipette/maybe"
)

// Seq is a stage that maps one sequence to another.
type Seq[In, Out any] = pipette.Stage[iter.Seq[In], iter.Seq[Out]]

// Terminal is a stage that consumes a sequence into a value.
type Terminal[T, Out any] = pipette.Stage[iter.Seq[T], Out]

// Select binds: fn func(In) Out.
func Select[In, Out any]() Seq[In, Out] {
	return pipette.Func1("select", pipette.Select[In, Out])
}

// Where binds: predicate func(T) bool.
func Where[T any]() Seq[T, T] {
	return pipette.Func1("where", pipette.Where[T])
}

// FlatMap binds: fn func(In) []Out.
func FlatMap[In, Out any]() Seq[In, Out] {
	return pipette.Func1("flat_map", pipette.FlatMap[In, Out])
}

// Tap binds: fn func(T).
func Tap[T any]() Seq[T, T] {
	return pipette.Func1("tap", pipette.Tap[T])
}

// Into binds: build func(iter.Seq[T]) C.
func Into[T, C any]() Terminal[T, C] {
	return pipette.Func1("into", pipette.Into[T, C])
}

// Collect materialises the sequence into a slice.
func Collect[T any]() Terminal[T, []T] {
	return pipette.Func("collect", slices.Collect[T])
}

// Take binds: n int.
func Take[T any]() Seq[T, T] {
	return pipette.Func1("take", pipette.Take[T])
}

// Skip binds: n int.
func Skip[T any]() Seq[T, T] {
	return pipette.Func1("skip", pipette.Skip[T])
}

// Reduce binds: fn func(acc, v T) T, then optionally the initial value,
// either positionally or as the named argument "initial". Presence of the
// argument, not its value, decides whether the fold is seeded, so a zero or
// nil initial value is honoured.
func Reduce[T any]() Terminal[T, T] {
	return pipette.New("reduce", func(seq iter.Seq[T], args pipette.Args) (T, error) {
		var zero T
		if args.Len() < 1 || args.Len() > 2 {
			return zero, mismatch(fmt.Sprintf("takes 1 or 2 arguments, %d given", args.Len()))
		}
		for _, name := range args.Names() {
			if name != "initial" {
				return zero, mismatch(fmt.Sprintf("unexpected named argument %q", name))
			}
		}
		fn, err := pipette.Arg[func(T, T) T](args, 0)
		if err != nil {
			return zero, err
		}

		initial, seeded, err := pipette.NamedArg[T](args, "initial")
		if err != nil {
			return zero, err
		}
		if args.Len() == 2 {
			if seeded {
				return zero, mismatch(`"initial" given both positionally and by name`)
			}
			if initial, err = pipette.Arg[T](args, 1); err != nil {
				return zero, err
			}
			seeded = true
		}

		if seeded {
			return pipette.ReduceFrom(seq, initial, fn), nil
		}
		return pipette.Reduce(seq, fn)
	})
}

// Distinct takes no arguments.
func Distinct[T comparable]() Seq[T, T] {
	return pipette.Func("distinct", pipette.Distinct[T])
}

// UniqueBy binds: key func(T) K.
func UniqueBy[T any, K comparable]() Seq[T, T] {
	return pipette.Func1("unique_by", pipette.UniqueBy[T, K])
}

// SortBy binds: key func(T) K.
func SortBy[T any, K cmp.Ordered]() Seq[T, T] {
	return pipette.Func1("sort_by", pipette.SortBy[T, K])
}

// SortByDesc binds: key func(T) K.
func SortByDesc[T any, K cmp.Ordered]() Seq[T, T] {
	return pipette.Func1("sort_by_desc", pipette.SortByDesc[T, K])
}

// SortByFunc binds: compare func(a, b T) int.
func SortByFunc[T any]() Seq[T, T] {
	return pipette.Func1("sort_by_func", pipette.SortByFunc[T])
}

// Chunk binds: size int.
func Chunk[T any]() Seq[T, []T] {
	return pipette.Func1("chunk", pipette.Chunk[T])
}

// Partition binds: predicate func(T) bool. The result holds the matching
// values first and the rest second.
func Partition[T any]() Terminal[T, [2][]T] {
	return pipette.Func1("partition", func(seq iter.Seq[T], predicate func(T) bool) [2][]T {
		matched, rest := pipette.Partition(seq, predicate)
		return [2][]T{matched, rest}
	})
}

// GroupBy binds: key func(T) K.
func GroupBy[T any, K comparable]() Terminal[T, *pipette.Groups[K, T]] {
	return pipette.Func1("group_by", pipette.GroupBy[T, K])
}

// Flatten takes no arguments.
func Flatten() Seq[any, any] {
	return pipette.Func("flatten", pipette.Flatten)
}

// Traverse takes no arguments.
func Traverse() Seq[any, any] {
	return pipette.Func("traverse", pipette.Traverse)
}

// OfType takes no arguments.
func OfType[T any]() Seq[any, T] {
	return pipette.Func("of_type", pipette.OfType[T])
}

// Interleave binds: any number of further iter.Seq[T] sources, which
// follow the piped sequence in round-robin order.
func Interleave[T any]() Seq[T, T] {
	return pipette.New("interleave", func(seq iter.Seq[T], args pipette.Args) (iter.Seq[T], error) {
		seqs, err := sources(seq, args)
		if err != nil {
			return nil, err
		}
		return pipette.Interleave(seqs...), nil
	})
}

// ZipWith binds: any number of further iter.Seq[T] sources, zipped after
// the piped sequence.
func ZipWith[T any]() Seq[T, []maybe.Maybe[T]] {
	return pipette.New("zip_with", func(seq iter.Seq[T], args pipette.Args) (iter.Seq[[]maybe.Maybe[T]], error) {
		seqs, err := sources(seq, args)
		if err != nil {
			return nil, err
		}
		return pipette.ZipWith(seqs...), nil
	})
}

func mismatch(msg string) error {
	return fmt.Errorf("%w: %s", pipette.ErrArgumentMismatch, msg)
}

func sources[T any](seq iter.Seq[T], args pipette.Args) ([]iter.Seq[T], error) {
	if names := args.Names(); len(names) > 0 {
		return nil, mismatch(fmt.Sprintf("unexpected named argument %q", names[0]))
	}
	seqs := make([]iter.Seq[T], 0, args.Len()+1)
	seqs = append(seqs, seq)
	for i := range args.Len() {
		s, err := pipette.Arg[iter.Seq[T]](args, i)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, s)
	}
	return seqs, nil
}

// Intersperse binds: sep T.
func Intersperse[T any]() Seq[T, T] {
	return pipette.Func1("intersperse", pipette.Intersperse[T])
}

// Repeat binds: times int.
func Repeat[T any]() Seq[T, T] {
	return pipette.Func1("repeat", pipette.Repeat[T])
}

// RepeatForever takes no arguments.
func RepeatForever[T any]() Seq[T, T] {
	return pipette.Func("repeat_forever", pipette.RepeatForever[T])
}

// Rep binds: times int.
func Rep[T any]() Seq[T, T] {
	return pipette.Func1("rep", pipette.Rep[T])
}

// First takes no arguments.
func First[T any]() Terminal[T, maybe.Maybe[T]] {
	return pipette.Func("first", pipette.First[T])
}

// Last takes no arguments.
func Last[T any]() Terminal[T, maybe.Maybe[T]] {
	return pipette.Func("last", pipette.Last[T])
}

// Count takes no arguments.
func Count[T any]() Terminal[T, int] {
	return pipette.Func("count", pipette.Count[T])
}

// Length takes no arguments.
func Length[T any]() Terminal[T, int] {
	return pipette.Func("length", pipette.Length[T])
}

// Fork binds: any number of func(iter.Seq[T]) U consumers.
func Fork[T, U any]() Terminal[T, []U] {
	return pipette.New("fork", func(seq iter.Seq[T], args pipette.Args) ([]U, error) {
		fns := make([]func(iter.Seq[T]) U, 0, args.Len())
		for i := range args.Len() {
			fn, err := pipette.Arg[func(iter.Seq[T]) U](args, i)
			if err != nil {
				return nil, err
			}
			fns = append(fns, fn)
		}
		return pipette.Fork(seq, fns...), nil
	})
}
