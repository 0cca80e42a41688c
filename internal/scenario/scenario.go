// Package scenario holds the pipelines run by the pipette command.
package scenario

import (
	"iter"
	"slices"

	"github.com/rs/zerolog"

	"github.com/KasperOmsK/pipette"
	"github.com/KasperOmsK/pipette/internal/dataset"
	"github.com/KasperOmsK/pipette/maybe"
	"github.com/KasperOmsK/pipette/stage"
)

// Report collects the result of every scenario.
type Report struct {
	Even [1]int
	Top  maybe.Maybe[int]
	Flat []int
}

// Nested is the input of TraverseNested.
var Nested = []any{1, []any{2, 3}, 4, []any{5, []any{6, 7}}, 8}

// EvenTuple keeps the even values of 1, 2, 3 in a one-slot array.
func EvenTuple() ([1]int, error) {
	evens := pipette.Of(1, 2, 3).
		Then(stage.Where[int]().Bind(func(x int) bool { return x%2 == 0 }))

	return pipette.Finish(evens, stage.Into[int, [1]int]().Bind(fill1))
}

func fill1(seq iter.Seq[int]) [1]int {
	var out [1]int
	i := 0
	for v := range seq {
		if i == len(out) {
			break
		}
		out[i] = v
		i++
	}
	return out
}

// TopActiveValue returns the greatest value among the active items, after
// ranking the distinct active values and keeping the best limit of them.
func TopActiveValue(items []dataset.Item, limit int) (maybe.Maybe[int], error) {
	active := pipette.From(slices.Values(items)).
		Then(stage.Where[dataset.Item]().Bind(func(it dataset.Item) bool { return it.Active }))

	ranked := pipette.Via(active, stage.Select[dataset.Item, int]().Bind(func(it dataset.Item) int { return it.Value })).
		Then(stage.Distinct[int]()).
		Then(stage.SortByDesc[int, int]().Bind(func(v int) int { return v })).
		Then(stage.Take[int]().Bind(limit))

	top := pipette.Then(
		stage.Collect[int](),
		pipette.Func("first", func(vals []int) maybe.Maybe[int] {
			return pipette.First(slices.Values(vals))
		}),
	)
	return pipette.Finish(ranked, top)
}

// TraverseNested flattens Nested into its integers, depth first.
func TraverseNested() ([]int, error) {
	flat := pipette.Via(pipette.Of(Nested...), stage.Traverse())
	return pipette.Finish(flat, pipette.Then(stage.OfType[int](), stage.Collect[int]()))
}

// Run executes every scenario over items, logging each result.
func Run(log zerolog.Logger, items []dataset.Item, limit int) (Report, error) {
	var (
		r   Report
		err error
	)

	if r.Even, err = EvenTuple(); err != nil {
		return r, err
	}
	log.Debug().Ints("even", r.Even[:]).Msg("even tuple")

	if r.Top, err = TopActiveValue(items, limit); err != nil {
		return r, err
	}
	ev := log.Debug().Int("items", len(items)).Int("limit", limit)
	if v, ok := r.Top.Get(); ok {
		ev = ev.Int("top", v)
	}
	ev.Msg("top active value")

	if r.Flat, err = TraverseNested(); err != nil {
		return r, err
	}
	log.Debug().Ints("flat", r.Flat).Msg("traverse")

	return r, nil
}
