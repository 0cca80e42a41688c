/*
Package pipette provides composable, lazy transformations over iter.Seq,
expressed as left-to-right chains of reusable stages.

Every combinator (Select, Where, Distinct, SortBy, Chunk, Traverse, Reduce,
and more) is an ordinary package-level function that takes the sequence as
its first argument. Lazy combinators return a new iter.Seq and only pull
from their input when the result is iterated; terminal ones (Into, Reduce,
Partition, GroupBy, First, Last, Count) consume their input and return a
value.

A Stage turns such a function into a deferred application. It is built
once, specialised by binding the remaining arguments, and executed when a
value is piped into it:

	take := pipette.Func1("take", pipette.Take[int]) // template
	firstTen := take.Bind(10)                         // new Stage, take is unchanged
	out, err := pipette.Apply(seq, firstTen)          // take(seq, 10)

Bound arguments are checked when the stage is applied, not when they are
bound; a stage applied with arguments its function cannot accept fails with
an error wrapping ErrArgumentMismatch. Package stage provides a ready-made
template for every combinator.

Pipe chains stages from left to right:

	type Item struct {
		ID     int
		Value  int
		Active bool
	}

	values := pipette.Via(
		pipette.From(slices.Values(items)).
			Then(stage.Where[Item]().Bind(func(it Item) bool { return it.Active })),
		stage.Select[Item, int]().Bind(func(it Item) int { return it.Value }),
	).
		Then(stage.Distinct[int]()).
		Then(stage.SortByDesc[int, int]().Bind(func(v int) int { return v })).
		Then(stage.Take[int]().Bind(10))

	top, err := pipette.Finish(values, stage.First[int]())

Then keeps the element type, Via changes it and Finish ends the chain with
a terminal stage. The first stage error sticks to the Pipe and skips the
stages after it.

Nothing in this package is concurrent: each traversal is a private pull
chain, and a lazy stage pulls no more from its source than its semantics
require. Combinators that must see every value (SortBy, Last, Count, Into,
Reduce, and the other terminals) never return on an infinite sequence;
bound such sequences with Take first.

Optional results (First, Last, the padding of ZipWith) use package maybe.
*/
package pipette
