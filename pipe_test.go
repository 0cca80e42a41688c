package pipette_test

import (
	"iter"
	"testing"

	"github.com/KasperOmsK/pipette"
	"github.com/KasperOmsK/pipette/maybe"
	"github.com/KasperOmsK/pipette/stage"

	"github.com/stretchr/testify/require"
)

func TestFrom(t *testing.T) {
	pipe := pipette.From(seqOf(1, 2, 3))

	var out []int
	for v := range pipe.Values() {
		out = append(out, v)
	}

	require.Equal(t, []int{1, 2, 3}, out)
	require.NoError(t, pipe.Err())
}

func TestFrom_NilSeqIsEmpty(t *testing.T) {
	vals, err := pipette.From[int](nil).Collect()

	require.NoError(t, err)
	require.Empty(t, vals)
}

func TestTap_RunsInOrder(t *testing.T) {
	// Tap calls tap functions in the order they are declared
	counter := 0
	pipe := pipette.Of(1).
		Tap(func(i int) {
			counter++
		}).
		Tap(func(i int) {
			require.NotEqual(t, 0, counter)
		})

	_, err := pipe.Collect()
	require.NoError(t, err)
	require.Equal(t, 1, counter)
}

func TestTap_NoFunc(t *testing.T) {
	pipe := pipette.Of(1)

	require.Panics(t, func() {
		pipe.Tap(nil)
	})
}

func TestPipe_ThenViaFinish(t *testing.T) {
	words := pipette.Of("go", "is", "fun", "go").
		Then(stage.Distinct[string]())

	lengths := pipette.Via(words, stage.Select[string, int]().Bind(func(s string) int { return len(s) }))

	total, err := pipette.Finish(lengths, stage.Reduce[int]().Bind(func(a, b int) int { return a + b }))

	require.NoError(t, err)
	require.Equal(t, 7, total)
}

func TestPipe_ErrorSticks(t *testing.T) {
	applied := 0
	spy := pipette.New("spy", func(seq iter.Seq[int], _ pipette.Args) (iter.Seq[int], error) {
		applied++
		return seq, nil
	})

	broken := pipette.Of(1, 2, 3).
		Then(stage.Take[int]().Bind("ten")).
		Then(spy)

	require.ErrorIs(t, broken.Err(), pipette.ErrArgumentMismatch)
	require.Zero(t, applied)

	vals, err := broken.Results()
	require.Error(t, err)
	require.Empty(t, collect(vals))

	collected, err := broken.Collect()
	require.Error(t, err)
	require.Nil(t, collected)

	mapped := pipette.Via(broken, stage.Select[int, string]().Bind(func(int) string { return "" }))
	require.ErrorIs(t, mapped.Err(), pipette.ErrArgumentMismatch)

	_, err = pipette.Finish(mapped, stage.Count[string]())
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)

	require.NotPanics(t, func() { broken.Tap(func(int) {}) })
}

func TestPipe_TerminalStageError(t *testing.T) {
	_, err := pipette.Finish(pipette.Of[int](), stage.Reduce[int]().Bind(func(a, b int) int { return a + b }))

	require.ErrorIs(t, err, pipette.ErrEmptySequence)
}

func TestPipe_EvenIntoFixedContainer(t *testing.T) {
	evens := pipette.Of(1, 2, 3).
		Then(stage.Where[int]().Bind(func(x int) bool { return x%2 == 0 }))

	tuple, err := pipette.Finish(evens, stage.Into[int, [1]int]().Bind(func(seq iter.Seq[int]) [1]int {
		var out [1]int
		i := 0
		for v := range seq {
			out[i] = v
			i++
		}
		return out
	}))

	require.NoError(t, err)
	require.Equal(t, [1]int{2}, tuple)
}

func TestPipe_FirstOfEmpty(t *testing.T) {
	first, err := pipette.Finish(pipette.Of[string](), stage.First[string]())

	require.NoError(t, err)
	require.Equal(t, maybe.None[string](), first)
}
