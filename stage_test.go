package pipette_test

import (
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/KasperOmsK/pipette"

	"github.com/stretchr/testify/require"
)

func TestStage_ApplyPrependsSequence(t *testing.T) {
	var gotArgs []any
	s := pipette.New("spy", func(in string, args pipette.Args) (string, error) {
		for i := range args.Len() {
			gotArgs = append(gotArgs, args.At(i))
		}
		return in + "!", nil
	})

	out, err := pipette.Apply("hi", s.Bind(1, "two"))

	require.NoError(t, err)
	require.Equal(t, "hi!", out)
	require.Equal(t, []any{1, "two"}, gotArgs)
}

func TestStage_BindIsAdditiveAndPure(t *testing.T) {
	base := pipette.New("args", func(in int, args pipette.Args) (string, error) {
		return args.String(), nil
	})

	one := base.Bind(1)
	two := one.Bind(2)
	other := one.Bind(3)

	require.Equal(t, "", base.MustApply(0))
	require.Equal(t, "1", one.MustApply(0))
	require.Equal(t, "1, 2", two.MustApply(0))
	require.Equal(t, "1, 3", other.MustApply(0))
}

func TestStage_NamedArgumentsMerge(t *testing.T) {
	s := pipette.New("named", func(in int, args pipette.Args) (string, error) {
		return args.String(), nil
	})

	a := s.BindNamed("x", 1).BindMap(map[string]any{"y": 2, "z": 3})
	b := a.BindNamed("x", 10)

	require.Equal(t, "; x=1, y=2, z=3", a.MustApply(0))
	require.Equal(t, "; x=10, y=2, z=3", b.MustApply(0))
}

func TestStage_IsReusable(t *testing.T) {
	take2 := pipette.Func1("take", pipette.Take[int]).Bind(2)

	first, err := take2.Apply(seqOf(1, 2, 3))
	require.NoError(t, err)
	second, err := take2.Apply(seqOf(7, 8, 9))
	require.NoError(t, err)

	require.Equal(t, []int{1, 2}, collect(first))
	require.Equal(t, []int{7, 8}, collect(second))
}

func TestStage_MismatchSurfacesAtApply(t *testing.T) {
	take := pipette.Func1("take", pipette.Take[int])

	// binding never checks arity
	tooMany := take.Bind(1, 2)
	wrongType := take.Bind("three")

	_, err := tooMany.Apply(seqOf(1))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)

	_, err = take.Apply(seqOf(1))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)

	_, err = wrongType.Apply(seqOf(1))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)

	var se pipette.StageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "take", se.Stage)
	require.Contains(t, err.Error(), "string is not a int")

	_, err = take.BindNamed("n", 1).Apply(seqOf(1))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)
}

func TestStage_ConvertsMatchingUnderlyingTypes(t *testing.T) {
	type predicate func(int) bool
	type count int

	where := pipette.Func1("where", pipette.Where[int])
	take := pipette.Func1("take", pipette.Take[int])

	evens, err := where.Bind(predicate(func(v int) bool { return v%2 == 0 })).Apply(seqOf(1, 2, 3, 4))
	require.NoError(t, err)

	firstEven, err := take.Bind(count(1)).Apply(evens)
	require.NoError(t, err)
	require.Equal(t, []int{2}, collect(firstEven))

	_, err = take.Bind(int64(1)).Apply(evens)
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)
}

func TestStage_NilArgument(t *testing.T) {
	s := pipette.Func1("ptr", func(in int, p *int) bool { return p == nil })

	ok, err := s.Bind(nil).Apply(0)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = pipette.Func1("take", pipette.Take[int]).Bind(nil).Apply(seqOf(1))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)
}

func TestStage_FuncAdapters(t *testing.T) {
	count := pipette.Func("count", pipette.Count[int])
	n, err := count.Apply(seqOf(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = count.Bind(1).Apply(seqOf(1))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)

	fold := pipette.Func2("fold", pipette.ReduceFrom[int, int])
	sum, err := fold.Bind(10, func(acc, v int) int { return acc + v }).Apply(seqOf(1, 2))
	require.NoError(t, err)
	require.Equal(t, 13, sum)

	_, err = fold.Bind(10).Apply(seqOf(1, 2))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)
}

func TestStage_PropagatesFunctionErrors(t *testing.T) {
	boom := errors.New("boom")
	s := pipette.New("fail", func(in int, _ pipette.Args) (int, error) {
		return 0, boom
	})

	_, err := s.Apply(1)

	require.ErrorIs(t, err, boom)
	require.EqualError(t, err, "stage fail: boom")
}

func TestStage_String(t *testing.T) {
	s := pipette.Func1("take", pipette.Take[int]).Bind(10).BindNamed("why", "demo")

	require.Equal(t, "take", s.Name())
	require.Equal(t, "piped::<take>(10; why=demo)", s.String())
	require.Equal(t, "piped::<where>(func(int) bool)",
		pipette.Func1("where", pipette.Where[int]).Bind(func(int) bool { return true }).String())
}

func TestThen_ComposesStages(t *testing.T) {
	evens := pipette.Func1("where", pipette.Where[int]).Bind(func(v int) bool { return v%2 == 0 })
	count := pipette.Func("count", pipette.Count[int])

	countEvens := pipette.Then(evens, count)

	n, err := countEvens.Apply(seqOf(1, 2, 3, 4))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "where | count", countEvens.Name())

	_, err = countEvens.Bind(1).Apply(seqOf(1))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)
}

func TestThen_ReportsInnerStage(t *testing.T) {
	broken := pipette.Then(
		pipette.Func1("take", pipette.Take[int]),
		pipette.Func("count", pipette.Count[int]),
	)

	_, err := broken.Apply(seqOf(1))

	var se pipette.StageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "take", se.Stage)
}

type prefixer struct {
	prefix string
}

func TestMethod_BindsOwner(t *testing.T) {
	label := pipette.NewMethod("label", func(p *prefixer, seq iter.Seq[string], args pipette.Args) (iter.Seq[string], error) {
		sep, err := pipette.Arg[string](args, 0)
		if err != nil {
			return nil, err
		}
		return pipette.Select(seq, func(s string) string { return p.prefix + sep + s }), nil
	})

	template := label.Bind(":")
	a := template.On(&prefixer{prefix: "a"})
	b := template.On(&prefixer{prefix: "b"})

	outA, err := a.Apply(seqOf("x", "y"))
	require.NoError(t, err)
	outB, err := b.Apply(seqOf("x"))
	require.NoError(t, err)

	require.Equal(t, []string{"a:x", "a:y"}, collect(outA))
	require.Equal(t, []string{"b:x"}, collect(outB))

	_, err = label.On(&prefixer{}).Apply(seqOf("x"))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)

	extended := label.On(&prefixer{prefix: "c"}).Bind("-")
	outC, err := extended.Apply(seqOf("x"))
	require.NoError(t, err)
	require.Equal(t, []string{"c-x"}, collect(outC))
}

func TestMethod_NamedArgs(t *testing.T) {
	join := pipette.NewMethod("join", func(sep string, seq iter.Seq[string], args pipette.Args) (string, error) {
		suffix, _, err := pipette.NamedArg[string](args, "suffix")
		if err != nil {
			return "", err
		}
		parts := collect(seq)
		return strings.Join(parts, sep) + suffix, nil
	})

	out, err := join.BindNamed("suffix", ".").On(", ").Apply(seqOf("a", "b"))
	require.NoError(t, err)
	require.Equal(t, "a, b.", out)

	_, err = join.BindNamed("suffix", 1).On(", ").Apply(seqOf("a"))
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)
}

func TestNew_PanicsOnNil(t *testing.T) {
	require.Panics(t, func() { pipette.New[int, int]("nil", nil) })
	require.Panics(t, func() { pipette.NewMethod[int, int, int]("nil", nil) })
}

func TestArgs(t *testing.T) {
	var captured pipette.Args
	s := pipette.New("capture", func(in int, args pipette.Args) (int, error) {
		captured = args
		return in, nil
	})

	s.Bind("a", 2).BindNamed("b", true).BindNamed("a", 1).MustApply(0)

	require.Equal(t, 2, captured.Len())
	require.Equal(t, "a", captured.At(0))
	require.Nil(t, captured.At(5))
	require.Equal(t, []string{"a", "b"}, captured.Names())

	v, ok := captured.Named("b")
	require.True(t, ok)
	require.Equal(t, true, v)

	_, err := pipette.Arg[int](captured, 3)
	require.ErrorIs(t, err, pipette.ErrArgumentMismatch)

	n, err := pipette.Arg[int](captured, 1)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, present, err := pipette.NamedArg[string](captured, "missing")
	require.NoError(t, err)
	require.False(t, present)

	// named arguments are bound, so no positional-only shape matches
	require.ErrorIs(t, captured.Expect(2), pipette.ErrArgumentMismatch)
}
