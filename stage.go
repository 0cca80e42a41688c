package pipette

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Args is the read-only set of arguments bound to a Stage.
//
// Positional arguments keep the order in which they were bound. Named
// arguments are merged, later bindings overriding earlier ones.
type Args struct {
	positional []any
	named      map[string]any
}

// Len returns the number of positional arguments.
func (a Args) Len() int { return len(a.positional) }

// At returns the i-th positional argument, or nil when i is out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.positional) {
		return nil
	}
	return a.positional[i]
}

// Named returns the named argument called name.
func (a Args) Named(name string) (any, bool) {
	v, ok := a.named[name]
	return v, ok
}

// Names returns the bound argument names in sorted order.
func (a Args) Names() []string {
	return slices.Sorted(maps.Keys(a.named))
}

// Expect reports ErrArgumentMismatch unless exactly n positional and no
// named arguments are bound.
func (a Args) Expect(n int) error {
	if len(a.positional) != n {
		return mismatchf("takes %d argument(s), %d given", n, len(a.positional))
	}
	if len(a.named) > 0 {
		return mismatchf("unexpected named argument %q", a.Names()[0])
	}
	return nil
}

func (a Args) with(positional []any, named map[string]any) Args {
	out := Args{
		positional: slices.Concat(a.positional, positional),
		named:      maps.Clone(a.named),
	}
	if len(named) > 0 {
		if out.named == nil {
			out.named = make(map[string]any, len(named))
		}
		maps.Copy(out.named, named)
	}
	return out
}

func (a Args) String() string {
	parts := make([]string, 0, len(a.positional))
	for _, v := range a.positional {
		parts = append(parts, describe(v))
	}
	s := strings.Join(parts, ", ")

	if len(a.named) > 0 {
		kv := make([]string, 0, len(a.named))
		for _, name := range a.Names() {
			kv = append(kv, name+"="+describe(a.named[name]))
		}
		s += "; " + strings.Join(kv, ", ")
	}
	return s
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return reflect.TypeOf(v).String()
	}
	return fmt.Sprintf("%v", v)
}

// Arg returns the i-th positional argument converted to A.
//
// A value whose underlying type matches A (a named func or slice type, for
// instance) is converted. A nil argument is accepted when A is nilable.
func Arg[A any](args Args, i int) (A, error) {
	var zero A
	if i < 0 || i >= len(args.positional) {
		return zero, mismatchf("missing argument %d", i)
	}
	a, err := convert[A](args.positional[i])
	if err != nil {
		return zero, fmt.Errorf("argument %d: %w", i, err)
	}
	return a, nil
}

// NamedArg returns the named argument converted to A. The boolean reports
// whether the argument was bound at all.
func NamedArg[A any](args Args, name string) (A, bool, error) {
	var zero A
	v, ok := args.named[name]
	if !ok {
		return zero, false, nil
	}
	a, err := convert[A](v)
	if err != nil {
		return zero, true, fmt.Errorf("argument %q: %w", name, err)
	}
	return a, true, nil
}

func convert[A any](v any) (A, error) {
	if a, ok := v.(A); ok {
		return a, nil
	}

	var zero A
	want := reflect.TypeFor[A]()
	if v == nil {
		switch want.Kind() {
		case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
			return zero, nil
		}
		return zero, mismatchf("nil is not a %s", want)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == want.Kind() && rv.Type().ConvertibleTo(want) {
		return rv.Convert(want).Interface().(A), nil
	}
	return zero, mismatchf("%s is not a %s", rv.Type(), want)
}

// Stage is a deferred application of a function whose first parameter is
// the value piped into it.
//
// A Stage is constructed once from a function (a template), specialised by
// binding arguments, and executed by Apply. Binding returns a new Stage and
// never mutates the receiver, so a Stage can be shared and reused across
// any number of inputs.
//
// Arity and argument types are only checked by Apply. The zero Stage is not
// usable.
type Stage[In, Out any] struct {
	name string
	fn   func(in In, args Args) (Out, error)
	args Args
}

// New returns a Stage with no bound arguments. fn receives the piped value
// followed by whatever arguments were bound when Apply is called.
//
// New panics if fn is nil.
func New[In, Out any](name string, fn func(in In, args Args) (Out, error)) Stage[In, Out] {
	if fn == nil {
		panic("pipette.New: nil function")
	}
	return Stage[In, Out]{name: name, fn: fn}
}

// Func adapts a function taking only the piped value.
func Func[In, Out any](name string, fn func(In) Out) Stage[In, Out] {
	return New(name, func(in In, args Args) (Out, error) {
		if err := args.Expect(0); err != nil {
			var zero Out
			return zero, err
		}
		return fn(in), nil
	})
}

// Func1 adapts a function taking the piped value and one more argument,
// which must be bound positionally before Apply.
func Func1[In, A, Out any](name string, fn func(In, A) Out) Stage[In, Out] {
	return New(name, func(in In, args Args) (Out, error) {
		var zero Out
		if err := args.Expect(1); err != nil {
			return zero, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		return fn(in, a), nil
	})
}

// Func2 adapts a function taking the piped value and two more arguments.
func Func2[In, A, B, Out any](name string, fn func(In, A, B) Out) Stage[In, Out] {
	return New(name, func(in In, args Args) (Out, error) {
		var zero Out
		if err := args.Expect(2); err != nil {
			return zero, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		b, err := Arg[B](args, 1)
		if err != nil {
			return zero, err
		}
		return fn(in, a, b), nil
	})
}

// Bind returns a copy of s with args appended to its positional arguments.
func (s Stage[In, Out]) Bind(args ...any) Stage[In, Out] {
	s.args = s.args.with(args, nil)
	return s
}

// BindNamed returns a copy of s with the named argument set, replacing any
// earlier binding of the same name.
func (s Stage[In, Out]) BindNamed(name string, v any) Stage[In, Out] {
	s.args = s.args.with(nil, map[string]any{name: v})
	return s
}

// BindMap is BindNamed for several arguments at once.
func (s Stage[In, Out]) BindMap(named map[string]any) Stage[In, Out] {
	s.args = s.args.with(nil, named)
	return s
}

// Args returns the arguments bound so far.
func (s Stage[In, Out]) Args() Args { return s.args }

// Name returns the diagnostic name given at construction.
func (s Stage[In, Out]) Name() string { return s.name }

func (s Stage[In, Out]) String() string {
	return fmt.Sprintf("piped::<%s>(%s)", s.name, s.args)
}

// Apply runs the underlying function with in followed by the bound
// arguments. Failures are reported as a StageError.
func (s Stage[In, Out]) Apply(in In) (Out, error) {
	out, err := s.fn(in, s.args)
	if err != nil {
		var se StageError
		if errors.As(err, &se) {
			return out, err
		}
		return out, StageError{Stage: s.name, Reason: err}
	}
	return out, nil
}

// MustApply is like Apply but panics on error.
func (s Stage[In, Out]) MustApply(in In) Out {
	out, err := s.Apply(in)
	if err != nil {
		panic(err)
	}
	return out
}

// Apply pipes in through s.
func Apply[In, Out any](in In, s Stage[In, Out]) (Out, error) {
	return s.Apply(in)
}

// Then composes two stages into one: the output of first is piped into
// next. The composed Stage accepts no arguments of its own.
func Then[A, B, C any](first Stage[A, B], next Stage[B, C]) Stage[A, C] {
	return New(first.name+" | "+next.name, func(in A, args Args) (C, error) {
		var zero C
		if err := args.Expect(0); err != nil {
			return zero, err
		}
		mid, err := first.Apply(in)
		if err != nil {
			return zero, err
		}
		return next.Apply(mid)
	})
}

// Method is a Stage template for a function that also needs an owner,
// supplied later through On. It is the explicit form of a pipeable method:
//
//	scale := pipette.NewMethod("scale", func(c *Calibration, seq iter.Seq[float64], _ pipette.Args) (iter.Seq[float64], error) {
//		return pipette.Select(seq, c.Apply), nil
//	})
//	out, err := pipette.Apply(samples, scale.On(cal))
type Method[O, In, Out any] struct {
	name string
	fn   func(owner O, in In, args Args) (Out, error)
	args Args
}

// NewMethod panics if fn is nil.
func NewMethod[O, In, Out any](name string, fn func(owner O, in In, args Args) (Out, error)) Method[O, In, Out] {
	if fn == nil {
		panic("pipette.NewMethod: nil function")
	}
	return Method[O, In, Out]{name: name, fn: fn}
}

func (m Method[O, In, Out]) Bind(args ...any) Method[O, In, Out] {
	m.args = m.args.with(args, nil)
	return m
}

func (m Method[O, In, Out]) BindNamed(name string, v any) Method[O, In, Out] {
	m.args = m.args.with(nil, map[string]any{name: v})
	return m
}

// On binds the method to owner, returning a Stage that keeps the arguments
// bound so far.
func (m Method[O, In, Out]) On(owner O) Stage[In, Out] {
	fn := m.fn
	return Stage[In, Out]{
		name: m.name,
		fn: func(in In, args Args) (Out, error) {
			return fn(owner, in, args)
		},
		args: m.args,
	}
}
