package iterx

import (
	"iter"
	"reflect"
)

func FromSlice[T any](in []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range in {
			if !yield(item) {
				break
			}
		}
	}
}

func Empty[T any]() iter.Seq[T] {
	return func(yield func(T) bool) {}
}

// Indexed gives positional access to a slice or array of any element type.
type Indexed struct {
	rv reflect.Value
}

// Reflect wraps v when it holds a slice or array. Byte slices and byte
// arrays are treated as scalars and reported as not indexable.
func Reflect(v any) (Indexed, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return Indexed{}, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return Indexed{}, false
	}
	return Indexed{rv: rv}, true
}

func (x Indexed) Len() int { return x.rv.Len() }

func (x Indexed) At(i int) any { return x.rv.Index(i).Interface() }

func (x Indexed) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := range x.Len() {
			if !yield(x.At(i)) {
				return
			}
		}
	}
}

// ReflectSeq wraps v when it is a sequence function of any element type,
// that is a func(func(E) bool) such as iter.Seq[E].
func ReflectSeq(v any) (iter.Seq[any], bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	t := rv.Type()
	if t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return nil, false
	}
	yt := t.In(0)
	if yt.Kind() != reflect.Func || yt.NumIn() != 1 || yt.NumOut() != 1 || yt.Out(0).Kind() != reflect.Bool {
		return nil, false
	}

	return func(yield func(any) bool) {
		fn := reflect.MakeFunc(yt, func(args []reflect.Value) []reflect.Value {
			more := reflect.ValueOf(yield(args[0].Interface()))
			return []reflect.Value{more.Convert(yt.Out(0))}
		})
		rv.Call([]reflect.Value{fn})
	}, true
}
