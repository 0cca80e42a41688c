package pipette

import (
	"iter"

	"github.com/KasperOmsK/pipette/internal/iterx"
)

// Nested is implemented by values that Flatten and Traverse expand in place.
type Nested interface {
	Elements() iter.Seq[any]
}

// members is the content of a nested value: either positional (slices and
// arrays) or an arbitrary sequence.
type members struct {
	n   int
	at  func(int) any
	seq iter.Seq[any]
}

// nestedMembers reports whether v is a nested sequence. Text (string,
// []byte, byte arrays) is never nested; neither are maps and channels.
func nestedMembers(v any) (members, bool) {
	switch x := v.(type) {
	case nil, string, []byte:
		return members{}, false
	case Nested:
		return members{seq: x.Elements()}, true
	case iter.Seq[any]:
		return members{seq: x}, true
	case func(func(any) bool):
		return members{seq: x}, true
	case []any:
		return members{n: len(x), at: func(i int) any { return x[i] }}, true
	}
	if x, ok := iterx.Reflect(v); ok {
		return members{n: x.Len(), at: x.At}, true
	}
	if seq, ok := iterx.ReflectSeq(v); ok {
		return members{seq: seq}, true
	}
	return members{}, false
}

func (m members) all() iter.Seq[any] {
	if m.seq != nil {
		return m.seq
	}
	return func(yield func(any) bool) {
		for i := range m.n {
			if !yield(m.at(i)) {
				return
			}
		}
	}
}

type cursor struct {
	next func() (any, bool)
	stop func()
}

func (m members) cursor() cursor {
	if m.seq != nil {
		next, stop := iter.Pull(m.seq)
		return cursor{next: next, stop: stop}
	}
	i := 0
	return cursor{
		next: func() (any, bool) {
			if i >= m.n {
				return nil, false
			}
			v := m.at(i)
			i++
			return v, true
		},
		stop: func() {},
	}
}

// Flatten expands nested sequences by one level: members of a nested value
// are yielded in its place, any other value is yielded unchanged.
//
// A value is nested when it implements Nested, is an iter.Seq of any
// element type, or is a slice or array of anything but bytes.
func Flatten(seq iter.Seq[any]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for in := range seq {
			m, ok := nestedMembers(in)
			if !ok {
				if !yield(in) {
					return
				}
				continue
			}
			for v := range m.all() {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Traverse flattens nested sequences at any depth into a single sequence of
// scalar values, in depth-first order. Nesting is tracked on an explicit
// stack, so depth does not grow the call stack and nothing is collected
// ahead of the consumer.
//
// Traverse never terminates on cyclic structures.
func Traverse(seq iter.Seq[any]) iter.Seq[any] {
	return func(yield func(any) bool) {
		stack := []cursor{members{seq: seq}.cursor()}
		defer func() {
			for _, c := range stack {
				c.stop()
			}
		}()

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			v, ok := top.next()
			if !ok {
				top.stop()
				stack = stack[:len(stack)-1]
				continue
			}
			if m, nested := nestedMembers(v); nested {
				stack = append(stack, m.cursor())
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// OfType yields the values of seq whose dynamic type is T, dropping the rest.
func OfType[T any](seq iter.Seq[any]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for in := range seq {
			if v, ok := in.(T); ok {
				if !yield(v) {
					return
				}
			}
		}
	}
}
