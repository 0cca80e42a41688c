// Package maybe provides an optional value type with monadic chaining.
//
// A Maybe[T] is either Some(v) or None. None carries no payload and is the
// zero value, so a declared but unassigned Maybe is None.
//
// Go has no generic methods, so the operations that change the wrapped type
// (Map and Bind) are package-level functions:
//
//	port := maybe.Bind(lookup("PORT"), parsePort)
//	addr := maybe.Map(port, func(p int) string { return fmt.Sprintf(":%d", p) })
//	fmt.Println(addr.GetOrElse(":8080"))
//
// None short-circuits: once a chain produces None, no later function runs.
// None is an ordinary "no value" outcome, not an error.
package maybe

import "fmt"

// Maybe holds either a value (Some) or nothing (None).
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps v.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns the empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPair builds a Maybe from the comma-ok idiom.
func FromPair[T any](v T, ok bool) Maybe[T] {
	if !ok {
		return None[T]()
	}
	return Some(v)
}

// Map returns Some(f(v)) when m is Some(v), and None otherwise.
// f is never called on None.
func Map[T, U any](m Maybe[T], f func(T) U) Maybe[U] {
	if !m.ok {
		return None[U]()
	}
	return Some(f(m.value))
}

// Bind returns f(v) when m is Some(v), and None otherwise.
// f is never called on None.
func Bind[T, U any](m Maybe[T], f func(T) Maybe[U]) Maybe[U] {
	if !m.ok {
		return None[U]()
	}
	return f(m.value)
}

// Equal reports whether a and b hold the same tag and, for Some, equal values.
func Equal[T comparable](a, b Maybe[T]) bool {
	if a.ok != b.ok {
		return false
	}
	return !a.ok || a.value == b.value
}

func (m Maybe[T]) IsSome() bool { return m.ok }

func (m Maybe[T]) IsNone() bool { return !m.ok }

// Get returns the wrapped value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// GetOrElse returns the wrapped value, or def when m is None.
func (m Maybe[T]) GetOrElse(def T) T {
	if !m.ok {
		return def
	}
	return m.value
}

// OrElse returns m when it is Some, and alt otherwise.
func (m Maybe[T]) OrElse(alt Maybe[T]) Maybe[T] {
	if m.ok {
		return m
	}
	return alt
}

// Match calls exactly one of some or none depending on the tag of m.
func (m Maybe[T]) Match(some func(T), none func()) {
	if m.ok {
		some(m.value)
		return
	}
	none()
}

func (m Maybe[T]) String() string {
	if !m.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", m.value)
}
