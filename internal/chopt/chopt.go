// Package chopt provides the generic functional-option plumbing shared by
// package transport (Dial options) and package session (Session options).
//
// The shape is adapted directly from arloliu/mebo's internal/options
// package: a generic Option[T] interface backed by a function value, plus
// Apply to fold a slice of options onto a target. Kept as a separate
// internal package rather than inlined into transport/session so both can
// share the exact same generic machinery without import cycles.
package chopt

// Option configures a target of type T. It is implemented by Func[T].
type Option[T any] interface {
	apply(T) error
}

// Func wraps a plain function as an Option[T].
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an Option[T] from a function that can fail.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an Option[T] from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
