package domain

// Optional holds a value that may be absent.
// The zero value is None.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool {
	return o.present
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// NonEmpty returns Some(s) for a non-empty string and None otherwise.
func NonEmpty(s string) Optional[string] {
	if s == "" {
		return None[string]()
	}
	return Some(s)
}
