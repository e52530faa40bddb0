package components

// Binding holds a component value that is either owned by the component
// (uncontrolled) or read from a caller supplied source (controlled). The mode
// is fixed when the binding is built. The zero value is an uncontrolled
// binding holding the zero T.
type Binding[T any] struct {
	source func() T
	value  T
}

// Controlled returns a binding whose value always comes from source. Change
// never alters it; the owner updates its own state from the change callback.
func Controlled[T any](source func() T) Binding[T] {
	return Binding[T]{source: source}
}

// Uncontrolled returns a binding that owns its value, starting at initial.
func Uncontrolled[T any](initial T) Binding[T] {
	return Binding[T]{value: initial}
}

// Value returns the current value.
func (b Binding[T]) Value() T {
	if b.source != nil {
		return b.source()
	}
	return b.value
}

// IsControlled reports whether the value is read from an external source.
func (b Binding[T]) IsControlled() bool {
	return b.source != nil
}

// Change records a user change. Only uncontrolled bindings update; the
// return value reports whether owned state changed.
func (b *Binding[T]) Change(next T) bool {
	if b.source != nil {
		return false
	}
	b.value = next
	return true
}
