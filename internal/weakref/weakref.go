// Package weakref provides non-owning references with an explicit liveness
// check.
//
// An Anchor is held by the owner of a value. Refs handed out by the anchor
// never extend the value's lifetime: once the owner calls Release, every Ref
// reports empty, exactly as a zero Ref does. There is no notification; readers
// find out the next time they call Get.
package weakref

// Anchor owns a value on behalf of its creator and vends weak Refs to it.
type Anchor[T any] struct {
	value    T
	released bool
}

// NewAnchor creates an anchor for v.
func NewAnchor[T any](v T) *Anchor[T] {
	return &Anchor[T]{value: v}
}

// Ref returns a weak reference to the anchored value.
func (a *Anchor[T]) Ref() Ref[T] {
	return Ref[T]{anchor: a}
}

// Release marks the value destroyed. Subsequent Get calls on any Ref
// obtained from this anchor return the zero value and false. Release is
// idempotent.
func (a *Anchor[T]) Release() {
	if a.released {
		return
	}
	var zero T
	a.value = zero
	a.released = true
}

// Alive reports whether Release has not been called yet.
func (a *Anchor[T]) Alive() bool {
	return a != nil && !a.released
}

// Ref is a weak reference. The zero Ref is empty.
type Ref[T any] struct {
	anchor *Anchor[T]
}

// Get returns the referenced value and whether it is still alive.
func (r Ref[T]) Get() (T, bool) {
	if !r.anchor.Alive() {
		var zero T
		return zero, false
	}
	return r.anchor.value, true
}

// Empty reports whether the reference was never set or its referent has been
// released.
func (r Ref[T]) Empty() bool {
	return !r.anchor.Alive()
}
