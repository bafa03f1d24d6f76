// Package weakref is the Go counterpart of the code lockweak generates: a
// weak reference slot that is only read or written under its own mutex.
//
// A Reference corresponds to one generated backing field
// (private let _x = LockedWeakReference()). Each field owns its lock, so
// accessors of different members never contend.
package weakref

import (
	"sync"
	"weak"
)

// Slot is the weak value a WithLock body sees. It is only valid inside the body.
type Slot struct {
	e entry
}

// entry remembers the T a value was stored with, for the checked downcast in Get.
type entry interface{ live() bool }

type typed[T any] struct{ p weak.Pointer[T] }

func (t typed[T]) live() bool { return t.p.Value() != nil }

// Set stores a weak pointer to v; nil clears the slot.
func Set[T any](s *Slot, v *T) {
	if v == nil {
		s.e = nil
		return
	}
	s.e = typed[T]{p: weak.Make(v)}
}

// Get returns the stored value if it is still alive and was stored as *T.
func Get[T any](s *Slot) *T {
	t, ok := s.e.(typed[T])
	if !ok {
		return nil
	}
	return t.p.Value()
}

// Clear empties the slot.
func (s *Slot) Clear() { s.e = nil }

// Empty is true when nothing is stored or the value has been collected.
func (s *Slot) Empty() bool {
	return s.e == nil || !s.e.live()
}

// Reference guards one weak slot with one mutex. The zero value is empty and
// ready to use. A Reference must not be copied after first use.
type Reference struct {
	mu   sync.Mutex
	slot Slot
}

// New returns an empty Reference.
func New() *Reference { return &Reference{} }

// WithLock runs body with the slot while holding the lock. The lock is
// released on every exit path, including a panic in body.
func WithLock[R any](r *Reference, body func(*Slot) (R, error)) (R, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return body(&r.slot)
}

// Do is WithLock for bodies without a result.
func (r *Reference) Do(body func(*Slot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	body(&r.slot)
}

// Load is the generated getter: `$0 as? T` under the lock.
func Load[T any](r *Reference) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Get[T](&r.slot)
}

// Store is the generated setter: `$0 = newValue` under the lock.
func Store[T any](r *Reference, v *T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	Set(&r.slot, v)
}

// Var is a typed Reference: the member type is fixed, so Load never fails
// the downcast.
type Var[T any] struct {
	ref Reference
}

func (v *Var[T]) Load() *T { return Load[T](&v.ref) }

func (v *Var[T]) Store(val *T) { Store(&v.ref, val) }

// Swap stores val and returns the previous live value.
func (v *Var[T]) Swap(val *T) *T {
	old, _ := WithLock(&v.ref, func(s *Slot) (*T, error) {
		prev := Get[T](s)
		Set(s, val)
		return prev, nil
	})
	return old
}

// CompareAndSwap stores val if the current live value is old.
// A collected value compares equal to nil.
func (v *Var[T]) CompareAndSwap(old, val *T) bool {
	swapped, _ := WithLock(&v.ref, func(s *Slot) (bool, error) {
		if Get[T](s) != old {
			return false, nil
		}
		Set(s, val)
		return true, nil
	})
	return swapped
}
