package ast

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// Arena stores nodes of one type; ids are 1-based, 0 means "none".
type Arena[T any] struct {
	items []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capHint)}
}

func (a *Arena[T]) Allocate(value T) uint32 {
	a.items = append(a.items, value)
	return a.Len()
}

// Get returns nil for 0 and for ids past the end.
func (a *Arena[T]) Get(id uint32) *T {
	if id == 0 || uint64(id) > uint64(len(a.items)) {
		return nil
	}
	return &a.items[id-1]
}

// All yields ids with pointers into the arena, in allocation order.
func (a *Arena[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := range a.items {
			if !yield(uint32(i+1), &a.items[i]) {
				return
			}
		}
	}
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Sprintf("ast: arena holds %d items: %v", len(a.items), err))
	}
	return n
}
