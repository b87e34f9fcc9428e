package ecs

import "iter"

// Removable is implemented by all component stores so the World can strip an
// entity from every store when a deletion is applied.
type Removable interface {
	Remove(e Entity) bool
	Name() string
}

// Store is a sparse-set component table keyed by entity slot. Dense arrays keep
// iteration cheap and deterministic; removal swaps the last element into the hole.
//
// Pointers returned by Get and All are valid until the next Insert or Remove on
// the same store.
type Store[T any] struct {
	name     string
	sparse   []int32 // slot index -> dense position, -1 when absent
	entities []Entity
	data     []T
}

// NewStore creates an empty store. Most callers want Register instead.
func NewStore[T any](name string) *Store[T] {
	return &Store[T]{
		name:     name,
		sparse:   make([]int32, 0, 64),
		entities: make([]Entity, 0, 64),
		data:     make([]T, 0, 64),
	}
}

// Name returns the component name used in diagnostics.
func (s *Store[T]) Name() string { return s.name }

func (s *Store[T]) pos(e Entity) int {
	idx := int(e.Index())
	if idx >= len(s.sparse) {
		return -1
	}
	p := int(s.sparse[idx])
	if p < 0 || s.entities[p] != e {
		return -1
	}
	return p
}

// Insert attaches v to e, overwriting any existing value.
func (s *Store[T]) Insert(e Entity, v T) {
	if p := s.pos(e); p >= 0 {
		s.data[p] = v
		return
	}
	idx := int(e.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, -1)
	}
	// A stale handle from a recycled slot may still sit in the dense arrays.
	if old := s.sparse[idx]; old >= 0 {
		s.removeAt(int(old))
	}
	s.sparse[idx] = int32(len(s.entities))
	s.entities = append(s.entities, e)
	s.data = append(s.data, v)
}

// Get returns the component for e, if present.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	p := s.pos(e)
	if p < 0 {
		return nil, false
	}
	return &s.data[p], true
}

// Has reports whether e holds this component.
func (s *Store[T]) Has(e Entity) bool {
	return s.pos(e) >= 0
}

// Remove detaches the component from e and reports whether it was present.
func (s *Store[T]) Remove(e Entity) bool {
	p := s.pos(e)
	if p < 0 {
		return false
	}
	s.removeAt(p)
	return true
}

func (s *Store[T]) removeAt(p int) {
	last := len(s.entities) - 1
	removed := s.entities[p]
	if p != last {
		moved := s.entities[last]
		s.entities[p] = moved
		s.data[p] = s.data[last]
		s.sparse[moved.Index()] = int32(p)
	}
	var zero T
	s.data[last] = zero
	s.entities = s.entities[:last]
	s.data = s.data[:last]
	s.sparse[removed.Index()] = -1
}

// Len returns the number of entities holding this component.
func (s *Store[T]) Len() int { return len(s.entities) }

// Clear removes the component from every entity. Intent systems call this
// after consuming their requests.
func (s *Store[T]) Clear() {
	for _, e := range s.entities {
		s.sparse[e.Index()] = -1
	}
	clear(s.data)
	s.entities = s.entities[:0]
	s.data = s.data[:0]
}

// Entities returns a copy of the entity list in storage order.
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// First returns the first entity in storage order.
func (s *Store[T]) First() (Entity, *T, bool) {
	if len(s.entities) == 0 {
		return Nil, nil, false
	}
	return s.entities[0], &s.data[0], true
}

// All yields every (entity, component) pair. It iterates over a snapshot of the
// entity list, so the loop body may remove entries from this store.
func (s *Store[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for _, e := range s.Entities() {
			v, ok := s.Get(e)
			if !ok {
				continue
			}
			if !yield(e, v) {
				return
			}
		}
	}
}
