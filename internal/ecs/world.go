package ecs

import (
	"errors"
	"fmt"
)

// ErrDeadEntity is returned when a caller tries to attach data to a handle that
// is no longer alive.
var ErrDeadEntity = errors.New("ecs: entity is not alive")

// World is the top-level container. It owns the entity pool, the registered
// component stores, and the deferred deletion queue flushed by Maintain.
type World struct {
	pool    *pool
	stores  []Removable
	pending []Entity
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		pool:    newPool(),
		stores:  make([]Removable, 0, 32),
		pending: make([]Entity, 0, 64),
	}
}

// Register creates a store for T and registers it so deletions strip it.
func Register[T any](w *World, name string) *Store[T] {
	s := NewStore[T](name)
	w.stores = append(w.stores, s)
	return s
}

// Create allocates a new entity handle.
func (w *World) Create() Entity {
	return w.pool.create()
}

// Alive reports whether e is live and not queued for deletion.
func (w *World) Alive(e Entity) bool {
	return w.pool.isAlive(e)
}

// Delete queues e for removal. The handle stops being alive immediately, but
// its components and slot are kept until Maintain so systems iterating in the
// same pass never observe a half-deleted entity.
func (w *World) Delete(e Entity) {
	if !w.pool.isAlive(e) {
		return
	}
	w.pool.kill(e)
	w.pending = append(w.pending, e)
}

// DeleteAll queues every live entity for removal.
func (w *World) DeleteAll() {
	for _, e := range w.Entities() {
		w.Delete(e)
	}
}

// Pending returns the number of queued deletions.
func (w *World) Pending() int { return len(w.pending) }

// Maintain applies queued deletions: components are removed from every store,
// the slot generation is bumped and the slot becomes reusable. It returns the
// number of entities removed.
func (w *World) Maintain() int {
	n := len(w.pending)
	for _, e := range w.pending {
		for _, s := range w.stores {
			s.Remove(e)
		}
		w.pool.release(e)
	}
	w.pending = w.pending[:0]
	return n
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.pool.generations))
	for idx, gen := range w.pool.generations {
		if w.pool.alive[idx] {
			out = append(out, newEntity(uint32(idx), gen))
		}
	}
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	n := 0
	for _, a := range w.pool.alive {
		if a {
			n++
		}
	}
	return n
}

// Attach inserts v for e after checking that e is still alive.
func Attach[T any](w *World, s *Store[T], e Entity, v T) error {
	if !w.Alive(e) {
		return fmt.Errorf("attach %s to %s: %w", s.Name(), e, ErrDeadEntity)
	}
	s.Insert(e, v)
	return nil
}
