// Package ecs provides the entity/component storage used by the simulation.
package ecs

import "fmt"

// Entity encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. The generation increments when the slot is recycled so
// stale handles never alias a new entity.
type Entity uint64

// Nil is the zero handle. Generations start at 1, so Nil is never alive.
const Nil Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index.
func (e Entity) Index() uint32 { return uint32(e) }

// Generation returns the reuse generation of the slot.
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

// IsNil reports whether e is the zero handle.
func (e Entity) IsNil() bool { return e == Nil }

// String returns "index:generation".
func (e Entity) String() string {
	if e.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", e.Index(), e.Generation())
}

// pool manages slot allocation with generational indices and a free list.
type pool struct {
	generations []uint32
	alive       []bool
	freeList    []uint32
}

func newPool() *pool {
	return &pool{
		generations: make([]uint32, 0, 256),
		alive:       make([]bool, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *pool) create() Entity {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.alive[idx] = true
		return newEntity(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	p.alive = append(p.alive, true)
	return newEntity(idx, 1)
}

// valid reports whether e names the current occupant of its slot, regardless
// of whether a deletion is pending.
func (p *pool) valid(e Entity) bool {
	idx := e.Index()
	return int(idx) < len(p.generations) && p.generations[idx] == e.Generation()
}

func (p *pool) isAlive(e Entity) bool {
	return p.valid(e) && p.alive[e.Index()]
}

func (p *pool) kill(e Entity) {
	if p.valid(e) {
		p.alive[e.Index()] = false
	}
}

// release bumps the slot generation and returns the slot to the free list.
func (p *pool) release(e Entity) {
	if !p.valid(e) {
		return // stale reference
	}
	idx := e.Index()
	p.generations[idx]++
	p.alive[idx] = false
	p.freeList = append(p.freeList, idx)
}
