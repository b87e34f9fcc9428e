package ecs

import "iter"

// Row2 is one result of Join2.
type Row2[A, B any] struct {
	Entity Entity
	A      *A
	B      *B
}

// Row3 is one result of Join3.
type Row3[A, B, C any] struct {
	Entity Entity
	A      *A
	B      *B
	C      *C
}

// Join2 lazily yields entities holding both A and B. Order follows the smaller
// store and carries no meaning.
func Join2[A, B any](sa *Store[A], sb *Store[B]) iter.Seq[Row2[A, B]] {
	return func(yield func(Row2[A, B]) bool) {
		var driver []Entity
		if sa.Len() <= sb.Len() {
			driver = sa.Entities()
		} else {
			driver = sb.Entities()
		}
		for _, e := range driver {
			a, ok := sa.Get(e)
			if !ok {
				continue
			}
			b, ok := sb.Get(e)
			if !ok {
				continue
			}
			if !yield(Row2[A, B]{Entity: e, A: a, B: b}) {
				return
			}
		}
	}
}

// Join3 lazily yields entities holding A, B and C.
func Join3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C]) iter.Seq[Row3[A, B, C]] {
	return func(yield func(Row3[A, B, C]) bool) {
		driver := sa.Entities()
		if sb.Len() < len(driver) {
			driver = sb.Entities()
		}
		if sc.Len() < len(driver) {
			driver = sc.Entities()
		}
		for _, e := range driver {
			a, ok := sa.Get(e)
			if !ok {
				continue
			}
			b, ok := sb.Get(e)
			if !ok {
				continue
			}
			c, ok := sc.Get(e)
			if !ok {
				continue
			}
			if !yield(Row3[A, B, C]{Entity: e, A: a, B: b, C: c}) {
				return
			}
		}
	}
}

// Each2 calls fn for every entity that has both A and B.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(Entity, *A, *B)) {
	for r := range Join2(sa, sb) {
		fn(r.Entity, r.A, r.B)
	}
}

// Each3 calls fn for every entity that has A, B and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(Entity, *A, *B, *C)) {
	for r := range Join3(sa, sb, sc) {
		fn(r.Entity, r.A, r.B, r.C)
	}
}
