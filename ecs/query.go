package ecs

import "iter"

// Query iterates the entities that have a component of the given kind, in id order,
// yielding the component as a T. Components of that kind that are not a T are skipped.
//
// The iteration runs over a snapshot, so systems may remove entities while iterating.
func Query[T Component](w *World, kind Kind) iter.Seq2[*Entity, T] {
	return func(yield func(*Entity, T) bool) {
		for _, entity := range w.Entities() {
			component, ok := ComponentOf[T](entity, kind)
			if !ok {
				continue
			}

			if !yield(entity, component) {
				return
			}
		}
	}
}

// With iterates the entities that have a component of every given kind, in id order.
func With(w *World, kinds ...Kind) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
	entities:
		for _, entity := range w.Entities() {
			for _, kind := range kinds {
				if !entity.Has(kind) {
					continue entities
				}
			}

			if !yield(entity) {
				return
			}
		}
	}
}

// Count returns the number of entities that have a component of every given kind.
func Count(w *World, kinds ...Kind) int {
	var count int
	for range With(w, kinds...) {
		count++
	}
	return count
}
