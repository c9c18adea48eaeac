package ecs

import "context"

// Kind is the stable tag identifying a component type. It is used as the key for
// components on an entity, in the ComponentRegistry and in configuration documents.
type Kind string

// Component is a unit of data and behavior attached to at most one entity.
//
// Concrete components embed ComponentBase, which carries the back-reference to the
// owning entity and satisfies the unexported part of this interface.
type Component interface {
	// Kind returns the tag of the concrete component type.
	Kind() Kind

	// Entity returns the entity this component is attached to, or nil.
	Entity() *Entity

	// Deserialize merges the fields present in data into the component. Unknown keys
	// are ignored. It may block to resolve referenced resources.
	Deserialize(ctx context.Context, data Data) error

	// Serialize returns a snapshot of the component's data fields.
	Serialize() Data

	// Clone returns a detached copy that shares no mutable storage with the receiver.
	Clone() Component

	base() *ComponentBase
}

// ComponentBase holds the non-owning back-reference from a component to its entity.
// The zero value is a detached component.
type ComponentBase struct {
	entity *Entity
}

// Entity returns the owning entity, or nil when detached.
func (b *ComponentBase) Entity() *Entity {
	return b.entity
}

func (b *ComponentBase) base() *ComponentBase {
	return b
}

// ComponentOf returns the component of the given kind attached to e as a T.
// The second result is false if the entity has no such component or it is not a T.
func ComponentOf[T Component](e *Entity, kind Kind) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}

	c := e.Get(kind)
	if c == nil {
		return zero, false
	}

	typed, ok := c.(T)
	return typed, ok
}
