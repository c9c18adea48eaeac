package ecs

import "slices"

// EntityId identifies an entity within a World. Ids are assigned monotonically
// starting at 0 and are never reused while the World is alive.
type EntityId uint64

// Entity groups at most one component per Kind.
// Entities are created by World.CreateEntity and destroyed by World.RemoveEntity.
type Entity struct {
	id         EntityId
	components map[Kind]Component
	kinds      []Kind
}

func newEntity(id EntityId) *Entity {
	return &Entity{
		id:         id,
		components: make(map[Kind]Component),
	}
}

// Id returns the identity assigned by the owning World.
func (e *Entity) Id() EntityId {
	return e.id
}

// Add attaches c, replacing any component of the same kind. The replaced component
// is detached. If c is attached to another entity it is moved.
func (e *Entity) Add(c Component) {
	if c == nil {
		return
	}

	b := c.base()
	if b.entity != nil && b.entity != e {
		b.entity.Remove(c)
	}

	kind := c.Kind()
	if existing, ok := e.components[kind]; ok {
		if existing == c {
			return
		}
		existing.base().entity = nil
	} else {
		e.kinds = append(e.kinds, kind)
	}

	e.components[kind] = c
	b.entity = e
}

// Remove detaches c if it is the component attached under its kind. Otherwise it is a no-op.
func (e *Entity) Remove(c Component) {
	if c == nil {
		return
	}

	kind := c.Kind()
	if e.components[kind] != c {
		return
	}

	e.RemoveKind(kind)
}

// RemoveKind detaches and returns the component of the given kind, or nil.
func (e *Entity) RemoveKind(kind Kind) Component {
	c, ok := e.components[kind]
	if !ok {
		return nil
	}

	delete(e.components, kind)
	if idx := slices.Index(e.kinds, kind); idx >= 0 {
		e.kinds = slices.Delete(e.kinds, idx, idx+1)
	}

	c.base().entity = nil
	return c
}

// Get returns the component of the given kind, or nil.
func (e *Entity) Get(kind Kind) Component {
	return e.components[kind]
}

// Has reports whether a component of the given kind is attached.
func (e *Entity) Has(kind Kind) bool {
	_, ok := e.components[kind]
	return ok
}

// Components returns a snapshot of the attached components in insertion order.
// The order is informational only.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.kinds))
	for _, kind := range e.kinds {
		out = append(out, e.components[kind])
	}
	return out
}

// Kinds returns a snapshot of the attached component kinds in insertion order.
func (e *Entity) Kinds() []Kind {
	return slices.Clone(e.kinds)
}

// detachAll drops every component and clears its back-reference.
func (e *Entity) detachAll() {
	for _, c := range e.components {
		c.base().entity = nil
	}
	clear(e.components)
	e.kinds = e.kinds[:0]
}
