package ecs

import (
	"log/slog"
	"slices"

	"github.com/rotisserie/eris"
)

// ComponentFactory returns a fresh, detached component.
type ComponentFactory func() Component

// SystemFactory returns a fresh, uninitialized system.
type SystemFactory func() System

// ComponentRegistry maps component kinds to factories. It is populated once at startup
// and passed to every World that needs to build components from configuration.
// Multiple registries can coexist, so tests can use isolated ones.
type ComponentRegistry struct {
	factories map[Kind]ComponentFactory
	logger    *slog.Logger
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[Kind]ComponentFactory),
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger used for registration diagnostics.
func (r *ComponentRegistry) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// Register associates kind with factory. A later registration for the same kind wins
// and a warning is logged.
func (r *ComponentRegistry) Register(kind Kind, factory ComponentFactory) {
	if _, exists := r.factories[kind]; exists {
		r.logger.Warn("Component kind registered twice, overwriting",
			slog.String("kind", string(kind)))
	}

	r.factories[kind] = factory
}

// Resolve returns the factory for kind.
func (r *ComponentRegistry) Resolve(kind Kind) (ComponentFactory, bool) {
	factory, ok := r.factories[kind]
	return factory, ok
}

// New instantiates a component of the given kind.
func (r *ComponentRegistry) New(kind Kind) (Component, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownComponent, "kind %q", kind)
	}

	return factory(), nil
}

// Kinds returns all registered kinds, sorted.
func (r *ComponentRegistry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)
	return kinds
}

// RegisterComponent registers a factory that allocates a zero T for the given kind.
func RegisterComponent[T any, PT interface {
	*T
	Component
}](r *ComponentRegistry, kind Kind) {
	r.Register(kind, func() Component {
		return PT(new(T))
	})
}

// SystemRegistry maps system type tags to factories.
type SystemRegistry struct {
	factories map[string]SystemFactory
	logger    *slog.Logger
}

// NewSystemRegistry creates an empty system registry.
func NewSystemRegistry() *SystemRegistry {
	return &SystemRegistry{
		factories: make(map[string]SystemFactory),
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger used for registration diagnostics.
func (r *SystemRegistry) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// Register associates the type tag with factory. A later registration for the same tag
// wins and a warning is logged.
func (r *SystemRegistry) Register(systemType string, factory SystemFactory) {
	if _, exists := r.factories[systemType]; exists {
		r.logger.Warn("System type registered twice, overwriting",
			slog.String("type", systemType))
	}

	r.factories[systemType] = factory
}

// Resolve returns the factory for the type tag.
func (r *SystemRegistry) Resolve(systemType string) (SystemFactory, bool) {
	factory, ok := r.factories[systemType]
	return factory, ok
}

// New instantiates a system of the given type.
func (r *SystemRegistry) New(systemType string) (System, error) {
	factory, ok := r.factories[systemType]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownSystem, "type %q", systemType)
	}

	return factory(), nil
}

// Types returns all registered type tags, sorted.
func (r *SystemRegistry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for systemType := range r.factories {
		types = append(types, systemType)
	}

	slices.Sort(types)
	return types
}

// RegisterSystem registers a factory that allocates a zero T for the given type tag.
func RegisterSystem[T any, PT interface {
	*T
	System
}](r *SystemRegistry, systemType string) {
	r.Register(systemType, func() System {
		return PT(new(T))
	})
}
