package ecs

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/rotisserie/eris"
)

// RegisterPrefab stores defs under name. The definitions are stored as given and are
// only read when entities are instantiated from the prefab.
func (w *World) RegisterPrefab(name string, defs ComponentDefs) {
	if _, exists := w.prefabs[name]; exists {
		w.logger.Warn("Prefab registered twice, overwriting",
			slog.String("prefab", name))
	}

	w.prefabs[name] = defs
}

// Prefab returns the definitions registered under name.
func (w *World) Prefab(name string) (ComponentDefs, bool) {
	defs, ok := w.prefabs[name]
	return defs, ok
}

// Prefabs returns the names of all registered prefabs, sorted.
func (w *World) Prefabs() []string {
	return slices.Sorted(maps.Keys(w.prefabs))
}

// Instantiate creates an entity from the named prefab and applies overrides on top of it.
// An empty prefab name creates the entity from overrides alone.
//
// Prefab components are built first. Overrides of a kind the prefab already provided are
// deserialized into that same component, so fields the override does not mention keep
// the prefab's values. Problems with single components are returned and do not stop the
// remaining components from being built.
func (w *World) Instantiate(ctx context.Context, prefab string, overrides ComponentDefs) (*Entity, []error) {
	entity := w.CreateEntity()

	var errs []error

	if prefab != "" {
		defs, ok := w.prefabs[prefab]
		if ok {
			errs = append(errs, w.applyDefs(ctx, entity, defs)...)
		} else {
			errs = append(errs, eris.Wrapf(ErrUnknownPrefab, "prefab %q", prefab))
		}
	}

	errs = append(errs, w.applyDefs(ctx, entity, overrides)...)
	return entity, errs
}

// applyDefs applies component definitions in sorted kind order.
func (w *World) applyDefs(ctx context.Context, entity *Entity, defs ComponentDefs) []error {
	var errs []error

	for _, kind := range slices.Sorted(maps.Keys(defs)) {
		if err := w.applyComponent(ctx, entity, kind, defs[kind]); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// applyComponent merges data into the entity's component of the given kind, creating
// the component through the registry if the entity does not have one yet.
//
// A new component that fails or panics while deserializing is not attached. An existing component
// keeps whatever fields were merged before the failure.
func (w *World) applyComponent(ctx context.Context, entity *Entity, kind Kind, data Data) error {
	if existing := entity.Get(kind); existing != nil {
		if err := deserialize(ctx, existing, data); err != nil {
			return eris.Wrapf(err, "component %q", kind)
		}
		return nil
	}

	component, err := w.components.New(kind)
	if err != nil {
		return err
	}

	if err := deserialize(ctx, component, data); err != nil {
		return eris.Wrapf(err, "component %q", kind)
	}

	entity.Add(component)
	return nil
}

// deserialize reports a panicking Deserialize as an error wrapping ErrComponentPanic.
func deserialize(ctx context.Context, component Component, data Data) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Wrapf(ErrComponentPanic, "%v", r)
		}
	}()

	return component.Deserialize(ctx, data)
}
