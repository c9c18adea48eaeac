package ecs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/rotisserie/eris"
)

// LoadReport describes what LoadFromConfig built and what it had to skip.
type LoadReport struct {
	Systems  []System
	Camera   *Entity
	Scene    *Entity
	Prefabs  []string
	Entities []*Entity

	// Diagnostics lists every recovered problem: unknown tags, unknown prefabs,
	// failed deserialization and failed system initialization.
	Diagnostics []error
}

// Err joins all diagnostics, or returns nil if the load was clean.
func (r *LoadReport) Err() error {
	return errors.Join(r.Diagnostics...)
}

// LoadFromConfig builds systems and entities from cfg, in this order:
//
//  1. every system is instantiated through the SystemRegistry, configured with its
//     properties and added to the world
//  2. the camera and scene entities are built from their sections
//  3. prefabs are registered
//  4. every entity is instantiated, prefab components first, then its own components
//
// Problems with single entries are recorded in the report and logged; they never abort
// the load. The returned error is non-nil only if ctx is cancelled, in which case the
// entity under construction may be incomplete and the world should be discarded.
func (w *World) LoadFromConfig(ctx context.Context, cfg *Config) (*LoadReport, error) {
	if !w.loading.CompareAndSwap(false, true) {
		return nil, ErrWorldBusy
	}

	defer w.loading.Store(false)

	l := &loader{world: w, report: &LoadReport{}}

	if err := l.loadSystems(ctx, cfg.Systems); err != nil {
		return l.report, err
	}

	if err := l.loadSingletons(ctx, cfg); err != nil {
		return l.report, err
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.Prefabs)) {
		w.RegisterPrefab(name, cfg.Prefabs[name])
		l.report.Prefabs = append(l.report.Prefabs, name)
	}

	if err := l.loadEntities(ctx, cfg.Entities); err != nil {
		return l.report, err
	}

	w.logger.Info("World loaded",
		slog.Int("systems", len(l.report.Systems)),
		slog.Int("prefabs", len(l.report.Prefabs)),
		slog.Int("entities", len(l.report.Entities)),
		slog.Int("diagnostics", len(l.report.Diagnostics)))

	return l.report, nil
}

type loader struct {
	world  *World
	report *LoadReport
}

func (l *loader) diagnose(path string, err error) {
	err = eris.Wrap(err, path)
	l.report.Diagnostics = append(l.report.Diagnostics, err)

	l.world.logger.Warn("Skipping config entry",
		slog.String("path", path),
		slog.Any("error", err))
}

func (l *loader) loadSystems(ctx context.Context, defs []SystemDef) error {
	w := l.world

	for idx, def := range defs {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "load aborted")
		}

		path := fmt.Sprintf("systems[%d]", idx)

		system, err := w.systems.New(def.Type)
		if err != nil {
			l.diagnose(path, err)
			continue
		}

		if len(def.Properties) > 0 {
			configurable, ok := system.(Configurable)
			if !ok {
				w.logger.Warn("System does not accept properties, ignoring them",
					slog.String("path", path),
					slog.String("type", def.Type))
			} else if err := configurable.Configure(def.Properties); err != nil {
				l.diagnose(path, eris.Wrapf(err, "configure %q", def.Type))
				continue
			}
		}

		if err := w.AddSystem(ctx, system); err != nil {
			l.diagnose(path, err)
			continue
		}

		l.report.Systems = append(l.report.Systems, system)
	}

	return nil
}

func (l *loader) loadSingletons(ctx context.Context, cfg *Config) error {
	w := l.world

	if cfg.Camera != nil {
		w.camera = l.loadSingleton(ctx, "camera", w.cameraKind, cfg.Camera)
		l.report.Camera = w.camera
	}

	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "load aborted")
	}

	if cfg.Scene != nil {
		w.scene = l.loadSingleton(ctx, "scene", w.sceneKind, cfg.Scene)
		l.report.Scene = w.scene
	}

	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "load aborted")
	}

	return nil
}

// loadSingleton builds an entity holding one component of the given kind.
// The entity is discarded if the component cannot be built.
func (l *loader) loadSingleton(ctx context.Context, path string, kind Kind, data Data) *Entity {
	w := l.world

	entity := w.CreateEntity()
	if err := w.applyComponent(ctx, entity, kind, data); err != nil {
		l.diagnose(path, err)
		w.RemoveEntity(entity)
		return nil
	}

	return entity
}

func (l *loader) loadEntities(ctx context.Context, defs []EntityDef) error {
	for idx, def := range defs {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "load aborted")
		}

		entity, errs := l.world.Instantiate(ctx, def.Prefab, def.Components)
		for _, err := range errs {
			l.diagnose(fmt.Sprintf("entities[%d]", idx), err)
		}

		l.report.Entities = append(l.report.Entities, entity)
	}

	// the last entity may have been cut short by a cancellation
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "load aborted")
	}

	return nil
}
