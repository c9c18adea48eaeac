package ecs

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

const (
	// DefaultCameraKind is the component kind built from the camera section of a Config.
	DefaultCameraKind Kind = "perspective-camera"

	// DefaultSceneKind is the component kind built from the scene section of a Config.
	DefaultSceneKind Kind = "scene"
)

// World owns all entities, the prefab table and the ordered list of systems.
//
// A World is not safe for concurrent use. LoadFromConfig and Update must not overlap;
// Update returns ErrWorldBusy if called while a load is in flight.
type World struct {
	components *ComponentRegistry
	systems    *SystemRegistry
	logger     *slog.Logger

	entities     *intmap.Map[EntityId, *Entity]
	nextEntityId EntityId

	scheduler scheduler
	commands  *Commands

	prefabs map[string]ComponentDefs

	// retired holds systems that were destroyed or failed to initialize.
	retired map[System]struct{}

	cameraKind Kind
	sceneKind  Kind
	camera     *Entity
	scene      *Entity

	loading atomic.Bool
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithCameraKind overrides the component kind used for the camera section.
func WithCameraKind(kind Kind) Option {
	return func(w *World) {
		w.cameraKind = kind
	}
}

// WithSceneKind overrides the component kind used for the scene section.
func WithSceneKind(kind Kind) Option {
	return func(w *World) {
		w.sceneKind = kind
	}
}

// NewWorld creates an empty world resolving component kinds and system types through the
// given registries. Either registry may be nil if the world is never built from configuration.
func NewWorld(components *ComponentRegistry, systems *SystemRegistry, opts ...Option) *World {
	if components == nil {
		components = NewComponentRegistry()
	}

	if systems == nil {
		systems = NewSystemRegistry()
	}

	w := &World{
		components: components,
		systems:    systems,
		logger:     slog.Default(),
		entities:   intmap.New[EntityId, *Entity](256),
		commands:   newCommands(),
		prefabs:    make(map[string]ComponentDefs),
		retired:    make(map[System]struct{}),
		cameraKind: DefaultCameraKind,
		sceneKind:  DefaultSceneKind,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// ComponentRegistry returns the registry used to build components.
func (w *World) ComponentRegistry() *ComponentRegistry {
	return w.components
}

// SystemRegistry returns the registry used to build systems.
func (w *World) SystemRegistry() *SystemRegistry {
	return w.systems
}

// Logger returns the world's logger.
func (w *World) Logger() *slog.Logger {
	return w.logger
}

// Commands returns the buffer of operations deferred to the end of the current tick.
func (w *World) Commands() *Commands {
	return w.commands
}

// CreateEntity allocates the next identity and registers an empty entity.
func (w *World) CreateEntity() *Entity {
	entity := newEntity(w.nextEntityId)
	w.nextEntityId++

	w.entities.Put(entity.id, entity)
	return entity
}

// RemoveEntity removes the entity from the store and detaches all of its components.
// Removing an unknown or already removed entity is a no-op.
func (w *World) RemoveEntity(entity *Entity) {
	if entity == nil {
		return
	}

	stored, ok := w.entities.Get(entity.id)
	if !ok || stored != entity {
		return
	}

	w.entities.Del(entity.id)
	entity.detachAll()

	if w.camera == entity {
		w.camera = nil
	}
	if w.scene == entity {
		w.scene = nil
	}
}

// Entity looks up an entity by id.
func (w *World) Entity(id EntityId) (*Entity, bool) {
	return w.entities.Get(id)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.Len()
}

// Entities returns a snapshot of all entities ordered by id.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, w.entities.Len())
	w.entities.ForEach(func(_ EntityId, entity *Entity) bool {
		out = append(out, entity)
		return true
	})

	slices.SortFunc(out, func(a, b *Entity) int {
		return cmp.Compare(a.id, b.id)
	})

	return out
}

// FindEntity returns the entity with the lowest id that satisfies pred.
func (w *World) FindEntity(pred func(*Entity) bool) (*Entity, bool) {
	for _, entity := range w.Entities() {
		if pred(entity) {
			return entity, true
		}
	}
	return nil, false
}

// Camera returns the dedicated camera entity built by LoadFromConfig, or nil.
func (w *World) Camera() *Entity {
	return w.camera
}

// Scene returns the dedicated scene entity built by LoadFromConfig, or nil.
func (w *World) Scene() *Entity {
	return w.scene
}

// AddSystem runs the system's Init hook, if any, and inserts it into the update order.
// Systems run in ascending priority; ties keep registration order.
//
// A system whose Init fails or panics is never scheduled; the error wraps ErrSystemInit.
// Systems that failed to initialize or were destroyed cannot be added again and yield
// ErrSystemRetired.
// Called during a tick, the registration is deferred to the end of the tick.
func (w *World) AddSystem(ctx context.Context, system System) error {
	if w.scheduler.running {
		w.commands.AddSystem(ctx, system)
		return nil
	}

	if _, retired := w.retired[system]; retired {
		name := systemName(system)
		w.logger.Warn("Refusing to add a retired system",
			slog.String("system", name))

		return eris.Wrapf(ErrSystemRetired, "system %s", name)
	}

	if init, ok := system.(Initializer); ok {
		if err := initSystem(ctx, w, init); err != nil {
			name := systemName(system)
			w.logger.Error("System init failed, excluding it from updates",
				slog.String("system", name),
				slog.Any("error", err))

			w.retired[system] = struct{}{}
			return errors.Join(eris.Wrapf(ErrSystemInit, "system %s", name), err)
		}
	}

	w.scheduler.add(system)
	return nil
}

func initSystem(ctx context.Context, w *World, init Initializer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Wrapf(ErrSystemPanic, "%v", r)
		}
	}()

	return init.Init(ctx, w)
}

// RemoveSystem removes the system from the update order and runs its Destroy hook.
// Called during a tick, the removal is deferred to the end of the tick.
func (w *World) RemoveSystem(ctx context.Context, system System) error {
	if w.scheduler.running {
		w.commands.RemoveSystem(ctx, system)
		return nil
	}

	entry := w.scheduler.remove(system)
	if entry == nil {
		return eris.Wrapf(ErrSystemNotFound, "system %s", systemName(system))
	}

	return w.destroy(ctx, entry)
}

func (w *World) destroy(ctx context.Context, entry *scheduledSystem) error {
	if entry.state == systemDestroyed {
		return nil
	}

	entry.state = systemDestroyed
	w.retired[entry.system] = struct{}{}
	if entry.destroyer == nil {
		return nil
	}

	if err := entry.destroyer.Destroy(ctx, w); err != nil {
		w.logger.Warn("System destroy failed",
			slog.String("system", entry.name),
			slog.Any("error", err))

		return eris.Wrapf(err, "destroy system %s", entry.name)
	}

	return nil
}

// Systems returns a snapshot of the scheduled systems in execution order.
func (w *World) Systems() []System {
	out := make([]System, 0, len(w.scheduler.systems))
	for _, entry := range w.scheduler.systems {
		out = append(out, entry.system)
	}
	return out
}

// SystemCount returns the number of scheduled systems.
func (w *World) SystemCount() int {
	return len(w.scheduler.systems)
}

// Update runs one tick: every enabled system is updated once, in order, with dt seconds.
// A failing or panicking system is logged and the tick proceeds with the next one.
// Operations queued on Commands are flushed after the last system.
func (w *World) Update(dt float64) error {
	if w.loading.Load() {
		w.logger.Warn("Update called while the world is loading, skipping tick")
		return ErrWorldBusy
	}

	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	w.scheduler.once(dt, w)
	w.commands.Flush(w)

	return nil
}

// Run executes ticks at the given interval until the context is cancelled.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			// a load in flight is reported by Update itself
			_ = w.Update(dt)
		}
	}
}

// Close destroys all systems in reverse execution order and empties the system list.
func (w *World) Close(ctx context.Context) error {
	var errs []error

	for _, entry := range slices.Backward(w.scheduler.systems) {
		if err := w.destroy(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}

	w.scheduler.systems = nil
	return errors.Join(errs...)
}
