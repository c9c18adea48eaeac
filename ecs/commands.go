package ecs

import (
	"context"
	"log/slog"
)

// Commands provides a buffer for deferred World operations that are executed at the end of a tick.
// This prevents structural changes to the system list while the scheduler iterates it.
type Commands struct {
	removes       []*Entity
	addSystems    []systemCommand
	removeSystems []systemCommand
	defers        []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type systemCommand struct {
	ctx    context.Context
	system System
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// RemoveEntity queues an entity removal operation.
func (c *Commands) RemoveEntity(entity *Entity) {
	c.removes = append(c.removes, entity)
}

// AddSystem queues a system registration. Init runs when the buffer is flushed.
func (c *Commands) AddSystem(ctx context.Context, system System) {
	c.addSystems = append(c.addSystems, systemCommand{ctx: ctx, system: system})
}

// RemoveSystem queues a system removal. Destroy runs when the buffer is flushed.
func (c *Commands) RemoveSystem(ctx context.Context, system System) {
	c.removeSystems = append(c.removeSystems, systemCommand{ctx: ctx, system: system})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.removes) + len(c.addSystems) + len(c.removeSystems) + len(c.defers)
}

// Flush applies all queued operations to the world, resetting the buffer state.
// Operations queued while flushing are kept for the next flush.
func (c *Commands) Flush(w *World) {
	removes, addSystems, removeSystems, defers := c.removes, c.addSystems, c.removeSystems, c.defers
	c.removes, c.addSystems, c.removeSystems, c.defers = nil, nil, nil, nil

	for _, entity := range removes {
		w.RemoveEntity(entity)
	}

	for _, cmd := range removeSystems {
		if err := w.RemoveSystem(cmd.ctx, cmd.system); err != nil {
			w.logger.Warn("Deferred system removal failed",
				slog.String("system", systemName(cmd.system)),
				slog.Any("error", err))
		}
	}

	for _, cmd := range addSystems {
		// AddSystem already logs init failures
		_ = w.AddSystem(cmd.ctx, cmd.system)
	}

	for _, df := range defers {
		df.fn()
	}
}
