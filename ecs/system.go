package ecs

import "context"

// System represents per-frame behavior that operates on the entities of a World.
// Systems can include custom state fields that persist between frames.
//
// Update receives the elapsed time in seconds. An error or a panic is reported by
// the World and does not stop the remaining systems of the tick.
type System interface {
	Update(dt float64, w *World) error
}

// Initializer is implemented by systems that need setup before their first update.
// A failing Init excludes the system from the World for good.
type Initializer interface {
	Init(ctx context.Context, w *World) error
}

// Destroyer is implemented by systems that release resources when removed.
// Destroy is invoked at most once.
type Destroyer interface {
	Destroy(ctx context.Context, w *World) error
}

// Prioritized systems run in ascending priority order. Systems without a priority use 0.
type Prioritized interface {
	Priority() int
}

// Toggleable systems are skipped by the update tick while Enabled returns false.
type Toggleable interface {
	Enabled() bool
}

// Configurable systems accept the properties block of a configuration document.
type Configurable interface {
	Configure(props Data) error
}

// Named systems report a display name for stats and diagnostics.
type Named interface {
	Name() string
}

// SystemBase provides priority and enabled state. Embed it in a system struct.
// The zero value is enabled with priority 0.
type SystemBase struct {
	priority int
	disabled bool
}

// Priority returns the position of the system in the update order. Lower runs first.
func (b *SystemBase) Priority() int {
	return b.priority
}

// SetPriority changes the priority. The World reads it when the system is added,
// so it must be set before AddSystem.
func (b *SystemBase) SetPriority(priority int) {
	b.priority = priority
}

// Enabled reports whether the system takes part in the update tick.
func (b *SystemBase) Enabled() bool {
	return !b.disabled
}

// SetEnabled pauses or resumes the system. A disabled system keeps its place in the
// update order and is skipped until enabled again.
func (b *SystemBase) SetEnabled(enabled bool) {
	b.disabled = !enabled
}

// ConfigureBase applies the common "priority" and "enabled" properties.
func (b *SystemBase) ConfigureBase(props Data) error {
	priority := b.priority
	if err := props.Int("priority", &priority); err != nil {
		return err
	}

	enabled := !b.disabled
	if err := props.Bool("enabled", &enabled); err != nil {
		return err
	}

	b.priority = priority
	b.disabled = !enabled
	return nil
}
