// Package components provides the component kinds used by scene configurations.
package components

import "github.com/plus3/scenery/ecs"

// RegisterDefaults registers every component kind of this package. Models resolve
// their sources through loader, which may be nil for headless worlds.
func RegisterDefaults(r *ecs.ComponentRegistry, loader ModelLoader) {
	r.Register(TransformKind, func() ecs.Component { return NewTransform() })
	r.Register(PointLightKind, func() ecs.Component { return NewPointLight() })
	r.Register(ModelKind, func() ecs.Component { return NewModel(loader) })
	r.Register(ParticleKind, func() ecs.Component { return NewParticle() })
	r.Register(PerspectiveCameraKind, func() ecs.Component { return NewPerspectiveCamera() })
	r.Register(SceneKind, func() ecs.Component { return NewScene() })
}
