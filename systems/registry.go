// Package systems provides the animation systems referenced by scene configurations.
package systems

import "github.com/plus3/scenery/ecs"

// RegisterDefaults registers every system type of this package.
func RegisterDefaults(r *ecs.SystemRegistry) {
	r.Register(GrassAnimationType, func() ecs.System { return NewGrassAnimation() })
	ecs.RegisterSystem[ParticleSimulation](r, ParticleSimulationType)
	r.Register(LightAnimationType, func() ecs.System { return NewLightAnimation() })
	r.Register(CameraAnimationType, func() ecs.System { return NewCameraAnimation() })
	r.Register(TransformAnimationType, func() ecs.System { return NewTransformAnimation() })
}
