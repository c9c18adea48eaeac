package systems

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
)

const LightAnimationType = "light-animation"

// LightAnimation moves point lights on a horizontal circle around Center. Lights are
// spread evenly on the circle and keep their height.
type LightAnimation struct {
	ecs.SystemBase

	Center mgl32.Vec3
	Radius float32
	Speed  float32

	angle float32
}

func NewLightAnimation() *LightAnimation {
	return &LightAnimation{Radius: 5, Speed: 1}
}

func (s *LightAnimation) Name() string {
	return LightAnimationType
}

func (s *LightAnimation) Configure(props ecs.Data) error {
	center := [3]float32(s.Center)
	radius, speed := s.Radius, s.Speed
	err := errors.Join(
		props.Vec3("center", &center),
		props.Float32("radius", &radius),
		props.Float32("speed", &speed),
	)
	if err != nil {
		return err
	}

	if err := s.ConfigureBase(props); err != nil {
		return err
	}

	s.Center = center
	s.Radius, s.Speed = radius, speed
	return nil
}

func (s *LightAnimation) Update(dt float64, w *ecs.World) error {
	s.angle = float32(math.Mod(float64(s.angle+float32(dt)*s.Speed), 2*math.Pi))

	var lights []*components.PointLight
	for _, light := range ecs.Query[*components.PointLight](w, components.PointLightKind) {
		lights = append(lights, light)
	}

	for idx, light := range lights {
		angle := s.angle + 2*math.Pi*float32(idx)/float32(len(lights))
		sin, cos := math.Sincos(float64(angle))

		light.Position = mgl32.Vec3{
			s.Center.X() + s.Radius*float32(cos),
			light.Position.Y(),
			s.Center.Z() + s.Radius*float32(sin),
		}
	}

	return nil
}
