package components

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/ecs"
)

const SceneKind ecs.Kind = "scene"

// Scene holds world-wide render settings. Time is the animation clock read by shaders.
type Scene struct {
	ecs.ComponentBase

	Background mgl32.Vec3
	Ambient    mgl32.Vec3
	Time       float32
	Wind       float32
	Fog        float32
}

func NewScene() *Scene {
	return &Scene{
		Ambient: mgl32.Vec3{0.2, 0.2, 0.2},
		Wind:    1,
	}
}

func (s *Scene) Kind() ecs.Kind {
	return SceneKind
}

func (s *Scene) Deserialize(_ context.Context, data ecs.Data) error {
	background := [3]float32(s.Background)
	ambient := [3]float32(s.Ambient)
	clock, wind, fog := s.Time, s.Wind, s.Fog

	err := errors.Join(
		data.Color("background", &background),
		data.Color("ambient", &ambient),
		data.Float32("time", &clock),
		data.Float32("wind", &wind),
		data.Float32("fog", &fog),
	)
	if err != nil {
		return err
	}

	s.Background = background
	s.Ambient = ambient
	s.Time, s.Wind, s.Fog = clock, wind, fog
	return nil
}

func (s *Scene) Serialize() ecs.Data {
	return ecs.Data{
		"background": vec3List(s.Background),
		"ambient":    vec3List(s.Ambient),
		"time":       s.Time,
		"wind":       s.Wind,
		"fog":        s.Fog,
	}
}

func (s *Scene) Clone() ecs.Component {
	clone := *s
	clone.ComponentBase = ecs.ComponentBase{}
	return &clone
}
