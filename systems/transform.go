package systems

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
	"github.com/rotisserie/eris"
)

const TransformAnimationType = "transform-animation"

// TransformAnimation spins every entity that has both a transform and a model.
type TransformAnimation struct {
	ecs.SystemBase

	Axis mgl32.Vec3

	// Speed is the angular velocity in radians per second.
	Speed float32
}

func NewTransformAnimation() *TransformAnimation {
	return &TransformAnimation{Axis: mgl32.Vec3{0, 1, 0}, Speed: 1}
}

func (s *TransformAnimation) Name() string {
	return TransformAnimationType
}

func (s *TransformAnimation) Configure(props ecs.Data) error {
	axis := [3]float32(s.Axis)
	speed := s.Speed
	err := errors.Join(
		props.Vec3("axis", &axis),
		props.Float32("speed", &speed),
	)
	if err != nil {
		return err
	}

	if err := s.ConfigureBase(props); err != nil {
		return err
	}

	s.Axis = axis
	s.Speed = speed
	return nil
}

func (s *TransformAnimation) Init(_ context.Context, _ *ecs.World) error {
	if s.Axis.Len() == 0 {
		return eris.New("rotation axis must not be zero")
	}

	s.Axis = s.Axis.Normalize()
	return nil
}

func (s *TransformAnimation) Update(dt float64, w *ecs.World) error {
	step := mgl32.QuatRotate(float32(dt)*s.Speed, s.Axis)

	for entity := range ecs.With(w, components.TransformKind, components.ModelKind) {
		transform, ok := ecs.ComponentOf[*components.Transform](entity, components.TransformKind)
		if !ok {
			continue
		}

		transform.Rotation = step.Mul(transform.Rotation).Normalize()
	}

	return nil
}
