package components

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/ecs"
)

const PerspectiveCameraKind ecs.Kind = "perspective-camera"

// PerspectiveCamera looks from Position at Target. Fov is the vertical field of view in degrees.
type PerspectiveCamera struct {
	ecs.ComponentBase

	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

func NewPerspectiveCamera() *PerspectiveCamera {
	return &PerspectiveCamera{
		Fov:      60,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000,
		Position: mgl32.Vec3{0, 0, 5},
		Up:       mgl32.Vec3{0, 1, 0},
	}
}

func (c *PerspectiveCamera) Kind() ecs.Kind {
	return PerspectiveCameraKind
}

func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// ScreenPoint projects p onto a viewport of the given size, origin top left.
// It reports false for points outside the view frustum.
func (c *PerspectiveCamera) ScreenPoint(p mgl32.Vec3, width, height float32) (mgl32.Vec2, bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}

	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 || ndc.Z() < -1 || ndc.Z() > 1 {
		return mgl32.Vec2{}, false
	}

	return mgl32.Vec2{
		(ndc.X() + 1) / 2 * width,
		(1 - ndc.Y()) / 2 * height,
	}, true
}

func (c *PerspectiveCamera) Deserialize(_ context.Context, data ecs.Data) error {
	fov, aspect, near, far := c.Fov, c.Aspect, c.Near, c.Far
	position := [3]float32(c.Position)
	target := [3]float32(c.Target)
	up := [3]float32(c.Up)

	err := errors.Join(
		data.Float32("fov", &fov),
		data.Float32("aspect", &aspect),
		data.Float32("near", &near),
		data.Float32("far", &far),
		data.Vec3("position", &position),
		data.Vec3("target", &target),
		data.Vec3("up", &up),
	)
	if err != nil {
		return err
	}

	c.Fov, c.Aspect, c.Near, c.Far = fov, aspect, near, far
	c.Position = position
	c.Target = target
	c.Up = up
	return nil
}

func (c *PerspectiveCamera) Serialize() ecs.Data {
	return ecs.Data{
		"fov":      c.Fov,
		"aspect":   c.Aspect,
		"near":     c.Near,
		"far":      c.Far,
		"position": vec3List(c.Position),
		"target":   vec3List(c.Target),
		"up":       vec3List(c.Up),
	}
}

func (c *PerspectiveCamera) Clone() ecs.Component {
	clone := *c
	clone.ComponentBase = ecs.ComponentBase{}
	return &clone
}
