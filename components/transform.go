package components

import (
	"context"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/ecs"
	"github.com/rotisserie/eris"
)

const TransformKind ecs.Kind = "transform"

// Transform places an entity in the scene.
//
// Accepted fields: position ([x,y,z] or {x,y,z}), x, y, z, rotation (Euler angles in
// degrees as [x,y,z], or {axis: [x,y,z], angle: degrees}) and scale (a number or [x,y,z]).
type Transform struct {
	ecs.ComponentBase

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t *Transform) Kind() ecs.Kind {
	return TransformKind
}

// Matrix returns the model matrix: translation * rotation * scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

func (t *Transform) Deserialize(_ context.Context, data ecs.Data) error {
	position := [3]float32(t.Position)
	err := errors.Join(
		data.Vec3("position", &position),
		data.Float32("x", &position[0]),
		data.Float32("y", &position[1]),
		data.Float32("z", &position[2]),
	)
	if err != nil {
		return err
	}

	scale := [3]float32(t.Scale)
	if data.Has("scale") {
		var uniform float32
		if err := data.Float32("scale", &uniform); err == nil {
			scale = [3]float32{uniform, uniform, uniform}
		} else if err := data.Vec3("scale", &scale); err != nil {
			return err
		}
	}

	rotation, err := decodeRotation(data, t.Rotation)
	if err != nil {
		return err
	}

	t.Position = position
	t.Scale = scale
	t.Rotation = rotation
	return nil
}

func decodeRotation(data ecs.Data, current mgl32.Quat) (mgl32.Quat, error) {
	if !data.Has("rotation") {
		return current, nil
	}

	if record, err := data.Map("rotation"); err == nil && (record.Has("axis") || record.Has("angle")) {
		axis := [3]float32{0, 1, 0}
		var angle float32
		if err := errors.Join(record.Vec3("axis", &axis), record.Float32("angle", &angle)); err != nil {
			return current, eris.Wrap(err, "rotation")
		}

		if mgl32.Vec3(axis).Len() == 0 {
			return current, eris.Wrap(ecs.ErrFieldType, "rotation axis must not be zero")
		}

		return mgl32.QuatRotate(mgl32.DegToRad(angle), mgl32.Vec3(axis).Normalize()), nil
	}

	var euler [3]float32
	if err := data.Vec3("rotation", &euler); err != nil {
		return current, err
	}

	return mgl32.AnglesToQuat(
		mgl32.DegToRad(euler[0]),
		mgl32.DegToRad(euler[1]),
		mgl32.DegToRad(euler[2]),
		mgl32.XYZ,
	), nil
}

func (t *Transform) Serialize() ecs.Data {
	return ecs.Data{
		"position": vec3List(t.Position),
		"rotation": axisAngle(t.Rotation),
		"scale":    vec3List(t.Scale),
	}
}

func (t *Transform) Clone() ecs.Component {
	clone := *t
	clone.ComponentBase = ecs.ComponentBase{}
	return &clone
}

// axisAngle encodes q in the {axis, angle} form accepted by Deserialize.
func axisAngle(q mgl32.Quat) ecs.Data {
	q = q.Normalize()

	angle := 2 * float32(math.Acos(float64(mgl32.Clamp(q.W, -1, 1))))
	axis := mgl32.Vec3{0, 1, 0}
	if s := float32(math.Sqrt(float64(1 - q.W*q.W))); s > 1e-6 {
		axis = q.V.Mul(1 / s)
	}

	return ecs.Data{
		"axis":  vec3List(axis),
		"angle": mgl32.RadToDeg(angle),
	}
}

func vec3List(v mgl32.Vec3) []float32 {
	return []float32{v[0], v[1], v[2]}
}
