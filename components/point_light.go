package components

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/ecs"
)

const PointLightKind ecs.Kind = "point-light"

// PointLight is an omnidirectional light source.
type PointLight struct {
	ecs.ComponentBase

	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Range     float32
}

func NewPointLight() *PointLight {
	return &PointLight{
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
		Range:     10,
	}
}

func (l *PointLight) Kind() ecs.Kind {
	return PointLightKind
}

func (l *PointLight) Deserialize(_ context.Context, data ecs.Data) error {
	position := [3]float32(l.Position)
	color := [3]float32(l.Color)
	intensity := l.Intensity
	lightRange := l.Range

	err := errors.Join(
		data.Vec3("position", &position),
		data.Color("color", &color),
		data.Float32("intensity", &intensity),
		data.Float32("range", &lightRange),
	)
	if err != nil {
		return err
	}

	l.Position = position
	l.Color = color
	l.Intensity = intensity
	l.Range = lightRange
	return nil
}

func (l *PointLight) Serialize() ecs.Data {
	return ecs.Data{
		"position":  vec3List(l.Position),
		"color":     vec3List(l.Color),
		"intensity": l.Intensity,
		"range":     l.Range,
	}
}

func (l *PointLight) Clone() ecs.Component {
	clone := *l
	clone.ComponentBase = ecs.ComponentBase{}
	return &clone
}
