package components

import (
	"context"
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/ecs"
	"github.com/rotisserie/eris"
)

const ParticleKind ecs.Kind = "particle"

// Particle is a simple emitter. Ages holds the age in seconds of every live particle
// and is maintained by the particle simulation.
type Particle struct {
	ecs.ComponentBase

	Count    int
	Lifetime float32
	Speed    float32
	Size     float32
	Color    mgl32.Vec3
	Emitting bool

	Elapsed float32
	Ages    []float32
}

func NewParticle() *Particle {
	return &Particle{
		Count:    100,
		Lifetime: 2,
		Speed:    1,
		Size:     0.1,
		Color:    mgl32.Vec3{1, 1, 1},
		Emitting: true,
	}
}

func (p *Particle) Kind() ecs.Kind {
	return ParticleKind
}

func (p *Particle) Deserialize(_ context.Context, data ecs.Data) error {
	count := p.Count
	lifetime := p.Lifetime
	speed := p.Speed
	size := p.Size
	color := [3]float32(p.Color)
	emitting := p.Emitting

	err := errors.Join(
		data.Int("count", &count),
		data.Float32("lifetime", &lifetime),
		data.Float32("speed", &speed),
		data.Float32("size", &size),
		data.Color("color", &color),
		data.Bool("emitting", &emitting),
	)
	if err != nil {
		return err
	}

	if count < 0 {
		return eris.Wrapf(ecs.ErrFieldType, "field \"count\": must not be negative, got %d", count)
	}

	p.Count = count
	p.Lifetime = lifetime
	p.Speed = speed
	p.Size = size
	p.Color = color
	p.Emitting = emitting

	if len(p.Ages) > count {
		p.Ages = p.Ages[:count]
	}

	return nil
}

func (p *Particle) Serialize() ecs.Data {
	return ecs.Data{
		"count":    p.Count,
		"lifetime": p.Lifetime,
		"speed":    p.Speed,
		"size":     p.Size,
		"color":    vec3List(p.Color),
		"emitting": p.Emitting,
	}
}

func (p *Particle) Clone() ecs.Component {
	clone := *p
	clone.ComponentBase = ecs.ComponentBase{}
	clone.Ages = slices.Clone(p.Ages)
	return &clone
}
