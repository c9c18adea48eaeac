package systems

import (
	"context"
	"slices"

	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
)

const ParticleSimulationType = "particle-simulation"

// ParticleSimulation ages particles and respawns expired ones while their emitter is on.
type ParticleSimulation struct {
	ecs.SystemBase
}

func (s *ParticleSimulation) Name() string {
	return ParticleSimulationType
}

func (s *ParticleSimulation) Configure(props ecs.Data) error {
	return s.ConfigureBase(props)
}

func (s *ParticleSimulation) Update(dt float64, w *ecs.World) error {
	step := float32(dt)

	for _, p := range ecs.Query[*components.Particle](w, components.ParticleKind) {
		p.Elapsed += step

		for idx := range p.Ages {
			p.Ages[idx] += step
		}

		p.Ages = slices.DeleteFunc(p.Ages, func(age float32) bool {
			return age >= p.Lifetime
		})

		if p.Emitting {
			for len(p.Ages) < p.Count {
				p.Ages = append(p.Ages, 0)
			}
		}
	}

	return nil
}

// Destroy drops the live particles of every emitter.
func (s *ParticleSimulation) Destroy(_ context.Context, w *ecs.World) error {
	for _, p := range ecs.Query[*components.Particle](w, components.ParticleKind) {
		p.Ages = nil
	}
	return nil
}
