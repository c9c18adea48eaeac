package systems

import (
	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
)

const GrassAnimationType = "grass-animation"

// GrassAnimation advances the scene clock that drives the grass shader.
type GrassAnimation struct {
	ecs.SystemBase

	// Speed scales the elapsed time. Defaults to 1.
	Speed float64
}

func NewGrassAnimation() *GrassAnimation {
	return &GrassAnimation{Speed: 1}
}

func (s *GrassAnimation) Name() string {
	return GrassAnimationType
}

func (s *GrassAnimation) Configure(props ecs.Data) error {
	speed := s.Speed
	if err := props.Float64("speed", &speed); err != nil {
		return err
	}

	if err := s.ConfigureBase(props); err != nil {
		return err
	}

	s.Speed = speed
	return nil
}

func (s *GrassAnimation) Update(dt float64, w *ecs.World) error {
	scene, ok := sceneOf(w)
	if !ok {
		return nil
	}

	scene.Time += float32(dt * s.Speed)
	return nil
}

// sceneOf returns the scene component of the world's scene entity, falling back to the
// first entity carrying one.
func sceneOf(w *ecs.World) (*components.Scene, bool) {
	if scene, ok := ecs.ComponentOf[*components.Scene](w.Scene(), components.SceneKind); ok {
		return scene, true
	}

	for _, scene := range ecs.Query[*components.Scene](w, components.SceneKind) {
		return scene, true
	}

	return nil, false
}
