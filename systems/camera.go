package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
)

const CameraAnimationType = "camera-animation"

// CameraAnimation orbits the camera around its target, about the camera's up vector.
type CameraAnimation struct {
	ecs.SystemBase

	// Speed is the angular velocity in radians per second.
	Speed float32
}

func NewCameraAnimation() *CameraAnimation {
	return &CameraAnimation{Speed: 0.25}
}

func (s *CameraAnimation) Name() string {
	return CameraAnimationType
}

func (s *CameraAnimation) Configure(props ecs.Data) error {
	speed := s.Speed
	if err := props.Float32("speed", &speed); err != nil {
		return err
	}

	if err := s.ConfigureBase(props); err != nil {
		return err
	}

	s.Speed = speed
	return nil
}

func (s *CameraAnimation) Update(dt float64, w *ecs.World) error {
	camera, ok := ecs.ComponentOf[*components.PerspectiveCamera](w.Camera(), components.PerspectiveCameraKind)
	if !ok {
		return nil
	}

	up := camera.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}

	rotation := mgl32.QuatRotate(float32(dt)*s.Speed, up.Normalize())
	offset := camera.Position.Sub(camera.Target)
	camera.Position = camera.Target.Add(rotation.Rotate(offset))
	return nil
}
