package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
	"github.com/plus3/scenery/ecs/debugui"
)

// CameraControl zooms the camera with the mouse wheel unless the debug UI has the mouse.
type CameraControl struct {
	ecs.SystemBase

	Input *debugui.ImguiInputState
}

func (c *CameraControl) Name() string {
	return "camera-control"
}

// Priority runs the control before the animations.
func (c *CameraControl) Priority() int {
	return -100
}

func (c *CameraControl) Update(_ float64, w *ecs.World) error {
	if c.Input != nil && c.Input.WantCaptureMouse {
		return nil
	}

	_, wheel := ebiten.Wheel()
	if wheel == 0 || w.Camera() == nil {
		return nil
	}

	camera, ok := ecs.ComponentOf[*components.PerspectiveCamera](w.Camera(), components.PerspectiveCameraKind)
	if !ok {
		return nil
	}

	offset := camera.Position.Sub(camera.Target)
	distance := max(offset.Len()*(1-float32(wheel)*0.1), camera.Near*2)
	camera.Position = camera.Target.Add(offset.Normalize().Mul(distance))
	return nil
}
