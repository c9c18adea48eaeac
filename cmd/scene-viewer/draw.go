package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
)

const gridExtent = 10

var (
	gridColor  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	modelColor = color.RGBA{R: 200, G: 200, B: 190, A: 255}
)

// drawScene draws a wireframe preview: a ground grid, models as discs with a heading
// line, point lights and particles.
func drawScene(screen *ebiten.Image, w *ecs.World) {
	bounds := screen.Bounds()
	width, height := float32(bounds.Dx()), float32(bounds.Dy())

	if w.Scene() != nil {
		if scene, ok := ecs.ComponentOf[*components.Scene](w.Scene(), components.SceneKind); ok {
			screen.Fill(toColor(scene.Background))
		}
	}

	if w.Camera() == nil {
		return
	}

	source, ok := ecs.ComponentOf[*components.PerspectiveCamera](w.Camera(), components.PerspectiveCameraKind)
	if !ok {
		return
	}

	camera := *source
	camera.Aspect = width / height

	line := func(from, to mgl32.Vec3, clr color.Color) {
		a, okA := camera.ScreenPoint(from, width, height)
		b, okB := camera.ScreenPoint(to, width, height)
		if okA && okB {
			vector.StrokeLine(screen, a.X(), a.Y(), b.X(), b.Y(), 1, clr, true)
		}
	}

	for i := -gridExtent; i <= gridExtent; i++ {
		f := float32(i)
		line(mgl32.Vec3{f, 0, -gridExtent}, mgl32.Vec3{f, 0, gridExtent}, gridColor)
		line(mgl32.Vec3{-gridExtent, 0, f}, mgl32.Vec3{gridExtent, 0, f}, gridColor)
	}

	for entity, transform := range ecs.Query[*components.Transform](w, components.TransformKind) {
		if model, ok := ecs.ComponentOf[*components.Model](entity, components.ModelKind); ok && model.Visible {
			center, ok := camera.ScreenPoint(transform.Position, width, height)
			if ok {
				radius := 3 + 3*max(transform.Scale.X(), transform.Scale.Z())
				vector.DrawFilledCircle(screen, center.X(), center.Y(), radius, modelColor, true)

				heading := transform.Rotation.Rotate(mgl32.Vec3{transform.Scale.X(), 0, 0})
				line(transform.Position, transform.Position.Add(heading), modelColor)
			}
		}

		if particle, ok := ecs.ComponentOf[*components.Particle](entity, components.ParticleKind); ok {
			drawParticles(screen, &camera, transform.Position, particle, width, height)
		}
	}

	for _, light := range ecs.Query[*components.PointLight](w, components.PointLightKind) {
		center, ok := camera.ScreenPoint(light.Position, width, height)
		if !ok {
			continue
		}

		vector.DrawFilledCircle(screen, center.X(), center.Y(), 4+2*light.Intensity, toColor(light.Color), true)
	}
}

// drawParticles places every live particle on a spiral rising from origin.
func drawParticles(screen *ebiten.Image, camera *components.PerspectiveCamera, origin mgl32.Vec3, particle *components.Particle, width, height float32) {
	const goldenAngle = 2.39996

	clr := toColor(particle.Color)
	for i, age := range particle.Ages {
		distance := age * particle.Speed
		angle := float64(i) * goldenAngle
		offset := mgl32.Vec3{
			float32(math.Cos(angle)) * distance * 0.3,
			distance,
			float32(math.Sin(angle)) * distance * 0.3,
		}

		p, ok := camera.ScreenPoint(origin.Add(offset), width, height)
		if !ok {
			continue
		}

		vector.DrawFilledCircle(screen, p.X(), p.Y(), max(1, particle.Size*10), clr, false)
	}
}

func toColor(c mgl32.Vec3) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1) * 255)
	}

	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 255}
}
