// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenery/ecs"
	"github.com/plus3/scenery/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{EbitenBackend: backend}
}

// Game implements ebiten.Game: every Ebiten update ticks the World inside an ImGui frame.
type Game struct {
	World   *ecs.World
	Backend *ImguiBackend

	// DrawScene draws the world before the ImGui overlay. Optional.
	DrawScene func(screen *ebiten.Image, w *ecs.World)

	// Playback scales the delta passed to the world. Optional.
	Playback *debugui.Playback
}

func (g *Game) Update() error {
	// Begin ImGui frame before executing systems
	g.Backend.BeginFrame()

	dt := 1.0 / float64(ebiten.TPS())
	if g.Playback != nil {
		dt = g.Playback.Delta(dt)
	}

	err := g.World.Update(dt)

	// End ImGui frame after systems complete
	g.Backend.EndFrame()

	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawScene != nil {
		g.DrawScene(screen, g.World)
	}

	// Draw ImGui overlay on top
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
