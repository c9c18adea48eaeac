// Command scene-viewer loads a scene configuration and shows it in a window together with
// the Dear ImGui debug windows.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenery/ecs/debugui"
	debugui_ebiten "github.com/plus3/scenery/ecs/debugui/ebiten"
	"github.com/plus3/scenery/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "", "Path of the scene configuration (YAML or JSON).")
	width := flag.Int("width", 1280, "Window width.")
	height := flag.Int("height", 720, "Window height.")
	verbose := flag.Bool("v", false, "Log debug output.")
	flag.Parse()

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	w, report, err := bootstrap.LoadWorld(ctx, *configPath, logger)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *configPath, err)
	}

	if len(report.Diagnostics) > 0 {
		logger.Warn("Scene loaded with problems", slog.Int("diagnostics", len(report.Diagnostics)))
	}

	backend := debugui_ebiten.NewImguiBackend("Scene Viewer - "+*configPath, *width, *height)

	imguiSystem := &debugui.ImguiSystem{}
	if err := w.AddSystem(ctx, imguiSystem); err != nil {
		log.Fatalf("Failed to add the debug UI: %v", err)
	}

	if err := w.AddSystem(ctx, &CameraControl{Input: &imguiSystem.InputState}); err != nil {
		log.Fatalf("Failed to add the camera control: %v", err)
	}

	debugui.SpawnDebugUI(w)

	playback := debugui.NewPlayback()
	w.CreateEntity().Add(&debugui.ImguiItem{Render: playback.Render})

	game := &debugui_ebiten.Game{
		World:     w,
		Backend:   backend,
		DrawScene: drawScene,
		Playback:  playback,
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Viewer stopped: %v", err)
	}

	if err := w.Close(ctx); err != nil {
		logger.Warn("Closing the world failed", slog.Any("error", err))
	}
}
