// Package bootstrap builds worlds with every component and system of this module registered,
// the way the commands load scene files.
package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/plus3/scenery/components"
	"github.com/plus3/scenery/ecs"
	"github.com/plus3/scenery/systems"
	"github.com/rotisserie/eris"
)

// NewWorld returns an empty world. Model sources are resolved relative to baseDir.
func NewWorld(baseDir string, logger *slog.Logger, opts ...ecs.Option) *ecs.World {
	componentRegistry := ecs.NewComponentRegistry()
	componentRegistry.SetLogger(logger)
	components.RegisterDefaults(componentRegistry, FileModelLoader{BaseDir: baseDir})

	systemRegistry := ecs.NewSystemRegistry()
	systemRegistry.SetLogger(logger)
	systems.RegisterDefaults(systemRegistry)

	opts = append([]ecs.Option{ecs.WithLogger(logger)}, opts...)
	return ecs.NewWorld(componentRegistry, systemRegistry, opts...)
}

// LoadWorld reads the scene file at path and loads it into a new world.
func LoadWorld(ctx context.Context, path string, logger *slog.Logger) (*ecs.World, *ecs.LoadReport, error) {
	cfg, err := ecs.LoadConfigFile(path)
	if err != nil {
		return nil, nil, err
	}

	w := NewWorld(filepath.Dir(path), logger)

	report, err := w.LoadFromConfig(ctx, cfg)
	if err != nil {
		return nil, report, err
	}

	return w, report, nil
}

// FileModelLoader checks that model sources exist on disk and uses the resolved path as handle.
type FileModelLoader struct {
	BaseDir string
}

func (l FileModelLoader) Load(_ context.Context, source string) (any, error) {
	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.BaseDir, path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(err, "model %q", source)
	}

	return path, nil
}
