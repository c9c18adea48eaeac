package ecs_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/plus3/scenery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

type scenarioWant struct {
	Diagnostics int      `yaml:"diagnostics"`
	Systems     []string `yaml:"systems"`
	Entities    []struct {
		Kinds  []ecs.Kind            `yaml:"kinds"`
		Fields map[ecs.Kind]ecs.Data `yaml:"fields"`
	} `yaml:"entities"`
}

func TestLoadFromConfigScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")

		t.Run(name, func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)

			files := make(map[string][]byte)
			for _, file := range archive.Files {
				files[file.Name] = file.Data
			}
			require.Contains(t, files, "config.yaml")
			require.Contains(t, files, "want.yaml")

			cfg, err := ecs.ParseConfig(bytes.NewReader(files["config.yaml"]))
			require.NoError(t, err)

			var want scenarioWant
			require.NoError(t, yaml.Unmarshal(files["want.yaml"], &want))

			w := newTestWorld()
			report, err := w.LoadFromConfig(context.Background(), cfg)
			require.NoError(t, err)

			assert.Len(t, report.Diagnostics, want.Diagnostics, "diagnostics: %v", report.Diagnostics)
			if want.Diagnostics == 0 {
				assert.NoError(t, report.Err())
			}

			var systems []string
			for _, stats := range w.Stats().Systems {
				systems = append(systems, stats.Name)
			}
			assert.Equal(t, want.Systems, systems)
			assert.Len(t, report.Systems, len(want.Systems))

			entities := w.Entities()
			require.Len(t, entities, len(want.Entities))
			assert.Equal(t, entities, report.Entities)

			for idx, wantEntity := range want.Entities {
				entity := entities[idx]

				kinds := entity.Kinds()
				slices.Sort(kinds)
				assert.Equal(t, wantEntity.Kinds, kinds, "entities[%d]", idx)

				for kind, fields := range wantEntity.Fields {
					component := entity.Get(kind)
					require.NotNil(t, component, "entities[%d].%s", idx, kind)
					assert.Same(t, entity, component.Entity())

					got := component.Serialize()
					for field, value := range fields {
						if f, ok := value.(float64); ok {
							assert.InDelta(t, f, got[field], 1e-9, "entities[%d].%s.%s", idx, kind, field)
						} else {
							assert.Equal(t, value, got[field], "entities[%d].%s.%s", idx, kind, field)
						}
					}
				}
			}
		})
	}
}

func TestLoadFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("camera and scene sections build dedicated entities", func(t *testing.T) {
		components, systems := newTestRegistries()
		w := ecs.NewWorld(components, systems,
			ecs.WithLogger(discardLogger()),
			ecs.WithCameraKind(PositionKind),
			ecs.WithSceneKind(LabelKind))

		report, err := w.LoadFromConfig(ctx, &ecs.Config{
			Camera: ecs.Data{"x": 4, "y": 2},
			Scene:  ecs.Data{"text": "night"},
		})
		require.NoError(t, err)
		require.NoError(t, report.Err())

		camera, ok := ecs.ComponentOf[*Position](w.Camera(), PositionKind)
		require.True(t, ok)
		assert.Equal(t, 4.0, camera.X)

		scene, ok := ecs.ComponentOf[*Label](w.Scene(), LabelKind)
		require.True(t, ok)
		assert.Equal(t, "night", scene.Text)

		assert.Same(t, w.Camera(), report.Camera)
		assert.Same(t, w.Scene(), report.Scene)
		assert.Equal(t, ecs.EntityId(0), w.Camera().Id())
		assert.Equal(t, ecs.EntityId(1), w.Scene().Id())

		w.RemoveEntity(w.Camera())
		assert.Nil(t, w.Camera())
	})

	t.Run("a camera section of an unknown kind is skipped", func(t *testing.T) {
		w := newTestWorld()

		report, err := w.LoadFromConfig(ctx, &ecs.Config{
			Camera: ecs.Data{"fov": 60},
		})
		require.NoError(t, err)

		require.Len(t, report.Diagnostics, 1)
		assert.True(t, errors.Is(report.Diagnostics[0], ecs.ErrUnknownComponent))
		assert.Contains(t, report.Diagnostics[0].Error(), "camera")
		assert.Nil(t, w.Camera())
		assert.Zero(t, w.EntityCount())
	})

	t.Run("unknown systems leave the system count unaffected", func(t *testing.T) {
		w := newTestWorld()

		report, err := w.LoadFromConfig(ctx, &ecs.Config{
			Systems: []ecs.SystemDef{{Type: "NoSuchSystem"}},
		})
		require.NoError(t, err)

		assert.Zero(t, w.SystemCount())
		assert.Empty(t, w.Entities())
		require.Len(t, report.Diagnostics, 1)
		assert.True(t, errors.Is(report.Diagnostics[0], ecs.ErrUnknownSystem))
		assert.Contains(t, report.Diagnostics[0].Error(), "systems[0]")
	})

	t.Run("properties are applied to fresh system instances", func(t *testing.T) {
		w := newTestWorld()

		_, err := w.LoadFromConfig(ctx, &ecs.Config{
			Systems: []ecs.SystemDef{
				{Type: "recorder", Properties: ecs.Data{"label": "first", "enabled": false}},
				{Type: "recorder", Properties: ecs.Data{"label": "second"}},
			},
		})
		require.NoError(t, err)

		systems := w.Systems()
		require.Len(t, systems, 2)
		assert.NotSame(t, systems[0], systems[1])

		first := systems[0].(*RecorderSystem)
		second := systems[1].(*RecorderSystem)
		assert.Equal(t, "first", first.Label)
		assert.False(t, first.Enabled())

		require.NoError(t, w.Update(0.016))
		assert.Zero(t, first.Updates)
		assert.Equal(t, 1, second.Updates)
	})

	t.Run("prefabs are stored verbatim and not instantiated", func(t *testing.T) {
		w := newTestWorld()

		defs := ecs.ComponentDefs{PositionKind: {"x": 1}}
		report, err := w.LoadFromConfig(ctx, &ecs.Config{
			Prefabs: map[string]ecs.ComponentDefs{"b": defs, "a": {}},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, report.Prefabs)
		assert.Equal(t, []string{"a", "b"}, w.Prefabs())
		assert.Zero(t, w.EntityCount())

		stored, ok := w.Prefab("b")
		require.True(t, ok)
		assert.Equal(t, defs, stored)
	})

	t.Run("a cancelled context aborts the load", func(t *testing.T) {
		w := newTestWorld()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := w.LoadFromConfig(cancelled, &ecs.Config{
			Entities: []ecs.EntityDef{{Components: ecs.ComponentDefs{LabelKind: {}}}},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Zero(t, w.EntityCount())

		// the world accepts new loads afterwards
		_, err = w.LoadFromConfig(ctx, &ecs.Config{})
		assert.NoError(t, err)
	})

	t.Run("diagnostics are logged", func(t *testing.T) {
		logger, buf := bufferLogger()
		components, systems := newTestRegistries()
		w := ecs.NewWorld(components, systems, ecs.WithLogger(logger))

		_, err := w.LoadFromConfig(ctx, &ecs.Config{
			Entities: []ecs.EntityDef{{Prefab: "ghost"}},
		})
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "Skipping config entry")
		assert.Contains(t, buf.String(), "entities[0]")
		assert.Contains(t, buf.String(), "World loaded")
	})
}

func TestInstantiate(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld()

	w.RegisterPrefab("rock", ecs.ComponentDefs{
		PositionKind: {"x": 1, "y": 1, "tags": []any{"heavy"}},
	})

	a, errs := w.Instantiate(ctx, "rock", ecs.ComponentDefs{PositionKind: {"y": 5}})
	require.Empty(t, errs)
	b, errs := w.Instantiate(ctx, "rock", nil)
	require.Empty(t, errs)

	posA, _ := ecs.ComponentOf[*Position](a, PositionKind)
	posB, _ := ecs.ComponentOf[*Position](b, PositionKind)

	assert.Equal(t, 1.0, posA.X)
	assert.Equal(t, 5.0, posA.Y)
	assert.Equal(t, 1.0, posB.Y)

	posA.Tags[0] = "light"
	assert.Equal(t, []string{"heavy"}, posB.Tags)

	_, errs = w.Instantiate(ctx, "boulder", nil)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ecs.ErrUnknownPrefab))
}

func TestParseConfig(t *testing.T) {
	t.Run("empty documents yield an empty config", func(t *testing.T) {
		cfg, err := ecs.ParseConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, cfg.Systems)
		assert.Empty(t, cfg.Entities)
	})

	t.Run("malformed documents fail", func(t *testing.T) {
		_, err := ecs.ParseConfig(strings.NewReader("systems: [type: {"))
		assert.Error(t, err)
	})

	t.Run("sections decode into plain data", func(t *testing.T) {
		cfg, err := ecs.ParseConfig(strings.NewReader(`
systems:
  - type: grass-animation
    properties: {speed: 2}
camera:
  fov: 45
  position: [0, 2, 8]
scene:
  background: "#101820"
`))
		require.NoError(t, err)

		require.Len(t, cfg.Systems, 1)
		assert.Equal(t, "grass-animation", cfg.Systems[0].Type)
		assert.Equal(t, 2, cfg.Systems[0].Properties["speed"])

		var position [3]float32
		require.NoError(t, cfg.Camera.Vec3("position", &position))
		assert.Equal(t, [3]float32{0, 2, 8}, position)
		assert.Equal(t, "#101820", cfg.Scene["background"])
	})

	t.Run("missing files are reported", func(t *testing.T) {
		_, err := ecs.LoadConfigFile(filepath.Join("testdata", "missing.yaml"))
		assert.Error(t, err)
	})
}
