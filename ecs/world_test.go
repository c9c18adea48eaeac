package ecs_test

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/plus3/scenery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldEntities(t *testing.T) {
	t.Run("identities are unique and strictly increasing from zero", func(t *testing.T) {
		w := newTestWorld()

		var last *ecs.Entity
		for i := range 100 {
			entity := w.CreateEntity()
			if i == 0 {
				assert.Equal(t, ecs.EntityId(0), entity.Id())
			} else {
				assert.Greater(t, entity.Id(), last.Id())
			}
			last = entity
		}

		assert.Equal(t, 100, w.EntityCount())
	})

	t.Run("identities are not reused after removal", func(t *testing.T) {
		w := newTestWorld()

		a := w.CreateEntity()
		w.RemoveEntity(a)
		b := w.CreateEntity()

		assert.Greater(t, b.Id(), a.Id())
	})

	t.Run("removed entities can no longer be found", func(t *testing.T) {
		w := newTestWorld()

		entity := w.CreateEntity()
		pos := &Position{X: 4}
		entity.Add(pos)
		id := entity.Id()

		w.RemoveEntity(entity)

		_, ok := w.FindEntity(func(e *ecs.Entity) bool { return e.Id() == id })
		assert.False(t, ok)

		_, ok = w.Entity(id)
		assert.False(t, ok)
		assert.Nil(t, pos.Entity())
		assert.Zero(t, w.EntityCount())
	})

	t.Run("removing twice or removing a foreign entity is a no-op", func(t *testing.T) {
		w := newTestWorld()
		other := newTestWorld()

		entity := w.CreateEntity()
		foreign := other.CreateEntity()

		w.RemoveEntity(foreign)
		w.RemoveEntity(nil)
		assert.Equal(t, 1, w.EntityCount())

		w.RemoveEntity(entity)
		w.RemoveEntity(entity)
		assert.Zero(t, w.EntityCount())
		assert.Equal(t, 1, other.EntityCount())
	})

	t.Run("entities snapshot is ordered by id", func(t *testing.T) {
		w := newTestWorld()
		for range 20 {
			w.CreateEntity()
		}

		entities := w.Entities()
		assert.True(t, slices.IsSortedFunc(entities, func(a, b *ecs.Entity) int {
			return cmp.Compare(a.Id(), b.Id())
		}))

		w.RemoveEntity(entities[0])
		assert.Len(t, entities, 20)
	})

	t.Run("find entity returns the first match", func(t *testing.T) {
		w := newTestWorld()
		w.CreateEntity()
		second := w.CreateEntity()
		second.Add(&Label{Text: "lamp"})
		third := w.CreateEntity()
		third.Add(&Label{Text: "lamp"})

		found, ok := w.FindEntity(func(e *ecs.Entity) bool {
			label, ok := ecs.ComponentOf[*Label](e, LabelKind)
			return ok && label.Text == "lamp"
		})
		require.True(t, ok)
		assert.Same(t, second, found)
	})
}

func TestWorldSystems(t *testing.T) {
	ctx := context.Background()

	t.Run("systems run in ascending priority, ties in registration order", func(t *testing.T) {
		priorities := []int{1, 0, 1, -1}

		for _, order := range permutations([]int{0, 1, 2, 3}) {
			w := newTestWorld()

			var log []string
			for _, idx := range order {
				s := &RecorderSystem{Label: string(rune('a' + idx)), Log: &log}
				s.SetPriority(priorities[idx])
				require.NoError(t, w.AddSystem(ctx, s))
			}

			expected := slices.Clone(order)
			slices.SortStableFunc(expected, func(a, b int) int {
				return cmp.Compare(priorities[a], priorities[b])
			})

			var want []string
			for _, idx := range expected {
				want = append(want, string(rune('a'+idx)))
			}

			require.NoError(t, w.Update(0.016))
			assert.Equal(t, want, log, "registration order %v", order)
		}
	})

	t.Run("disabled systems are skipped", func(t *testing.T) {
		w := newTestWorld()

		var log []string
		a := &RecorderSystem{Label: "a", Log: &log}
		b := &RecorderSystem{Label: "b", Log: &log}
		require.NoError(t, w.AddSystem(ctx, a))
		require.NoError(t, w.AddSystem(ctx, b))

		a.SetEnabled(false)
		require.NoError(t, w.Update(0.016))
		assert.Equal(t, []string{"b"}, log)

		a.SetEnabled(true)
		require.NoError(t, w.Update(0.016))
		assert.Equal(t, []string{"b", "a", "b"}, log)
	})

	t.Run("failed init excludes the system", func(t *testing.T) {
		w := newTestWorld()

		broken := &BrokenSystem{}
		err := w.AddSystem(ctx, broken)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ecs.ErrSystemInit))
		assert.Contains(t, err.Error(), "no GPU available")

		require.NoError(t, w.Update(0.016))
		assert.Zero(t, broken.Updates)
		assert.Zero(t, w.SystemCount())
	})

	t.Run("a panicking init excludes the system", func(t *testing.T) {
		w := newTestWorld()

		crashing := &CrashingSystem{}
		var err error
		require.NotPanics(t, func() { err = w.AddSystem(ctx, crashing) })
		assert.True(t, errors.Is(err, ecs.ErrSystemInit))
		assert.True(t, errors.Is(err, ecs.ErrSystemPanic))
		assert.Contains(t, err.Error(), "gpu lost")

		require.NoError(t, w.Update(0.016))
		assert.Zero(t, crashing.Updates)
		assert.Zero(t, w.SystemCount())
	})

	t.Run("retired systems cannot be added again", func(t *testing.T) {
		w := newTestWorld()

		removed := &RecorderSystem{Label: "removed"}
		require.NoError(t, w.AddSystem(ctx, removed))
		require.NoError(t, w.RemoveSystem(ctx, removed))

		err := w.AddSystem(ctx, removed)
		assert.True(t, errors.Is(err, ecs.ErrSystemRetired))

		broken := &BrokenSystem{}
		require.Error(t, w.AddSystem(ctx, broken))
		err = w.AddSystem(ctx, broken)
		assert.True(t, errors.Is(err, ecs.ErrSystemRetired))

		closed := &RecorderSystem{Label: "closed"}
		require.NoError(t, w.AddSystem(ctx, closed))
		require.NoError(t, w.Close(ctx))
		err = w.AddSystem(ctx, closed)
		assert.True(t, errors.Is(err, ecs.ErrSystemRetired))

		require.NoError(t, w.Update(0.016))
		assert.Zero(t, removed.Updates)
		assert.Zero(t, broken.Updates)
		assert.Zero(t, closed.Updates)
		assert.Equal(t, 1, removed.Destroyed)
		assert.Equal(t, 1, closed.Destroyed)

		// a fresh instance of the same type is fine
		require.NoError(t, w.AddSystem(ctx, &RecorderSystem{Label: "removed"}))
		assert.Equal(t, 1, w.SystemCount())
	})

	t.Run("a failing or panicking system does not stop the tick", func(t *testing.T) {
		w := newTestWorld()

		var log []string
		failing := &FuncSystem{Fn: func(float64, *ecs.World) error {
			return errors.New("shader compile error")
		}}
		panicking := &FuncSystem{Fn: func(float64, *ecs.World) error {
			panic("index out of range")
		}}
		after := &RecorderSystem{Label: "after", Log: &log}

		require.NoError(t, w.AddSystem(ctx, failing))
		require.NoError(t, w.AddSystem(ctx, panicking))
		require.NoError(t, w.AddSystem(ctx, after))

		require.NoError(t, w.Update(0.016))
		require.NoError(t, w.Update(0.016))
		assert.Equal(t, []string{"after", "after"}, log)

		stats := w.Stats()
		assert.Equal(t, int64(4), stats.TotalErrors)
		assert.Equal(t, int64(2), stats.Systems[0].ErrorCount)
		assert.True(t, errors.Is(stats.Systems[1].LastError, ecs.ErrSystemPanic))

		// failing systems stay scheduled
		assert.Equal(t, 3, w.SystemCount())
	})

	t.Run("systems added during a tick start on the next tick", func(t *testing.T) {
		w := newTestWorld()

		var log []string
		late := &RecorderSystem{Label: "late", Log: &log}
		spawner := &FuncSystem{}
		spawner.Fn = func(_ float64, w *ecs.World) error {
			log = append(log, "spawner")
			if w.SystemCount() == 1 {
				return w.AddSystem(ctx, late)
			}
			return nil
		}

		require.NoError(t, w.AddSystem(ctx, spawner))
		require.NoError(t, w.Update(0.016))
		assert.Equal(t, []string{"spawner"}, log)
		assert.Equal(t, 2, w.SystemCount())

		require.NoError(t, w.Update(0.016))
		assert.Equal(t, []string{"spawner", "spawner", "late"}, log)
	})

	t.Run("systems removed during a tick are destroyed after it", func(t *testing.T) {
		w := newTestWorld()

		var log []string
		victim := &RecorderSystem{Label: "victim", Log: &log}
		remover := &FuncSystem{Fn: func(_ float64, w *ecs.World) error {
			return w.RemoveSystem(ctx, victim)
		}}

		require.NoError(t, w.AddSystem(ctx, remover))
		require.NoError(t, w.AddSystem(ctx, victim))

		require.NoError(t, w.Update(0.016))
		assert.Equal(t, []string{"victim"}, log)
		assert.Equal(t, 1, victim.Destroyed)

		require.NoError(t, w.Update(0.016))
		assert.Equal(t, []string{"victim"}, log)
		assert.Equal(t, 1, w.SystemCount())
	})

	t.Run("remove destroys once and rejects unknown systems", func(t *testing.T) {
		w := newTestWorld()

		s := &RecorderSystem{Label: "s"}
		require.NoError(t, w.AddSystem(ctx, s))
		require.NoError(t, w.RemoveSystem(ctx, s))
		assert.Equal(t, 1, s.Destroyed)

		err := w.RemoveSystem(ctx, s)
		assert.True(t, errors.Is(err, ecs.ErrSystemNotFound))
		assert.Equal(t, 1, s.Destroyed)
	})

	t.Run("close destroys every system once in reverse order", func(t *testing.T) {
		w := newTestWorld()

		var destroyed []string
		a := &RecorderSystem{Label: "a", DestroyLog: &destroyed}
		b := &RecorderSystem{Label: "b", DestroyLog: &destroyed}
		require.NoError(t, w.AddSystem(ctx, a))
		require.NoError(t, w.AddSystem(ctx, b))

		require.NoError(t, w.Close(ctx))
		require.NoError(t, w.Close(ctx))

		assert.Equal(t, []string{"b", "a"}, destroyed)
		assert.Equal(t, 1, a.Destroyed)
		assert.Equal(t, 1, b.Destroyed)
		assert.Zero(t, w.SystemCount())

		require.NoError(t, w.Update(0.016))
		assert.Zero(t, a.Updates)
	})

	t.Run("negative and NaN deltas are clamped to zero", func(t *testing.T) {
		w := newTestWorld()

		var seen []float64
		require.NoError(t, w.AddSystem(ctx, &FuncSystem{Fn: func(dt float64, _ *ecs.World) error {
			seen = append(seen, dt)
			return nil
		}}))

		require.NoError(t, w.Update(-1))
		require.NoError(t, w.Update(math.NaN()))
		require.NoError(t, w.Update(0.5))
		assert.Equal(t, []float64{0, 0, 0.5}, seen)
	})
}

func TestWorldBusyDuringLoad(t *testing.T) {
	ctx := context.Background()

	components, systems := newTestRegistries()
	w := ecs.NewWorld(components, systems, ecs.WithLogger(discardLogger()))

	var updateErr, loadErr error
	components.Register("hook", func() ecs.Component {
		return &hookComponent{onDeserialize: func() {
			updateErr = w.Update(0.016)
			_, loadErr = w.LoadFromConfig(ctx, &ecs.Config{})
		}}
	})

	recorder := &RecorderSystem{Label: "r"}
	require.NoError(t, w.AddSystem(ctx, recorder))

	_, err := w.LoadFromConfig(ctx, &ecs.Config{
		Entities: []ecs.EntityDef{{Components: ecs.ComponentDefs{"hook": {}}}},
	})
	require.NoError(t, err)

	assert.True(t, errors.Is(updateErr, ecs.ErrWorldBusy))
	assert.True(t, errors.Is(loadErr, ecs.ErrWorldBusy))
	assert.Zero(t, recorder.Updates)

	require.NoError(t, w.Update(0.016))
	assert.Equal(t, 1, recorder.Updates)
}

type hookComponent struct {
	ecs.ComponentBase
	onDeserialize func()
}

func (p *hookComponent) Kind() ecs.Kind { return "hook" }

func (p *hookComponent) Deserialize(context.Context, ecs.Data) error {
	p.onDeserialize()
	return nil
}

func (p *hookComponent) Serialize() ecs.Data { return ecs.Data{} }

func (p *hookComponent) Clone() ecs.Component {
	return &hookComponent{onDeserialize: p.onDeserialize}
}

func permutations(items []int) [][]int {
	if len(items) <= 1 {
		return [][]int{slices.Clone(items)}
	}

	var out [][]int
	for idx, item := range items {
		rest := slices.Concat(items[:idx], items[idx+1:])
		for _, perm := range permutations(rest) {
			out = append(out, append([]int{item}, perm...))
		}
	}
	return out
}

func TestLoadSurvivesPanics(t *testing.T) {
	ctx := context.Background()

	components, systems := newTestRegistries()
	components.Register("hook", func() ecs.Component {
		return &hookComponent{onDeserialize: func() { panic("corrupt mesh") }}
	})
	ecs.RegisterSystem[CrashingSystem](systems, "crashing")

	w := ecs.NewWorld(components, systems, ecs.WithLogger(discardLogger()))

	var report *ecs.LoadReport
	var err error
	require.NotPanics(t, func() {
		report, err = w.LoadFromConfig(ctx, &ecs.Config{
			Systems: []ecs.SystemDef{{Type: "crashing"}, {Type: "recorder"}},
			Entities: []ecs.EntityDef{{Components: ecs.ComponentDefs{
				"hook":       {},
				PositionKind: {"x": 1},
			}}},
		})
	})
	require.NoError(t, err)

	require.Len(t, report.Diagnostics, 2)
	assert.True(t, errors.Is(report.Diagnostics[0], ecs.ErrSystemPanic))
	assert.True(t, errors.Is(report.Diagnostics[1], ecs.ErrComponentPanic))

	assert.Equal(t, 1, w.SystemCount())
	require.Len(t, report.Entities, 1)
	assert.Equal(t, []ecs.Kind{PositionKind}, report.Entities[0].Kinds())
}
