package ecs_test

import (
	"context"
	"testing"

	"github.com/plus3/scenery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("removals are applied after the tick", func(t *testing.T) {
		w := newTestWorld()
		doomed := w.CreateEntity()
		doomed.Add(&Label{Text: "doomed"})
		w.CreateEntity()

		seen := 0
		require.NoError(t, w.AddSystem(ctx, &FuncSystem{Fn: func(_ float64, w *ecs.World) error {
			for entity := range ecs.With(w, LabelKind) {
				w.Commands().RemoveEntity(entity)
			}
			seen = w.EntityCount()
			return nil
		}}))

		require.NoError(t, w.Update(0.016))
		assert.Equal(t, 2, seen)
		assert.Equal(t, 1, w.EntityCount())
		assert.Zero(t, w.Commands().Len())
	})

	t.Run("deferred functions run in order", func(t *testing.T) {
		w := newTestWorld()

		var order []int
		w.Commands().Defer(func() { order = append(order, 1) })
		w.Commands().Defer(func() { order = append(order, 2) })
		assert.Equal(t, 2, w.Commands().Len())

		w.Commands().Flush(w)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("operations queued while flushing wait for the next flush", func(t *testing.T) {
		w := newTestWorld()

		runs := 0
		w.Commands().Defer(func() {
			w.Commands().Defer(func() { runs++ })
		})

		w.Commands().Flush(w)
		assert.Zero(t, runs)
		assert.Equal(t, 1, w.Commands().Len())

		w.Commands().Flush(w)
		assert.Equal(t, 1, runs)
	})

	t.Run("queued system removals of unknown systems are logged", func(t *testing.T) {
		logger, buf := bufferLogger()
		components, systems := newTestRegistries()
		w := ecs.NewWorld(components, systems, ecs.WithLogger(logger))

		w.Commands().RemoveSystem(ctx, &RecorderSystem{Label: "stranger"})
		w.Commands().Flush(w)

		assert.Contains(t, buf.String(), "Deferred system removal failed")
	})
}
