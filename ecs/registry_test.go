package ecs_test

import (
	"errors"
	"testing"

	"github.com/plus3/scenery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentRegistry(t *testing.T) {
	t.Run("resolves registered kinds", func(t *testing.T) {
		components, _ := newTestRegistries()

		factory, ok := components.Resolve(PositionKind)
		require.True(t, ok)

		c := factory()
		assert.IsType(t, &Position{}, c)
		assert.Nil(t, c.Entity())

		assert.Equal(t, []ecs.Kind{LabelKind, PositionKind}, components.Kinds())
	})

	t.Run("unknown kinds are reported", func(t *testing.T) {
		components, _ := newTestRegistries()

		_, ok := components.Resolve("missing")
		assert.False(t, ok)

		_, err := components.New("missing")
		assert.True(t, errors.Is(err, ecs.ErrUnknownComponent))
	})

	t.Run("factories return fresh instances", func(t *testing.T) {
		components, _ := newTestRegistries()

		a, err := components.New(PositionKind)
		require.NoError(t, err)
		b, err := components.New(PositionKind)
		require.NoError(t, err)

		assert.NotSame(t, a, b)
	})

	t.Run("last registration wins and logs a warning", func(t *testing.T) {
		logger, buf := bufferLogger()

		components := ecs.NewComponentRegistry()
		components.SetLogger(logger)
		ecs.RegisterComponent[Position](components, "thing")
		ecs.RegisterComponent[Label](components, "thing")

		c, err := components.New("thing")
		require.NoError(t, err)
		assert.IsType(t, &Label{}, c)
		assert.Contains(t, buf.String(), "registered twice")
		assert.Contains(t, buf.String(), "kind=thing")
	})

	t.Run("registries are isolated", func(t *testing.T) {
		a, _ := newTestRegistries()
		b := ecs.NewComponentRegistry()

		_, ok := a.Resolve(PositionKind)
		assert.True(t, ok)

		_, ok = b.Resolve(PositionKind)
		assert.False(t, ok)
	})
}

func TestSystemRegistry(t *testing.T) {
	t.Run("resolves registered types", func(t *testing.T) {
		_, systems := newTestRegistries()

		s, err := systems.New("recorder")
		require.NoError(t, err)
		assert.IsType(t, &RecorderSystem{}, s)

		assert.Equal(t, []string{"broken", "recorder"}, systems.Types())
	})

	t.Run("unknown types are reported", func(t *testing.T) {
		_, systems := newTestRegistries()

		_, ok := systems.Resolve("NoSuchSystem")
		assert.False(t, ok)

		_, err := systems.New("NoSuchSystem")
		assert.True(t, errors.Is(err, ecs.ErrUnknownSystem))
	})

	t.Run("last registration wins and logs a warning", func(t *testing.T) {
		logger, buf := bufferLogger()

		systems := ecs.NewSystemRegistry()
		systems.SetLogger(logger)
		ecs.RegisterSystem[RecorderSystem](systems, "thing")
		systems.Register("thing", func() ecs.System { return &BrokenSystem{} })

		s, err := systems.New("thing")
		require.NoError(t, err)
		assert.IsType(t, &BrokenSystem{}, s)
		assert.Contains(t, buf.String(), "registered twice")
	})
}
