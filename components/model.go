package components

import (
	"context"

	"github.com/plus3/scenery/ecs"
	"github.com/rotisserie/eris"
)

const ModelKind ecs.Kind = "model"

// ModelLoader resolves a model source into a renderer handle.
type ModelLoader interface {
	Load(ctx context.Context, source string) (any, error)
}

// ModelLoaderFunc adapts a function to the ModelLoader interface.
type ModelLoaderFunc func(ctx context.Context, source string) (any, error)

func (f ModelLoaderFunc) Load(ctx context.Context, source string) (any, error) {
	return f(ctx, source)
}

// Model references a mesh asset. The Handle is owned by the loader and treated as
// immutable, so clones share it.
type Model struct {
	ecs.ComponentBase

	Source  string
	Visible bool

	// Handle is the loaded asset, or nil if no loader is configured.
	Handle any

	loader ModelLoader
}

// NewModel returns a visible model that resolves its source through loader.
// A nil loader leaves Handle unset.
func NewModel(loader ModelLoader) *Model {
	return &Model{Visible: true, loader: loader}
}

func (m *Model) Kind() ecs.Kind {
	return ModelKind
}

// Deserialize loads the asset when the source changes.
func (m *Model) Deserialize(ctx context.Context, data ecs.Data) error {
	source := m.Source
	visible := m.Visible

	if err := data.String("source", &source); err != nil {
		return err
	}

	if err := data.Bool("visible", &visible); err != nil {
		return err
	}

	switch {
	case source == "":
		m.Handle = nil

	case m.loader != nil && (source != m.Source || m.Handle == nil):
		handle, err := m.loader.Load(ctx, source)
		if err != nil {
			return eris.Wrapf(err, "failed to load model %q", source)
		}
		m.Handle = handle
	}

	m.Source = source
	m.Visible = visible
	return nil
}

func (m *Model) Serialize() ecs.Data {
	return ecs.Data{
		"source":  m.Source,
		"visible": m.Visible,
	}
}

func (m *Model) Clone() ecs.Component {
	clone := *m
	clone.ComponentBase = ecs.ComponentBase{}
	return &clone
}
