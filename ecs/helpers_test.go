package ecs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/plus3/scenery/ecs"
)

// Common test component types

const (
	PositionKind ecs.Kind = "position"
	LabelKind    ecs.Kind = "label"
)

type Position struct {
	ecs.ComponentBase
	X, Y float64
	Tags []string
}

func (p *Position) Kind() ecs.Kind { return PositionKind }

func (p *Position) Deserialize(_ context.Context, data ecs.Data) error {
	x, y, tags := p.X, p.Y, p.Tags
	err := errors.Join(
		data.Float64("x", &x),
		data.Float64("y", &y),
		data.Strings("tags", &tags),
	)
	if err != nil {
		return err
	}

	p.X, p.Y, p.Tags = x, y, tags
	return nil
}

func (p *Position) Serialize() ecs.Data {
	return ecs.Data{"x": p.X, "y": p.Y, "tags": slices.Clone(p.Tags)}
}

func (p *Position) Clone() ecs.Component {
	return &Position{X: p.X, Y: p.Y, Tags: slices.Clone(p.Tags)}
}

type Label struct {
	ecs.ComponentBase
	Text string
}

func (l *Label) Kind() ecs.Kind { return LabelKind }

func (l *Label) Deserialize(_ context.Context, data ecs.Data) error {
	return data.String("text", &l.Text)
}

func (l *Label) Serialize() ecs.Data { return ecs.Data{"text": l.Text} }

func (l *Label) Clone() ecs.Component { return &Label{Text: l.Text} }

// Common test system types

// RecorderSystem appends its label to a shared log on every update.
type RecorderSystem struct {
	ecs.SystemBase
	Label string
	Log   *[]string

	// DestroyLog receives the label when the system is destroyed.
	DestroyLog *[]string

	Updates   int
	Destroyed int
}

func (s *RecorderSystem) Name() string { return "recorder:" + s.Label }

func (s *RecorderSystem) Configure(props ecs.Data) error {
	if err := s.ConfigureBase(props); err != nil {
		return err
	}
	return props.String("label", &s.Label)
}

func (s *RecorderSystem) Update(_ float64, _ *ecs.World) error {
	s.Updates++
	if s.Log != nil {
		*s.Log = append(*s.Log, s.Label)
	}
	return nil
}

func (s *RecorderSystem) Destroy(_ context.Context, _ *ecs.World) error {
	s.Destroyed++
	if s.DestroyLog != nil {
		*s.DestroyLog = append(*s.DestroyLog, s.Label)
	}
	return nil
}

// BrokenSystem fails to initialize.
type BrokenSystem struct {
	Updates int
}

func (s *BrokenSystem) Init(_ context.Context, _ *ecs.World) error {
	return errors.New("no GPU available")
}

func (s *BrokenSystem) Update(_ float64, _ *ecs.World) error {
	s.Updates++
	return nil
}

// CrashingSystem panics in Init.
type CrashingSystem struct {
	Updates int
}

func (s *CrashingSystem) Init(_ context.Context, _ *ecs.World) error {
	panic("gpu lost")
}

func (s *CrashingSystem) Update(_ float64, _ *ecs.World) error {
	s.Updates++
	return nil
}

// FuncSystem runs an arbitrary update function.
type FuncSystem struct {
	ecs.SystemBase
	Fn func(dt float64, w *ecs.World) error
}

func (s *FuncSystem) Update(dt float64, w *ecs.World) error {
	return s.Fn(dt, w)
}

func newTestRegistries() (*ecs.ComponentRegistry, *ecs.SystemRegistry) {
	components := ecs.NewComponentRegistry()
	components.SetLogger(discardLogger())
	ecs.RegisterComponent[Position](components, PositionKind)
	ecs.RegisterComponent[Label](components, LabelKind)

	systems := ecs.NewSystemRegistry()
	systems.SetLogger(discardLogger())
	ecs.RegisterSystem[RecorderSystem](systems, "recorder")
	ecs.RegisterSystem[BrokenSystem](systems, "broken")

	return components, systems
}

func newTestWorld() *ecs.World {
	components, systems := newTestRegistries()
	return ecs.NewWorld(components, systems, ecs.WithLogger(discardLogger()))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}
