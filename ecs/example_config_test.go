package ecs_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/plus3/scenery/ecs"
)

// ExampleWorld_LoadFromConfig builds a world from a YAML document. The entity
// inherits x from the prefab and overrides y.
func ExampleWorld_LoadFromConfig() {
	cfg, err := ecs.ParseConfig(strings.NewReader(`
systems:
  - type: recorder
    properties:
      label: tick
  - type: NoSuchSystem
prefabs:
  P:
    position: {x: 1}
    label: {text: from prefab}
entities:
  - prefab: P
    components:
      position: {y: 2}
`))
	if err != nil {
		panic(err)
	}

	w := newTestWorld()
	report, err := w.LoadFromConfig(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	entity := report.Entities[0]
	pos, _ := ecs.ComponentOf[*Position](entity, PositionKind)
	label, _ := ecs.ComponentOf[*Label](entity, LabelKind)

	fmt.Printf("systems=%d diagnostics=%d\n", w.SystemCount(), len(report.Diagnostics))
	fmt.Printf("x=%.0f y=%.0f label=%q\n", pos.X, pos.Y, label.Text)

	// Output:
	// systems=1 diagnostics=1
	// x=1 y=2 label="from prefab"
}
