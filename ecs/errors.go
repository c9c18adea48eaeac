package ecs

import "github.com/rotisserie/eris"

var (
	// ErrUnknownComponent is returned when a component kind has no factory in the registry.
	ErrUnknownComponent = eris.New("unknown component kind")

	// ErrUnknownSystem is returned when a system type has no factory in the registry.
	ErrUnknownSystem = eris.New("unknown system type")

	// ErrUnknownPrefab is reported when an entity definition names a prefab that was never registered.
	ErrUnknownPrefab = eris.New("unknown prefab")

	// ErrFieldType is wrapped by Data accessors when a field holds a value of an incompatible type.
	ErrFieldType = eris.New("incompatible field type")

	// ErrSystemInit wraps the error returned by a failing Init hook.
	ErrSystemInit = eris.New("system init failed")

	// ErrSystemPanic is recorded when a system panics during Init or Update.
	ErrSystemPanic = eris.New("system panicked")

	// ErrComponentPanic is reported when a component panics while deserializing configuration.
	ErrComponentPanic = eris.New("component panicked")

	// ErrSystemRetired is returned when adding a system that was destroyed or failed to initialize.
	ErrSystemRetired = eris.New("system is retired")

	// ErrSystemNotFound is returned when removing a system that is not registered with the world.
	ErrSystemNotFound = eris.New("system not registered")

	// ErrWorldBusy is returned by Update while a LoadFromConfig call is in flight.
	ErrWorldBusy = eris.New("world is loading")
)
