package component

import (
	"errors"
	"sync/atomic"
)

// Errors returned when attaching a component to a world.
var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentKind identifies one component store. The zero value is invalid.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind allocates a fresh store id. Each call yields a distinct
// kind even for the same T.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the package-level name a component type is registered
// under, e.g. ObstacleComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// ComponentID keys a world's sparse sets. Ids start at 1.
type ComponentID uint32

// shared across worlds so kinds declared at init stay unique
var nextComponentID atomic.Uint32
