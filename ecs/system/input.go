package system

import (
	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
)

// Intent is a logical control, independent of the physical key.
type Intent int

const (
	IntentSteerLeft Intent = iota
	IntentSteerRight
	IntentLookBehind
)

// KeySource reports whether an intent's key is currently held.
type KeySource interface {
	Pressed(intent Intent) bool
}

// InputSystem polls held keys once per tick.
type InputSystem struct {
	keys KeySource
}

func NewInputSystem(keys KeySource) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var state component.Input
	if i.keys != nil {
		state.SteerLeft = i.keys.Pressed(IntentSteerLeft)
		state.SteerRight = i.keys.Pressed(IntentSteerRight)
		state.LookBehind = i.keys.Pressed(IntentLookBehind)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = state
	})
}
