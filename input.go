package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/yetislope/ecs/system"
)

const stickDeadzone = 0.2

// Keyboard maps held keys and the first gamepad onto steering intents.
type Keyboard struct{}

func (Keyboard) Pressed(intent system.Intent) bool {
	switch intent {
	case system.IntentSteerLeft:
		return ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || stickX() < -stickDeadzone
	case system.IntentSteerRight:
		return ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) || stickX() > stickDeadzone
	case system.IntentLookBehind:
		if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			return true
		}
		if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
			return ebiten.IsStandardGamepadButtonPressed(gamepads[0], ebiten.StandardGamepadButtonFrontBottomLeft)
		}
	}
	return false
}

func stickX() float64 {
	gamepads := ebiten.AppendGamepadIDs(nil)
	if len(gamepads) == 0 {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(gamepads[0], ebiten.StandardGamepadAxisLeftStickHorizontal)
}
