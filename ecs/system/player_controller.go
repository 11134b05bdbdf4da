package system

import (
	"github.com/milk9111/yetislope/common"
	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/prefabs"
)

// PlayerControllerSystem steers the skier: intents move TargetX by a fixed
// step and the rendered X trails it.
type PlayerControllerSystem struct {
	spec prefabs.PlayerSpec
	minX float64
	maxX float64
}

func NewPlayerControllerSystem(tuning prefabs.TuningSpec) *PlayerControllerSystem {
	lo, hi := tuning.PlayerBounds()
	return &PlayerControllerSystem{spec: tuning.Player, minX: lo, maxX: hi}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, player, t, ok := playerOf(w)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}

	// camera only, never affects collision math
	player.LookBehind = input.LookBehind

	if player.Crashed {
		return
	}
	if sess, ok := sessionOf(w); ok && (sess.Crashed || sess.Caught) {
		return
	}

	player.TargetX = common.Clamp(player.TargetX+input.SteerX()*p.spec.MoveSpeed, p.minX, p.maxX)
	t.X = common.Clamp(common.Lerp(t.X, player.TargetX, p.spec.Blend), p.minX, p.maxX)
	t.Rotation = (player.TargetX - t.X) * p.spec.Lean
}
