package system

import (
	"time"

	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
)

// Frame is the per-tick context every system reads. The simulation refreshes
// it before the scheduler runs, so PlayerX is the previous tick's value.
type Frame struct {
	Delta     float64
	Now       time.Duration
	Tick      uint64
	PlayerX   float64
	Reports   []component.HazardReport
	Collision Collision
}

// Report adds a hazard position for this tick's collision pass.
func (f *Frame) Report(r component.HazardReport) {
	f.Reports = append(f.Reports, r)
}

func (f *Frame) reset(delta float64, now time.Duration, playerX float64) {
	f.Delta = delta
	f.Now = now
	f.Tick++
	f.PlayerX = playerX
	f.Reports = f.Reports[:0]
	f.Collision = Collision{}
}

// frameOf returns the world's frame, installing an empty one when a system
// runs outside a simulation (tests).
func frameOf(w *ecs.World) *Frame {
	if f, ok := ecs.GetResource[Frame](w); ok {
		return f
	}
	f := &Frame{}
	ecs.SetResource(w, f)
	return f
}

func sessionOf(w *ecs.World) (*component.Session, bool) {
	e, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.SessionComponent.Kind())
}

func playerOf(w *ecs.World) (ecs.Entity, *component.Player, *component.Transform, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	p, pok := ecs.Get(w, e, component.PlayerComponent.Kind())
	t, tok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !pok || !tok {
		return 0, nil, nil, false
	}
	return e, p, t, true
}
