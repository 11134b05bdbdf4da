package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/prefabs"
)

const (
	EventCrash  = "crash"
	EventCaught = "caught"
)

// Outcome is the result of one tick's collision pass.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCrash
	OutcomeCaught
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCrash:
		return "crash"
	case OutcomeCaught:
		return "caught"
	default:
		return "none"
	}
}

// Collision is an outcome and the report that caused it.
type Collision struct {
	Outcome Outcome
	Hazard  component.HazardReport
}

// CollisionInput is everything one detection pass looks at.
type CollisionInput struct {
	PlayerX float64
	// Crashed skips trees only. The yeti is still checked so an attack can
	// end a run whose recovery it suppressed.
	Crashed    bool
	Caught     bool
	HasCrashed bool
	// LastCrash and Now define the tree grace window after a crash.
	LastCrash     time.Duration
	Now           time.Duration
	YetiAttacking bool
	Reports       []component.HazardReport
}

// DetectCollision checks the skier against this tick's hazard reports. A catch
// wins over a crash in the same tick. The yeti is checked while the skier is
// down so an attack can still end a run that would otherwise never recover.
func DetectCollision(in CollisionInput, spec prefabs.CollisionSpec) Collision {
	if in.Caught {
		return Collision{}
	}

	checkTrees := !in.Crashed && !(in.HasCrashed && in.Now-in.LastCrash < spec.Grace)

	// the skier always sits at depth 0
	skier := cp.Vector{X: in.PlayerX}

	var crash *component.HazardReport
	for i := range in.Reports {
		r := &in.Reports[i]
		if !finite(r.Pos.X) || !finite(r.Pos.Y) {
			continue
		}
		offset := r.Pos.Sub(skier)
		dx := math.Abs(offset.X)
		switch r.Kind {
		case component.HazardYeti:
			if in.YetiAttacking && dx < spec.YetiDistance && math.Abs(offset.Y) < spec.YetiDepth {
				return Collision{Outcome: OutcomeCaught, Hazard: *r}
			}
		case component.HazardTree:
			if crash != nil || !checkTrees {
				continue
			}
			if offset.Y > -spec.TreeDepth && offset.Y < 0 && dx < spec.TreeDistance {
				crash = r
			}
		}
	}

	if crash != nil {
		return Collision{Outcome: OutcomeCrash, Hazard: *crash}
	}
	return Collision{}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CollisionSystem runs detection with the skier's current position and
// publishes the outcome as an event for the session.
type CollisionSystem struct {
	spec prefabs.CollisionSpec
}

func NewCollisionSystem(tuning prefabs.TuningSpec) *CollisionSystem {
	return &CollisionSystem{spec: tuning.Collision}
}

func (c *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	_, _, t, ok := playerOf(w)
	if !ok {
		return
	}
	sess, ok := sessionOf(w)
	if !ok {
		return
	}

	frame := frameOf(w)
	result := DetectCollision(CollisionInput{
		PlayerX:       t.X,
		Crashed:       sess.Crashed,
		Caught:        sess.Caught,
		HasCrashed:    sess.HasCrashed,
		LastCrash:     sess.LastCrash,
		Now:           frame.Now,
		YetiAttacking: sess.YetiAttacking,
		Reports:       frame.Reports,
	}, c.spec)
	frame.Collision = result

	switch result.Outcome {
	case OutcomeCrash:
		w.Events().Push(ecs.Event{Type: EventCrash, Data: result})
	case OutcomeCaught:
		w.Events().Push(ecs.Event{Type: EventCaught, Data: result})
	}
}
