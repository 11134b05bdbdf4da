package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/yetislope/common"
	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/prefabs"
)

// Pursuit is a compiled yeti prefab. Step is pure: the same state and input
// always produce the same next state.
type Pursuit struct {
	spec prefabs.YetiSpec
}

// PursuitInput is what the yeti may observe each tick.
type PursuitInput struct {
	PlayerX float64
	Delta   float64
}

func NewPursuit(spec prefabs.YetiSpec) (*Pursuit, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("pursuit: %w", err)
	}
	spec.Phases = append([]prefabs.PursuitPhaseSpec(nil), spec.Phases...)
	return &Pursuit{spec: spec}, nil
}

// Spawn anchors a new yeti far behind the skier's position at trigger time.
func (p *Pursuit) Spawn(playerX float64) component.PursuitState {
	first := p.spec.Phases[component.PursuitApproach]
	x := playerX + p.spec.LateralOffset
	return component.PursuitState{
		Phase:      component.PursuitApproach,
		X:          x,
		Y:          p.spec.EmergeFrom,
		Z:          -p.spec.SpawnDistance,
		TargetX:    x,
		TargetZ:    first.TargetZ,
		ChaseSpeed: first.SpeedStart,
	}
}

// Step advances the pursuit by one tick. The phase can move at most one stage
// forward, and only once the yeti's own distance behind the skier drops
// below the current phase's exit threshold.
func (p *Pursuit) Step(prev component.PursuitState, in PursuitInput) component.PursuitState {
	next := prev

	last := component.PursuitPhase(len(p.spec.Phases) - 1)
	if prev.Phase < 0 || prev.Phase > last {
		next.Phase = component.PursuitApproach
	}
	if next.Phase < last && math.Abs(prev.Z) < p.spec.Phases[next.Phase].ExitWithin {
		next.Phase++
		next.ChaseSpeed = math.Max(next.ChaseSpeed, p.spec.Phases[next.Phase].SpeedStart)
	}
	phase := p.spec.Phases[next.Phase]

	switch next.Phase {
	case component.PursuitApproach:
		next.TargetX = in.PlayerX + p.spec.LateralOffset
		next.ChaseSpeed = math.Min(next.ChaseSpeed+phase.SpeedRamp, phase.SpeedMax)
		next.Y = math.Min(0, prev.Y+p.spec.EmergeRate)
	case component.PursuitChase:
		next.TargetX = common.Lerp(prev.TargetX, in.PlayerX, phase.TrackBlend)
		next.ChaseSpeed = math.Min(next.ChaseSpeed+phase.SpeedRamp, phase.SpeedMax)
		next.Y = math.Min(0, prev.Y+p.spec.EmergeRate)
	case component.PursuitAttack:
		next.TargetX = common.Lerp(prev.TargetX, in.PlayerX, phase.TrackBlend)
		next.ChaseSpeed = phase.SpeedMax
		next.Y = 0
	}
	next.TargetZ = phase.TargetZ

	next.X = common.Lerp(prev.X, next.TargetX, p.spec.XBlend)
	next.Z = common.Lerp(prev.Z, next.TargetZ, next.ChaseSpeed)

	next.AnimTime = prev.AnimTime + common.ClampDelta(in.Delta)
	cycle := next.AnimTime * p.spec.AnimRate
	switch next.Phase {
	case component.PursuitAttack:
		next.ArmAngle = math.Sin(cycle*2) * 1.2
		next.JumpHeight = math.Abs(math.Sin(cycle)) * 0.4
	case component.PursuitChase:
		next.ArmAngle = math.Sin(cycle) * 0.6
		next.JumpHeight = math.Abs(math.Sin(cycle)) * 0.2
	default:
		next.ArmAngle = math.Sin(cycle*0.5) * 0.3
		next.JumpHeight = 0
	}

	return next
}

// PursuitSystem steps every active yeti and reports every yeti's position.
type PursuitSystem struct {
	pursuit *Pursuit
}

func NewPursuitSystem(pursuit *Pursuit) *PursuitSystem {
	return &PursuitSystem{pursuit: pursuit}
}

func (s *PursuitSystem) Update(w *ecs.World) {
	if w == nil || s.pursuit == nil {
		return
	}

	frame := frameOf(w)
	ecs.ForEach(w, component.YetiComponent.Kind(), func(e ecs.Entity, y *component.Yeti) {
		if y.Active {
			y.State = s.pursuit.Step(y.State, PursuitInput{PlayerX: frame.PlayerX, Delta: frame.Delta})
		}
		frame.Report(component.HazardReport{
			Kind:   component.HazardYeti,
			Entity: uint64(e),
			Pos:    cp.Vector{X: y.State.X, Y: y.State.Z},
		})
	})
}
