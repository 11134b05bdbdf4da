package system

import (
	"sort"
	"time"

	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
)

// TreeView is a tree as the renderer needs it.
type TreeView struct {
	X float64
	Z float64
}

// YetiView is the yeti as the renderer needs it.
type YetiView struct {
	X          float64
	Y          float64
	Z          float64
	Phase      component.PursuitPhase
	ArmAngle   float64
	JumpHeight float64
	Active     bool
}

// Snapshot is a read-only copy of everything drawn for one frame.
type Snapshot struct {
	PlayerX        float64
	PlayerY        float64
	PlayerRotation float64
	Crashed        bool
	Caught         bool
	LookBehind     bool
	Trees          []TreeView
	Yeti           *YetiView
	Score          int
	WarningVisible bool
	Now            time.Duration
}

// Snapshot copies the render state. Trees are ordered far to near so they can
// be painted in order.
func (s *Simulation) Snapshot() Snapshot {
	var snap Snapshot
	if s == nil || s.world == nil {
		return snap
	}
	snap.Now = s.clock

	if _, player, t, ok := playerOf(s.world); ok {
		snap.PlayerX = t.X
		snap.PlayerY = t.Y
		snap.PlayerRotation = t.Rotation
		snap.LookBehind = player.LookBehind
	}
	if sess, ok := sessionOf(s.world); ok {
		snap.Crashed = sess.Crashed
		snap.Caught = sess.Caught
		snap.Score = sess.Score
		snap.WarningVisible = sess.WarningVisible
	}

	ecs.ForEach(s.world, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle) {
		snap.Trees = append(snap.Trees, TreeView{X: o.X, Z: o.Z})
	})
	sort.Slice(snap.Trees, func(i, j int) bool { return snap.Trees[i].Z > snap.Trees[j].Z })

	if e, ok := ecs.First(s.world, component.YetiComponent.Kind()); ok {
		if y, ok := ecs.Get(s.world, e, component.YetiComponent.Kind()); ok {
			snap.Yeti = &YetiView{
				X:          y.State.X,
				Y:          y.State.Y + y.State.JumpHeight,
				Z:          y.State.Z,
				Phase:      y.State.Phase,
				ArmAngle:   y.State.ArmAngle,
				JumpHeight: y.State.JumpHeight,
				Active:     y.Active,
			}
		}
	}
	return snap
}
