package system

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/yetislope/common"
	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/prefabs"
)

const reshuffleTimerID = "obstacles.reshuffle"

// PredictZ leads a hazard's depth by a fraction of this frame's advance so a
// hit registers when the tree visibly reaches the skier. Close trees lead
// less to avoid phantom hits.
func PredictZ(z, advance float64) float64 {
	dist := math.Abs(z)
	factor := 1.0
	switch {
	case dist < 5:
		factor = 0.2
	case dist < 15:
		factor = 0.5
	}
	return z - advance*factor
}

// ObstacleSystem spawns trees far down the slope, moves them toward the
// skier, recycles them once they are behind and reports predicted positions.
type ObstacleSystem struct {
	spec      prefabs.ObstacleSpec
	placement Placement
	rng       *rand.Rand
	lastX     float64
}

func NewObstacleSystem(tuning prefabs.TuningSpec, placement Placement, rng *rand.Rand) *ObstacleSystem {
	if placement == nil {
		lo, hi := tuning.SpawnBounds()
		placement = UniformPlacement{MinX: lo, MaxX: hi}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &ObstacleSystem{spec: tuning.Obstacles, placement: placement, rng: rng}
}

// Spawn creates the configured number of trees with depths staggered evenly
// up to the spawn distance.
func (s *ObstacleSystem) Spawn(w *ecs.World) []ecs.Entity {
	count := s.spec.Count
	if count < 1 {
		count = 1
	}
	out := make([]ecs.Entity, 0, count)
	for i := 0; i < count; i++ {
		e := ecs.CreateEntity(w)
		o := &component.Obstacle{}
		s.respawn(o)
		o.Z = s.spec.SpawnDistance * float64(i+1) / float64(count)
		o.PredictedZ = o.Z
		if err := ecs.Add(w, e, component.ObstacleComponent.Kind(), o); err != nil {
			panic("obstacle system: add obstacle: " + err.Error())
		}
		out = append(out, e)
	}
	return out
}

// Schedule arms the periodic reshuffle that respawns far trees early.
func (s *ObstacleSystem) Schedule(w *ecs.World) {
	w.Timeline().Every(s.spec.ReshuffleInterval, reshuffleTimerID, s.reshuffle)
}

func (s *ObstacleSystem) reshuffle(w *ecs.World) {
	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle) {
		if o.Z <= s.spec.ReshuffleMinZ {
			return
		}
		if s.rng.Float64() < s.spec.ReshuffleChance {
			s.respawn(o)
			o.PredictedZ = o.Z
		}
	})
}

func (s *ObstacleSystem) respawn(o *component.Obstacle) {
	o.X = s.placement.NextX(s.rng.Float64(), s.lastX, o.Spawns)
	o.Z = s.spec.SpawnDistance
	o.State = component.ObstacleSpawned
	o.Spawns++
	s.lastX = o.X
}

func (s *ObstacleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	frame := frameOf(w)
	advance := common.FrameAdvance(s.spec.Speed, frame.Delta)

	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(e ecs.Entity, o *component.Obstacle) {
		if o.State == component.ObstacleSpawned {
			o.State = component.ObstacleAdvancing
		}
		o.Z -= advance
		if o.Z < s.spec.RecycleBelow {
			s.respawn(o)
		}
		o.PredictedZ = PredictZ(o.Z, advance)

		frame.Report(component.HazardReport{
			Kind:   component.HazardTree,
			Entity: uint64(e),
			Pos:    cp.Vector{X: o.X, Y: o.PredictedZ},
		})
	})
}
