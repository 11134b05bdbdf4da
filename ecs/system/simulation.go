package system

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/milk9111/yetislope/common"
	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/prefabs"
)

// MaxClockStep caps how far a single Step may move the session clock, so a
// long stall does not fire a burst of score ticks.
const MaxClockStep = 250 * time.Millisecond

// Options configures one session.
type Options struct {
	Tuning prefabs.TuningSpec
	Yeti   prefabs.YetiSpec
	Keys   KeySource
	Seed   int64
	Debug  bool
	// Placement overrides the policy named by the tuning when set.
	Placement Placement
}

// Simulation is one skiing session: a world, its systems and the session
// clock. It is driven from a single goroutine.
type Simulation struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	frame     *Frame
	obstacles *ObstacleSystem
	session   *SessionSystem
	player    ecs.Entity
	clock     time.Duration
}

func NewSimulation(opts Options) (*Simulation, error) {
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	pursuit, err := NewPursuit(opts.Yeti)
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	placement := opts.Placement
	if placement == nil {
		placement, err = NewPlacement(opts.Tuning)
		if err != nil {
			return nil, fmt.Errorf("simulation: %w", err)
		}
	}

	w := ecs.NewWorld()
	frame := &Frame{}
	ecs.SetResource(w, frame)

	player := ecs.CreateEntity(w)
	for _, err := range []error{
		ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{}),
		ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{}),
		ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}),
	} {
		if err != nil {
			return nil, fmt.Errorf("simulation: create player: %w", err)
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	obstacles := NewObstacleSystem(opts.Tuning, placement, rng)
	session := NewSessionSystem(opts.Tuning, pursuit, opts.Debug)

	s := &Simulation{
		world: w,
		scheduler: ecs.NewScheduler(
			NewInputSystem(opts.Keys),
			NewPlayerControllerSystem(opts.Tuning),
			obstacles,
			NewPursuitSystem(pursuit),
			NewCollisionSystem(opts.Tuning),
			session,
		),
		frame:     frame,
		obstacles: obstacles,
		session:   session,
		player:    player,
	}

	obstacles.Spawn(w)
	obstacles.Schedule(w)
	session.Start(w)
	return s, nil
}

// Step advances the session by delta seconds of wall time.
func (s *Simulation) Step(delta float64) {
	if s == nil || s.world == nil {
		return
	}

	switch {
	case delta > MaxClockStep.Seconds():
		s.clock += MaxClockStep
	case delta > 0:
		s.clock += time.Duration(delta * float64(time.Second))
	}

	playerX := 0.0
	if t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok {
		playerX = t.X
	}
	s.frame.reset(common.ClampDelta(delta), s.clock, playerX)

	s.world.Timeline().Advance(s.clock, s.world)
	s.scheduler.Update(s.world)
}

func (s *Simulation) World() *ecs.World {
	return s.world
}

// Session returns the live session record.
func (s *Simulation) Session() component.Session {
	if sess, ok := sessionOf(s.world); ok {
		return *sess
	}
	return component.Session{}
}

// Now returns the session clock.
func (s *Simulation) Now() time.Duration {
	return s.clock
}

// Frame returns the most recent tick's context.
func (s *Simulation) Frame() Frame {
	return *s.frame
}

// TriggerYeti starts the pursuit early, as if the score threshold was hit.
func (s *Simulation) TriggerYeti() {
	s.session.TriggerYeti(s.world)
}

// Over reports whether the skier has been caught.
func (s *Simulation) Over() bool {
	return s.Session().Caught
}

// Close cancels every pending timer and destroys all entities.
func (s *Simulation) Close() {
	if s == nil || s.world == nil {
		return
	}
	ecs.Clear(s.world)
}
