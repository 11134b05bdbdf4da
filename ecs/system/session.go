package system

import (
	"log"

	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/prefabs"
)

const (
	scoreTimerID   = "session.score"
	recoverTimerID = "session.recover"
	yetiTimerID    = "session.yeti"
)

// SessionSystem owns score, crash recovery and the yeti trigger. Every
// delayed transition is a timeline entry so tearing the session down cancels
// all of them at once.
type SessionSystem struct {
	spec    prefabs.SessionSpec
	pursuit *Pursuit
	debug   bool
}

func NewSessionSystem(tuning prefabs.TuningSpec, pursuit *Pursuit, debug bool) *SessionSystem {
	return &SessionSystem{spec: tuning.Session, pursuit: pursuit, debug: debug}
}

// Start creates the session record and arms the score ticker.
func (s *SessionSystem) Start(w *ecs.World) *component.Session {
	sess, ok := sessionOf(w)
	if !ok {
		sess = &component.Session{}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.SessionComponent.Kind(), sess); err != nil {
			panic("session system: add session: " + err.Error())
		}
	}
	w.Timeline().Every(s.spec.ScoreInterval, scoreTimerID, s.tick)
	return sess
}

func (s *SessionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case EventCrash:
			s.crash(w)
		case EventCaught:
			s.catch(w)
		}
	}

	if sess, ok := sessionOf(w); ok {
		if _, player, _, ok := playerOf(w); ok {
			player.Crashed = sess.Crashed
		}
	}
}

func (s *SessionSystem) tick(w *ecs.World) {
	sess, ok := sessionOf(w)
	if !ok || sess.Crashed || sess.Caught {
		return
	}
	sess.Score += s.spec.ScoreIncrement
	if sess.Score >= s.spec.YetiTriggerScore {
		s.TriggerYeti(w)
	}
}

func (s *SessionSystem) crash(w *ecs.World) {
	sess, ok := sessionOf(w)
	if !ok || sess.Crashed || sess.Caught {
		return
	}
	now := w.Timeline().Now()
	if s.debug {
		log.Printf("session: crashed at %v with score %d", now, sess.Score)
	}
	sess.Crashed = true
	sess.HasCrashed = true
	sess.Score = 0
	sess.LastCrash = now
	sess.Crashes++
	w.Timeline().After(s.spec.RecoveryDelay, recoverTimerID, s.recover)
}

func (s *SessionSystem) recover(w *ecs.World) {
	sess, ok := sessionOf(w)
	if !ok || sess.Caught {
		return
	}
	if yetiAttacking(w) {
		if s.debug {
			log.Printf("session: recovery suppressed, yeti is attacking")
		}
		return
	}
	sess.Crashed = false
	if _, player, _, ok := playerOf(w); ok {
		player.Crashed = false
	}
	if s.debug {
		log.Printf("session: recovered at %v", w.Timeline().Now())
	}
}

func (s *SessionSystem) catch(w *ecs.World) {
	sess, ok := sessionOf(w)
	if !ok || sess.Caught {
		return
	}
	sess.Caught = true
	sess.Crashed = true
	tl := w.Timeline()
	tl.Cancel(scoreTimerID)
	tl.Cancel(recoverTimerID)
	tl.Cancel(yetiTimerID)
	if s.debug {
		log.Printf("session: caught at %v after %d crashes", tl.Now(), sess.Crashes)
	}
}

// TriggerYeti shows the warning and places a dormant yeti behind the skier.
// It has no effect after the first call in a session.
func (s *SessionSystem) TriggerYeti(w *ecs.World) {
	sess, ok := sessionOf(w)
	if !ok || sess.YetiTriggered || s.pursuit == nil {
		return
	}
	sess.YetiTriggered = true
	sess.WarningVisible = true

	var anchor float64
	if _, _, t, ok := playerOf(w); ok {
		anchor = t.X
	}
	e := ecs.CreateEntity(w)
	yeti := &component.Yeti{State: s.pursuit.Spawn(anchor)}
	if err := ecs.Add(w, e, component.YetiComponent.Kind(), yeti); err != nil {
		panic("session system: add yeti: " + err.Error())
	}
	if s.debug {
		log.Printf("session: yeti triggered at score %d", sess.Score)
	}

	w.Timeline().After(s.spec.YetiDelay, yetiTimerID, func(w *ecs.World) {
		sess, ok := sessionOf(w)
		if !ok || sess.Caught {
			return
		}
		sess.YetiAttacking = true
		sess.WarningVisible = false
		if y, ok := ecs.Get(w, e, component.YetiComponent.Kind()); ok {
			y.Active = true
		}
		if s.debug {
			log.Printf("session: yeti released")
		}
	})
}

func yetiAttacking(w *ecs.World) bool {
	attacking := false
	ecs.ForEach(w, component.YetiComponent.Kind(), func(_ ecs.Entity, y *component.Yeti) {
		if y.Active && y.State.Phase == component.PursuitAttack {
			attacking = true
		}
	})
	return attacking
}
