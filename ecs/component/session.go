package component

import "time"

// Session is the per-run score and crash bookkeeping. Times are on the
// session clock.
type Session struct {
	Score          int
	Crashed        bool
	Caught         bool
	HasCrashed     bool
	LastCrash      time.Duration
	Crashes        int
	YetiTriggered  bool
	YetiAttacking  bool
	WarningVisible bool
}

var SessionComponent = NewComponent[Session]()
