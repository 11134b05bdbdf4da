package ecs

import (
	"testing"
	"time"
)

func TestTimelineOrdering(t *testing.T) {
	var fired []string
	tl := &Timeline{}
	record := func(name string) TimerAction {
		return func(*World) { fired = append(fired, name) }
	}

	tl.After(300*time.Millisecond, "c", record("c"))
	tl.After(100*time.Millisecond, "a", record("a"))
	tl.After(200*time.Millisecond, "b", record("b"))
	tl.After(200*time.Millisecond, "b2", record("b2"))

	tl.Advance(150*time.Millisecond, nil)
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("expected only a, got %v", fired)
	}

	tl.Advance(time.Second, nil)
	want := []string{"a", "b", "b2", "c"}
	if len(fired) != len(want) {
		t.Fatalf("expected %v, got %v", want, fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, fired)
		}
	}
	if tl.Len() != 0 {
		t.Fatalf("expected drained timeline, %d left", tl.Len())
	}
}

func TestTimelineEvery(t *testing.T) {
	tl := &Timeline{}
	count := 0
	tl.Every(100*time.Millisecond, "tick", func(*World) { count++ })

	tl.Advance(50*time.Millisecond, nil)
	if count != 0 {
		t.Fatalf("fired early: %d", count)
	}
	tl.Advance(350*time.Millisecond, nil)
	if count != 3 {
		t.Fatalf("expected 3 catch-up firings, got %d", count)
	}
	if !tl.Pending("tick") {
		t.Fatalf("repeating entry should stay pending")
	}

	tl.Every(0, "never", func(*World) { t.Fatal("zero period must not fire") })
	tl.Advance(time.Second, nil)
}

func TestTimelineCancelAndReplace(t *testing.T) {
	tl := &Timeline{}
	fired := map[string]int{}

	tl.After(100*time.Millisecond, "x", func(*World) { fired["old"]++ })
	tl.After(200*time.Millisecond, "x", func(*World) { fired["new"]++ })
	tl.After(100*time.Millisecond, "y", func(*World) { fired["y"]++ })

	if !tl.Cancel("y") || tl.Cancel("y") {
		t.Fatalf("cancel should succeed once")
	}

	tl.Advance(time.Second, nil)
	if fired["old"] != 0 || fired["new"] != 1 || fired["y"] != 0 {
		t.Fatalf("unexpected firings %v", fired)
	}
}

func TestTimelineActionCancelsItself(t *testing.T) {
	tl := &Timeline{}
	count := 0
	tl.Every(10*time.Millisecond, "self", func(*World) {
		count++
		tl.Cancel("self")
	})
	tl.Advance(100*time.Millisecond, nil)
	if count != 1 {
		t.Fatalf("expected a single firing, got %d", count)
	}
}

func TestTimelineClockDoesNotRewind(t *testing.T) {
	tl := &Timeline{}
	tl.Advance(time.Second, nil)
	tl.Advance(500*time.Millisecond, nil)
	if tl.Now() != time.Second {
		t.Fatalf("clock rewound to %v", tl.Now())
	}
	fired := false
	tl.After(0, "now", func(*World) { fired = true })
	tl.Advance(time.Second, nil)
	if !fired {
		t.Fatalf("zero delay entry should fire on the next advance")
	}
}
