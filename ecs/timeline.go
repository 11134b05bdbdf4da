package ecs

import (
	"container/heap"
	"time"
)

// TimerAction runs when a timeline entry comes due.
type TimerAction func(w *World)

type timerEntry struct {
	id       string
	deadline time.Duration
	period   time.Duration
	seq      uint64
	action   TimerAction
	index    int
}

type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline == h[j].deadline {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline < h[j].deadline
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	entry := x.(*timerEntry)
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*h = old[:n-1]
	return entry
}

// Timeline is a deadline-ordered queue of actions driven by an explicit
// session clock. Time only moves forward through Advance.
type Timeline struct {
	now     time.Duration
	seq     uint64
	entries timerHeap
	byID    map[string]*timerEntry
}

// Now returns the clock value of the last Advance.
func (t *Timeline) Now() time.Duration {
	return t.now
}

// After schedules action to run once, delay after the current clock. An entry
// already pending under id is replaced.
func (t *Timeline) After(delay time.Duration, id string, action TimerAction) {
	t.schedule(id, t.now+delay, 0, action)
}

// Every schedules action to run each period, starting one period from now.
// Non-positive periods are ignored.
func (t *Timeline) Every(period time.Duration, id string, action TimerAction) {
	if period <= 0 {
		return
	}
	t.schedule(id, t.now+period, period, action)
}

func (t *Timeline) schedule(id string, deadline, period time.Duration, action TimerAction) {
	if action == nil {
		return
	}
	t.Cancel(id)
	if t.byID == nil {
		t.byID = make(map[string]*timerEntry)
	}
	t.seq++
	entry := &timerEntry{id: id, deadline: deadline, period: period, seq: t.seq, action: action}
	heap.Push(&t.entries, entry)
	t.byID[id] = entry
}

// Cancel drops the entry pending under id. It reports whether one existed.
func (t *Timeline) Cancel(id string) bool {
	entry, ok := t.byID[id]
	if !ok {
		return false
	}
	delete(t.byID, id)
	if entry.index >= 0 {
		heap.Remove(&t.entries, entry.index)
	}
	return true
}

// Pending reports whether an entry is scheduled under id.
func (t *Timeline) Pending(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// Len returns the number of pending entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Advance moves the clock to now and runs every entry whose deadline has
// passed, in deadline order. Repeating entries fire once per elapsed period.
// Actions may schedule or cancel entries, including their own.
func (t *Timeline) Advance(now time.Duration, w *World) {
	if now < t.now {
		return
	}
	t.now = now
	for len(t.entries) > 0 && t.entries[0].deadline <= now {
		entry := heap.Pop(&t.entries).(*timerEntry)
		if entry.period > 0 {
			entry.deadline += entry.period
			t.seq++
			entry.seq = t.seq
			heap.Push(&t.entries, entry)
		} else {
			delete(t.byID, entry.id)
		}
		entry.action(w)
	}
}

// Clear drops every pending entry.
func (t *Timeline) Clear() {
	t.entries = nil
	t.byID = nil
}
