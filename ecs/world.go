package ecs

import (
	"reflect"

	"github.com/milk9111/yetislope/ecs/component"
)

// World owns entities, component stores, singleton resources, the event
// queue and the session timeline.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	resources map[reflect.Type]any
	events    EventQueue
	timeline  Timeline
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		resources: make(map[reflect.Type]any),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle. It
// returns false when e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in id order.
func Entities(w *World) []Entity {
	if w == nil || w.entities.count == 0 {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i, alive := range w.entities.alive {
		if alive {
			out = append(out, makeEntity(entityID(i+1), w.entities.gens[i]))
		}
	}
	return out
}

// Clear destroys every entity and drops pending events and timers.
func Clear(w *World) {
	if w == nil {
		return
	}
	for _, e := range Entities(w) {
		DestroyEntity(w, e)
	}
	w.events.flush()
	w.timeline.Clear()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Timeline returns the world's timed-action queue.
func (w *World) Timeline() *Timeline {
	if w == nil {
		return nil
	}
	return &w.timeline
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
