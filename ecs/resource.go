package ecs

import "reflect"

// SetResource stores a world-wide singleton of type T, replacing any previous one.
func SetResource[T any](w *World, value *T) {
	if w == nil {
		return
	}
	if w.resources == nil {
		w.resources = make(map[reflect.Type]any)
	}
	w.resources[reflect.TypeFor[T]()] = value
}

// GetResource returns the singleton of type T if one was stored.
func GetResource[T any](w *World) (*T, bool) {
	if w == nil || w.resources == nil {
		return nil, false
	}
	v, ok := w.resources[reflect.TypeFor[T]()].(*T)
	return v, ok && v != nil
}
