package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// ReferenceFrameRate is the display rate speeds are authored against.
	ReferenceFrameRate = 60.0
	// MaxFrameDelta caps a single frame's elapsed time in seconds.
	MaxFrameDelta = 0.05
)

// Lerp blends current toward target by t. Applied once per frame, so the
// effective smoothing depends on the frame rate.
func Lerp(current, target, t float64) float64 {
	return current*(1-t) + target*t
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampDelta bounds a frame delta so hitches and backgrounded tabs do not
// produce large jumps.
func ClampDelta(delta float64) float64 {
	if math.IsNaN(delta) {
		return 0
	}
	return Clamp(delta, 0, MaxFrameDelta)
}

// FrameAdvance converts a per-reference-frame speed into the distance covered
// during delta seconds.
func FrameAdvance(speed, delta float64) float64 {
	return speed * ClampDelta(delta) * ReferenceFrameRate
}
