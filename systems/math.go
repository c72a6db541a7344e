package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// WrapAngle wraps an angle in degrees into (-180, 180].
// Works for any delta, not just single-step overshoot.
func WrapAngle(deg float64) float64 {
	if deg > -180 && deg <= 180 {
		return deg
	}
	wrapped := deg - 360*math.Ceil((deg-180)/360)
	// Guard against rounding landing exactly on the excluded bound
	if wrapped <= -180 {
		wrapped += 360
	}
	return wrapped
}

// planar projects a vector onto the ground plane.
func planar(v r3.Vec) r3.Vec {
	v.Y = 0
	return v
}

// clampMin returns v, or floor when v is smaller.
func clampMin(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
