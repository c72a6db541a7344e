// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform is a galaxy's presentation state on the ground plane.
type Transform struct {
	Position r3.Vec  // Y stays on the ground plane
	Angle    float64 // heading in degrees, (-180, 180]
	Scale    float64 // rendered diameter (growth, pulse)
}

// Motion holds a galaxy's integrated motion state.
type Motion struct {
	Velocity      r3.Vec
	RotationSpeed float64 // degrees per second, fixed at creation
}

// Tint is an RGB colour in [0, 1].
type Tint struct {
	R, G, B float64
}
