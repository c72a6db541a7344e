package systems

import "gonum.org/v1/gonum/spatial/r3"

// Interaction is the outcome of one pairwise update.
type Interaction uint8

const (
	InteractionNone     Interaction = iota // a galaxy is still spawning
	InteractionAttract                     // velocities changed
	InteractionAbsorbB                     // A absorbed B
	InteractionAbsorbA                     // B absorbed A
)

// Merged reports whether the pair merged.
func (i Interaction) Merged() bool {
	return i == InteractionAbsorbA || i == InteractionAbsorbB
}

// String returns a short name for logs.
func (i Interaction) String() string {
	switch i {
	case InteractionAttract:
		return "attract"
	case InteractionAbsorbB:
		return "absorb_b"
	case InteractionAbsorbA:
		return "absorb_a"
	default:
		return "none"
	}
}

// UpdateVelocities applies the pairwise law to galaxies a and b.
//
// Overlapping galaxies merge: the larger absorbs mergeFactor of the smaller's
// diameter, and on equal diameters b absorbs a. Otherwise both are pulled
// together with an inverse-square acceleration; the diameter ratio scales the
// deltas so the smaller galaxy moves more. Momentum is not conserved.
func UpdateVelocities(a, b Body, mergeFactor, attraction, dt float64) Interaction {
	if a.Galaxy.Spawning || b.Galaxy.Spawning {
		return InteractionNone
	}

	dA := a.Galaxy.Diameter
	dB := b.Galaxy.Diameter

	diff := planar(r3.Sub(b.Transform.Position, a.Transform.Position))
	dist := r3.Norm(diff)

	if dist < 0.5*(dA+dB) {
		if dA > dB {
			a.ChangeSize(mergeFactor * dB)
			return InteractionAbsorbB
		}
		b.ChangeSize(mergeFactor * dA)
		return InteractionAbsorbA
	}

	// A galaxy shrunk to nothing has no mass ratio.
	if dA <= 0 || dB <= 0 {
		return InteractionNone
	}

	dir := r3.Scale(1/dist, diff)
	ratio := dB / dA

	deltaV := r3.Scale(attraction/(dist*dist)*dt, dir)
	a.Motion.Velocity = r3.Add(a.Motion.Velocity, r3.Scale(ratio, deltaV))
	b.Motion.Velocity = r3.Sub(b.Motion.Velocity, r3.Scale(1/ratio, deltaV))

	return InteractionAttract
}
