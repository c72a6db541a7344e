// Package systems contains the galaxy simulation rules.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/components"
)

// collapseThreshold is the fraction of the collapse size where the pulse starts.
const collapseThreshold = 0.85

// Body is a view over one galaxy's components.
// Component pointers are only valid until the next structural change of the world.
type Body struct {
	Entity    ecs.Entity
	Transform *components.Transform
	Motion    *components.Motion
	Galaxy    *components.Galaxy
}

// Diameter returns the galaxy's current diameter.
func (b Body) Diameter() float64 {
	return b.Galaxy.Diameter
}

// ChangeSize adds diff to the diameter. The diameter never drops below zero.
func (b Body) ChangeSize(diff float64) {
	b.Galaxy.Diameter = clampMin(b.Galaxy.Diameter+diff, 0)
	b.Transform.Scale = b.Galaxy.Diameter
}

// IsGreaterOrEqual reports whether the diameter is at least size.
func (b Body) IsGreaterOrEqual(size float64) bool {
	return b.Galaxy.Diameter >= size
}

// ApplyPush pushes the galaxy away from the pusher with an inverse-square falloff.
// The squared distance is floored at a quarter of the squared diameter so a pusher
// sitting on top of a galaxy cannot fling it to infinity.
func (b Body) ApplyPush(pusher r3.Vec, strength, dt float64) {
	diff := planar(r3.Sub(b.Transform.Position, pusher))

	sqDist := r3.Norm2(diff)
	if sqDist == 0 {
		return
	}
	d := b.Galaxy.Diameter
	sqDist = clampMin(sqDist, 0.25*d*d)

	dir := r3.Scale(1/math.Sqrt(r3.Norm2(diff)), diff)
	b.Motion.Velocity = r3.Add(b.Motion.Velocity, r3.Scale(strength/sqDist*dt, dir))
}

// Update integrates motion and rotation for one tick and returns the diameter
// so the caller can keep a running total.
func (b Body) Update(dt, diffusion, collapseSize float64) float64 {
	tr := b.Transform
	mo := b.Motion

	tr.Position = r3.Add(tr.Position, r3.Scale(dt, mo.Velocity))
	mo.Velocity = r3.Scale(diffusion, mo.Velocity)

	tr.Angle = WrapAngle(tr.Angle + mo.RotationSpeed*dt)

	d := b.Galaxy.Diameter
	if !b.Galaxy.Spawning {
		tr.Scale = d
		if collapseSize > 0 && d >= collapseThreshold*collapseSize {
			speed := d / collapseSize
			tr.Scale = d * (0.975 + 0.05*math.Sin(tr.Angle*speed))
		}
	}

	return d
}

// Intersect reports whether a circle of the given radius at point overlaps the galaxy.
func (b Body) Intersect(point r3.Vec, radius float64) bool {
	diff := planar(r3.Sub(b.Transform.Position, point))
	minDist := 0.5*b.Galaxy.Extent() + radius
	return r3.Norm2(diff) < minDist*minDist
}
