// Package camera provides a perspective camera that maps screen points onto
// the ground plane (y = 0) and back.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half-line from Origin along unit Direction.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// Camera is a pinhole camera with a vertical field of view.
// Screen coordinates have their origin at the top-left, y pointing down.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	FovY     float64 // degrees

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Cached orthonormal basis
	forward, right, up r3.Vec
	tanHalf            float64
}

// New creates a camera and computes its basis.
func New(position, target, up r3.Vec, fovY, viewportW, viewportH float64) *Camera {
	c := &Camera{
		Position:  position,
		Target:    target,
		Up:        up,
		FovY:      fovY,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
	c.update()
	return c
}

// update recomputes the basis after a change of pose or field of view.
func (c *Camera) update() {
	c.forward = r3.Unit(r3.Sub(c.Target, c.Position))
	c.right = r3.Unit(r3.Cross(c.forward, c.Up))
	c.up = r3.Cross(c.right, c.forward)
	c.tanHalf = math.Tan(c.FovY * math.Pi / 360)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// LookAt moves the camera and recomputes its basis.
func (c *Camera) LookAt(position, target r3.Vec) {
	c.Position = position
	c.Target = target
	c.update()
}

func (c *Camera) aspect() float64 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// ScreenPointToRay returns the ray through a screen point.
func (c *Camera) ScreenPointToRay(sx, sy float64) Ray {
	ndcX := 2*sx/c.ViewportW - 1
	ndcY := 1 - 2*sy/c.ViewportH

	dir := c.forward
	dir = r3.Add(dir, r3.Scale(ndcX*c.tanHalf*c.aspect(), c.right))
	dir = r3.Add(dir, r3.Scale(ndcY*c.tanHalf, c.up))

	return Ray{Origin: c.Position, Direction: r3.Unit(dir)}
}

// RaycastGround intersects a ray with the ground plane.
// Returns false when the ray is parallel to the plane or points away from it.
func RaycastGround(r Ray) (r3.Vec, bool) {
	const eps = 1e-9
	if math.Abs(r.Direction.Y) < eps {
		return r3.Vec{}, false
	}
	t := -r.Origin.Y / r.Direction.Y
	if t < 0 {
		return r3.Vec{}, false
	}
	hit := r.At(t)
	hit.Y = 0
	return hit, true
}

// ScreenToGround maps a screen point to the ground plane.
func (c *Camera) ScreenToGround(sx, sy float64) (r3.Vec, bool) {
	return RaycastGround(c.ScreenPointToRay(sx, sy))
}

// Viewport returns the screen dimensions.
func (c *Camera) Viewport() (w, h float64) {
	return c.ViewportW, c.ViewportH
}

// WorldToScreen projects a world point onto the screen.
// Returns false for points behind the camera.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy float64, ok bool) {
	d := r3.Sub(p, c.Position)
	z := r3.Dot(d, c.forward)
	if z <= 0 {
		return 0, 0, false
	}
	x := r3.Dot(d, c.right) / (z * c.tanHalf * c.aspect())
	y := r3.Dot(d, c.up) / (z * c.tanHalf)

	sx = (x + 1) / 2 * c.ViewportW
	sy = (1 - y) / 2 * c.ViewportH
	return sx, sy, true
}

// PixelsPerUnit returns how many screen pixels one world unit spans at p,
// measured vertically.
func (c *Camera) PixelsPerUnit(p r3.Vec) float64 {
	z := r3.Dot(r3.Sub(p, c.Position), c.forward)
	if z <= 0 {
		return 0
	}
	return c.ViewportH / (2 * z * c.tanHalf)
}
