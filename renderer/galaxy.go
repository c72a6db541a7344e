package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/camera"
)

// Disc is one galaxy to draw on the ground plane.
type Disc struct {
	Position r3.Vec
	Angle    float64 // degrees about the ground normal
	Scale    float64 // rendered diameter
	R, G, B  float64 // tint in [0, 1]
	Spawning bool
}

// GalaxyRenderer draws galaxies as flat tinted discs in 3D.
type GalaxyRenderer struct {
	cam rl.Camera3D
}

// NewGalaxyRenderer creates a renderer that mirrors cam.
func NewGalaxyRenderer(cam *camera.Camera) *GalaxyRenderer {
	r := &GalaxyRenderer{}
	r.Sync(cam)
	return r
}

// Sync copies the pose of cam into the raylib camera.
func (r *GalaxyRenderer) Sync(cam *camera.Camera) {
	r.cam = rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     vec3(cam.Target),
		Up:         vec3(cam.Up),
		Fovy:       float32(cam.FovY),
		Projection: rl.CameraPerspective,
	}
}

// Begin enters 3D mode.
func (r *GalaxyRenderer) Begin() { rl.BeginMode3D(r.cam) }

// End leaves 3D mode.
func (r *GalaxyRenderer) End() { rl.EndMode3D() }

// Draw renders one disc with a spiral arm marker showing its rotation.
// Must be called between Begin and End.
func (r *GalaxyRenderer) Draw(d Disc) {
	if d.Scale <= 0 {
		return
	}
	radius := float32(d.Scale / 2)
	center := vec3(d.Position)

	alpha := uint8(230)
	if d.Spawning {
		alpha = 150
	}
	core := tint(d.R, d.G, d.B, alpha)
	halo := tint(d.R, d.G, d.B, alpha/3)

	rl.DrawCylinder(center, radius, radius, 0.02, 32, halo)
	rl.DrawCylinder(center, radius*0.55, radius*0.55, 0.04, 24, core)

	// Two arms, opposite each other, rotating with the galaxy.
	rad := d.Angle * math.Pi / 180
	for _, off := range [2]float64{0, math.Pi} {
		sin, cos := math.Sincos(rad + off)
		tip := rl.Vector3{
			X: center.X + radius*float32(cos),
			Y: center.Y + 0.05,
			Z: center.Z + radius*float32(sin),
		}
		rl.DrawLine3D(rl.Vector3{X: center.X, Y: center.Y + 0.05, Z: center.Z}, tip, rl.RayWhite)
	}
}

// DrawPushRing renders the expanding ring under the pointer while pushing.
// phase is in [0, 1).
func (r *GalaxyRenderer) DrawPushRing(pos r3.Vec, phase float64) {
	c := vec3(pos)
	c.Y += 0.01
	radius := float32(0.2 + 0.8*phase)
	a := uint8(255 * (1 - phase))
	rl.DrawCircle3D(c, radius, rl.Vector3{X: 1}, 90, rl.Color{R: 255, G: 255, B: 255, A: a})
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func tint(r, g, b float64, a uint8) rl.Color {
	return rl.Color{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: a}
}
