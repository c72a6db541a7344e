package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/components"
)

func newBody(x, z, diameter float64) Body {
	return Body{
		Transform: &components.Transform{Position: r3.Vec{X: x, Z: z}, Scale: diameter},
		Motion:    &components.Motion{},
		Galaxy:    &components.Galaxy{Diameter: diameter, Target: diameter},
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{181, -179},
		{-181, 179},
		{360, 0},
		{540, 180},
		{-540, 180},
		{725, 5},
		{-725, -5},
	}
	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrapAngleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		in := (rng.Float64() - 0.5) * 1e5
		got := WrapAngle(in)
		if got <= -180 || got > 180 {
			t.Fatalf("WrapAngle(%v) = %v, outside (-180, 180]", in, got)
		}
	}
}

func TestUpdateDampsVelocity(t *testing.T) {
	b := newBody(0, 0, 1)
	b.Motion.Velocity = r3.Vec{X: 2, Z: -1}

	b.Update(1.0/60.0, 0.96, 12)

	want := r3.Vec{X: 2 * 0.96, Z: -1 * 0.96}
	if r3.Norm(r3.Sub(b.Motion.Velocity, want)) > 1e-12 {
		t.Errorf("velocity = %v, want %v", b.Motion.Velocity, want)
	}
	wantPos := r3.Vec{X: 2.0 / 60.0, Z: -1.0 / 60.0}
	if r3.Norm(r3.Sub(b.Transform.Position, wantPos)) > 1e-12 {
		t.Errorf("position = %v, want %v", b.Transform.Position, wantPos)
	}
}

func TestUpdateReturnsDiameterAndRotates(t *testing.T) {
	b := newBody(0, 0, 2)
	b.Motion.RotationSpeed = 90
	b.Transform.Angle = 170

	total := 0.0
	total += b.Update(0.5, 0.96, 12)

	if total != 2 {
		t.Errorf("total = %v, want 2", total)
	}
	// 170 + 45 = 215 -> -145
	if math.Abs(b.Transform.Angle-(-145)) > 1e-9 {
		t.Errorf("angle = %v, want -145", b.Transform.Angle)
	}
}

func TestUpdateCollapsePulse(t *testing.T) {
	tests := []struct {
		name     string
		diameter float64
		pulses   bool
	}{
		{"small", 5, false},
		{"just below threshold", 10.19, false},
		{"just above threshold", 10.21, true},
		{"large", 11.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBody(0, 0, tt.diameter)
			b.Transform.Angle = 30
			b.Update(0, 0.96, 12)

			speed := tt.diameter / 12
			pulsed := tt.diameter * (0.975 + 0.05*math.Sin(30*speed))
			if tt.pulses {
				if math.Abs(b.Transform.Scale-pulsed) > 1e-9 {
					t.Errorf("scale = %v, want %v", b.Transform.Scale, pulsed)
				}
			} else if b.Transform.Scale != tt.diameter {
				t.Errorf("scale = %v, want %v", b.Transform.Scale, tt.diameter)
			}
			// The pulse is cosmetic
			if b.Galaxy.Diameter != tt.diameter {
				t.Errorf("diameter changed to %v", b.Galaxy.Diameter)
			}
		})
	}
}

func TestChangeSizeNeverNegative(t *testing.T) {
	b := newBody(0, 0, 1)
	b.ChangeSize(0.5)
	if b.Diameter() != 1.5 {
		t.Errorf("diameter = %v, want 1.5", b.Diameter())
	}
	b.ChangeSize(-10)
	if b.Diameter() != 0 {
		t.Errorf("diameter = %v, want 0", b.Diameter())
	}
	if b.Transform.Scale != 0 {
		t.Errorf("scale = %v, want 0", b.Transform.Scale)
	}
}

func TestIsGreaterOrEqual(t *testing.T) {
	b := newBody(0, 0, 4.2)
	if !b.IsGreaterOrEqual(4) {
		t.Error("4.2 should be >= 4")
	}
	if !b.IsGreaterOrEqual(4.2) {
		t.Error("4.2 should be >= 4.2")
	}
	if b.IsGreaterOrEqual(4.3) {
		t.Error("4.2 should not be >= 4.3")
	}
}

func TestIntersect(t *testing.T) {
	b := newBody(0, 0, 2) // radius 1

	tests := []struct {
		name   string
		point  r3.Vec
		radius float64
		want   bool
	}{
		{"center", r3.Vec{}, 0, true},
		{"inside", r3.Vec{X: 0.5}, 0.1, true},
		{"touching is free", r3.Vec{X: 1.5}, 0.5, false},
		{"overlapping", r3.Vec{X: 1.4}, 0.5, true},
		{"far", r3.Vec{X: 5, Z: 5}, 1, false},
		{"height ignored", r3.Vec{Y: 100}, 0.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Intersect(tt.point, tt.radius); got != tt.want {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.point, tt.radius, got, tt.want)
			}
		})
	}
}

func TestIntersectUsesTargetWhileSpawning(t *testing.T) {
	b := newBody(0, 0, 0)
	b.Galaxy.Target = 2
	b.Galaxy.Spawning = true

	if !b.Intersect(r3.Vec{X: 1.2}, 0.5) {
		t.Error("growing galaxy should already claim its full size")
	}
}

func TestApplyPush(t *testing.T) {
	b := newBody(2, 0, 1)
	dt := 0.1

	b.ApplyPush(r3.Vec{}, 1, dt)

	// Away from the pusher along +X with magnitude strength / dist^2 * dt
	want := 1.0 / 4.0 * dt
	if math.Abs(b.Motion.Velocity.X-want) > 1e-12 || b.Motion.Velocity.Z != 0 || b.Motion.Velocity.Y != 0 {
		t.Errorf("velocity = %v, want (%v, 0, 0)", b.Motion.Velocity, want)
	}
}

func TestApplyPushClampsCloseRange(t *testing.T) {
	b := newBody(0.1, 0, 2) // clamp floor = 0.25 * 4 = 1
	b.ApplyPush(r3.Vec{}, 1, 1)

	if math.Abs(b.Motion.Velocity.X-1.0) > 1e-12 {
		t.Errorf("velocity.X = %v, want 1 (clamped)", b.Motion.Velocity.X)
	}
}

func TestApplyPushIgnoresHeight(t *testing.T) {
	b := newBody(0, 3, 1)
	b.ApplyPush(r3.Vec{Y: 50}, 1, 1)

	if b.Motion.Velocity.Y != 0 {
		t.Errorf("push leaked into Y: %v", b.Motion.Velocity)
	}
	if b.Motion.Velocity.Z <= 0 {
		t.Errorf("expected push along +Z, got %v", b.Motion.Velocity)
	}
}

func TestApplyPushOnTopIsNoop(t *testing.T) {
	b := newBody(1, 1, 1)
	b.ApplyPush(r3.Vec{X: 1, Z: 1}, 10, 1)
	if b.Motion.Velocity != (r3.Vec{}) {
		t.Errorf("velocity = %v, want zero", b.Motion.Velocity)
	}
}
