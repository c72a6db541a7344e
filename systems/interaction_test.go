package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestUpdateVelocitiesMerge(t *testing.T) {
	// Diameters 2 and 3 at distance 2.0 (< 2.5) merge into 3 + 0.2*2
	a := newBody(0, 0, 2)
	b := newBody(2, 0, 3)

	got := UpdateVelocities(a, b, 0.2, 1, 1.0/60.0)
	if got != InteractionAbsorbA {
		t.Fatalf("interaction = %v, want absorb_a", got)
	}
	if math.Abs(b.Diameter()-3.4) > 1e-12 {
		t.Errorf("survivor diameter = %v, want 3.4", b.Diameter())
	}
	if a.Diameter() != 2 {
		t.Errorf("absorbed diameter changed to %v", a.Diameter())
	}
}

func TestUpdateVelocitiesLargerAbsorbs(t *testing.T) {
	tests := []struct {
		name   string
		dA, dB float64
		want   Interaction
	}{
		{"a larger", 3, 2, InteractionAbsorbB},
		{"b larger", 2, 3, InteractionAbsorbA},
		{"tie goes to b", 2, 2, InteractionAbsorbA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newBody(0, 0, tt.dA)
			b := newBody(1, 0, tt.dB)
			if got := UpdateVelocities(a, b, 0.2, 1, 0.1); got != tt.want {
				t.Errorf("interaction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateVelocitiesMergeTriggerIsSymmetric(t *testing.T) {
	for _, dist := range []float64{0.5, 1.0, 1.49, 1.5, 1.51, 3} {
		a1, b1 := newBody(0, 0, 1), newBody(dist, 0, 2)
		a2, b2 := newBody(dist, 0, 2), newBody(0, 0, 1)

		m1 := UpdateVelocities(a1, b1, 0.2, 1, 0.1).Merged()
		m2 := UpdateVelocities(a2, b2, 0.2, 1, 0.1).Merged()
		if m1 != m2 {
			t.Errorf("dist %v: merged %v vs %v depending on order", dist, m1, m2)
		}
		if m1 != (dist < 1.5) {
			t.Errorf("dist %v: merged = %v, want %v", dist, m1, dist < 1.5)
		}
	}
}

func TestUpdateVelocitiesAttract(t *testing.T) {
	a := newBody(0, 0, 1)
	b := newBody(0, 4, 2)
	dt := 0.5

	got := UpdateVelocities(a, b, 0.2, 1, dt)
	if got != InteractionAttract {
		t.Fatalf("interaction = %v, want attract", got)
	}

	// |dv| = 1/16 * 0.5, ratio = 2
	base := 1.0 / 16.0 * dt
	if math.Abs(a.Motion.Velocity.Z-base*2) > 1e-12 {
		t.Errorf("a.v.Z = %v, want %v", a.Motion.Velocity.Z, base*2)
	}
	if math.Abs(b.Motion.Velocity.Z+base/2) > 1e-12 {
		t.Errorf("b.v.Z = %v, want %v", b.Motion.Velocity.Z, -base/2)
	}
	if a.Motion.Velocity.X != 0 || b.Motion.Velocity.X != 0 {
		t.Error("attraction leaked off-axis")
	}
	// No size change on attraction
	if a.Diameter() != 1 || b.Diameter() != 2 {
		t.Error("attraction changed diameters")
	}
}

func TestUpdateVelocitiesAttractionScales(t *testing.T) {
	a := newBody(0, 0, 1)
	b := newBody(3, 0, 1)
	UpdateVelocities(a, b, 0.2, 2.5, 1)

	want := 2.5 / 9.0
	if math.Abs(a.Motion.Velocity.X-want) > 1e-12 {
		t.Errorf("a.v.X = %v, want %v", a.Motion.Velocity.X, want)
	}
}

func TestUpdateVelocitiesSkipsSpawning(t *testing.T) {
	a := newBody(0, 0, 1)
	b := newBody(0.1, 0, 1)
	b.Galaxy.Spawning = true

	if got := UpdateVelocities(a, b, 0.2, 1, 0.1); got != InteractionNone {
		t.Errorf("interaction = %v, want none", got)
	}
	if a.Diameter() != 1 || b.Diameter() != 1 {
		t.Error("spawning pair changed size")
	}
	if a.Motion.Velocity != (r3.Vec{}) || b.Motion.Velocity != (r3.Vec{}) {
		t.Error("spawning pair changed velocity")
	}
}

func TestUpdateVelocitiesIgnoresHeight(t *testing.T) {
	a := newBody(0, 0, 1)
	b := newBody(0.5, 0, 1)
	b.Transform.Position.Y = 100

	if !UpdateVelocities(a, b, 0.2, 1, 0.1).Merged() {
		t.Error("height difference should not prevent merging")
	}
}
