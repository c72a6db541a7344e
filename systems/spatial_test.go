package systems

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/components"
)

func gridBody(id uint32, x, z, d float64) Body {
	return Body{
		Transform: &components.Transform{Position: r3.Vec{X: x, Z: z}, Scale: d},
		Motion:    &components.Motion{},
		Galaxy:    &components.Galaxy{ID: id, Diameter: d, Target: d},
	}
}

func TestSpatialGridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	grid := NewSpatialGrid(10, 2)

	// Some bodies sit well outside the grid to exercise border clamping.
	var bodies []Body
	for i := 0; i < 150; i++ {
		b := gridBody(uint32(i+1), rng.Float64()*40-20, rng.Float64()*40-20, 0.2+rng.Float64()*6)
		bodies = append(bodies, b)
		grid.Insert(b)
	}

	var got []Body
	for q := 0; q < 300; q++ {
		p := r3.Vec{X: rng.Float64()*44 - 22, Z: rng.Float64()*44 - 22}
		radius := rng.Float64() * 2

		want := map[uint32]bool{}
		for _, b := range bodies {
			if b.Intersect(p, radius) {
				want[b.Galaxy.ID] = true
			}
		}

		got = grid.QueryInto(got[:0], p, radius)
		seen := map[uint32]bool{}
		for _, b := range got {
			if seen[b.Galaxy.ID] {
				t.Fatalf("query %d: galaxy %d reported twice", q, b.Galaxy.ID)
			}
			seen[b.Galaxy.ID] = true
			if !want[b.Galaxy.ID] {
				t.Fatalf("query %d: galaxy %d does not intersect", q, b.Galaxy.ID)
			}
		}
		if len(seen) != len(want) {
			t.Fatalf("query %d at %v r=%v: got %d galaxies, want %d", q, p, radius, len(seen), len(want))
		}
	}
}

func TestSpatialGridClear(t *testing.T) {
	grid := NewSpatialGrid(5, 1)
	grid.Insert(gridBody(1, 0, 0, 2))

	if got := grid.QueryInto(nil, r3.Vec{}, 0); len(got) != 1 {
		t.Fatalf("before Clear: got %d, want 1", len(got))
	}
	grid.Clear()
	if got := grid.QueryInto(nil, r3.Vec{}, 0); len(got) != 0 {
		t.Errorf("after Clear: got %d, want 0", len(got))
	}
}
