package game

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/components"
	"github.com/pthm-cable/lambda/systems"
)

// spawnGalaxy tries to place a new galaxy at a random free spot in view.
// It gives up after spawn.attempts tries and leaves the population unchanged.
func (u *Universe) spawnGalaxy() bool {
	sc := u.cfg.Spawn
	size := randRange(u.rng, sc.SizeMin, sc.SizeMax)
	w, h := u.caster.Viewport()

	for try := 0; try < sc.Attempts; try++ {
		sx := u.rng.Float64() * w
		sy := u.rng.Float64() * h
		hit, ok := u.caster.ScreenToGround(sx, sy)
		if !ok || !u.isFree(hit, 0.5*size) {
			continue
		}
		u.createGalaxy(hit, size)
		return true
	}

	u.emit(Event{Type: EventSpawnFailed, Value: size})
	return false
}

// isFree reports whether a circle at pos overlaps no existing galaxy.
func (u *Universe) isFree(pos r3.Vec, radius float64) bool {
	u.ensureGrid()
	u.hits = u.grid.QueryInto(u.hits[:0], pos, radius)
	return len(u.hits) == 0
}

// createGalaxy adds a galaxy and starts its growth-in animation.
func (u *Universe) createGalaxy(pos r3.Vec, size float64) {
	sc := u.cfg.Spawn

	u.nextID++
	id := u.nextID

	tr := components.Transform{
		Position: r3.Vec{X: pos.X, Z: pos.Z},
		Angle:    randRange(u.rng, -180, 180),
		Scale:    size,
	}
	mo := components.Motion{
		RotationSpeed: randRange(u.rng, sc.SpeedMin, sc.SpeedMax) * size,
	}
	g := components.Galaxy{
		ID:       id,
		Diameter: size,
		Target:   size,
		Tint:     randomTint(u.rng),
	}

	e := u.bodyMap.NewEntity(&tr, &mo, &g)
	u.order = append(u.order, e)
	u.invalidateGrid()
	u.scheduler.Start(e, systems.NewGrowthTask(e, u.growthMap, sc.Duration))

	u.emit(Event{Type: EventSpawned, ID: id, Position: tr.Position, Value: size})
}

// placeGalaxy adds a fully grown galaxy. Used to set up scenarios.
func (u *Universe) placeGalaxy(pos r3.Vec, diameter float64) uint32 {
	u.nextID++
	tr := components.Transform{Position: pos, Scale: diameter}
	mo := components.Motion{}
	g := components.Galaxy{ID: u.nextID, Diameter: diameter, Target: diameter, Tint: randomTint(u.rng)}
	u.order = append(u.order, u.bodyMap.NewEntity(&tr, &mo, &g))
	u.invalidateGrid()
	return u.nextID
}

// randomTint picks a bluish to magenta pastel.
func randomTint(rng *rand.Rand) components.Tint {
	c := colorful.Hsv(
		randRange(rng, 0.5, 1)*360,
		randRange(rng, 0.3, 0.6),
		randRange(rng, 0.7, 1),
	).Clamped()
	return components.Tint{R: c.R, G: c.G, B: c.B}
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
