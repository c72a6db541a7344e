package game

import "math/rand"

// AutoPusher drives the pointer in headless runs. Every period it picks a
// random screen point and holds the push there for the first hold seconds.
type AutoPusher struct {
	rng    *rand.Rand
	period float64
	hold   float64

	remaining float64
	x, y      float64
}

// NewAutoPusher creates a pusher that pushes for one second out of every four.
func NewAutoPusher(rng *rand.Rand) *AutoPusher {
	return &AutoPusher{rng: rng, period: 4, hold: 1}
}

// Next returns the input for a tick of dt seconds on a w x h viewport.
func (a *AutoPusher) Next(dt, w, h float64) Input {
	if a.remaining <= 0 {
		a.x = a.rng.Float64() * w
		a.y = a.rng.Float64() * h
		a.remaining = a.period
	}
	held := a.remaining > a.period-a.hold
	a.remaining -= dt
	return Input{PushHeld: held, PointerX: a.x, PointerY: a.y}
}
