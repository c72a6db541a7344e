package renderer

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Star is a background point. X and Y are fractions of the screen size.
type Star struct {
	X, Y  float64
	Base  float64 // peak brightness in [0, 1]
	Phase float64 // noise offset, keeps neighbours from twinkling in step
	Size  float64
}

// Starfield is a fixed set of twinkling stars. It has no raylib state and is
// shared by the window and terminal frontends.
type Starfield struct {
	stars []Star
	noise opensimplex.Noise
}

// NewStarfield scatters count stars using seed.
func NewStarfield(seed int64, count int) *Starfield {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			X:     rng.Float64(),
			Y:     rng.Float64(),
			Base:  0.3 + 0.7*rng.Float64()*rng.Float64(),
			Phase: rng.Float64() * 1000,
			Size:  1 + rng.Float64(),
		}
	}
	return &Starfield{
		stars: stars,
		noise: opensimplex.NewNormalized(seed),
	}
}

// Stars returns the stars. The slice must not be modified.
func (s *Starfield) Stars() []Star { return s.stars }

// Len returns the number of stars.
func (s *Starfield) Len() int { return len(s.stars) }

// Brightness returns the brightness of star i at time t, in [0, Base].
func (s *Starfield) Brightness(i int, t float64) float64 {
	st := s.stars[i]
	n := s.noise.Eval2(st.Phase, t*0.4)
	n = min(max(n, 0), 1)
	return st.Base * (0.55 + 0.45*n)
}
