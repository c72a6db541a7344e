package components

// Galaxy holds the physical properties of a galaxy.
type Galaxy struct {
	ID       uint32
	Diameter float64 // never negative
	Target   float64 // diameter reached when the growth-in animation ends
	Spawning bool    // true while growing in; excluded from attraction and merging
	Tint     Tint
}

// Extent returns the diameter used for placement checks.
// A galaxy that is still growing already claims its full size.
func (g *Galaxy) Extent() float64 {
	if g.Spawning && g.Target > g.Diameter {
		return g.Target
	}
	return g.Diameter
}
