package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SpatialGrid buckets galaxies by the ground cells their discs cover.
// The grid spans [-halfExtent, halfExtent] on X and Z. Anything outside is
// clamped onto the border cells, so queries stay exact for galaxies pushed
// off the covered area; they are just slower there.
type SpatialGrid struct {
	cellSize   float64
	minX, minZ float64
	cols, rows int
	cells      [][]gridEntry
}

// gridEntry remembers the first cell a body covers so a query that sees the
// body in several cells reports it once.
type gridEntry struct {
	body       Body
	col0, row0 int
}

// NewSpatialGrid creates a square grid centred on the origin.
func NewSpatialGrid(halfExtent, cellSize float64) *SpatialGrid {
	n := int(math.Ceil(2*halfExtent/cellSize)) + 1

	cells := make([][]gridEntry, n*n)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		minX:     -halfExtent,
		minZ:     -halfExtent,
		cols:     n,
		rows:     n,
		cells:    cells,
	}
}

// Clear removes all bodies from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		clear(g.cells[i])
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a body to every cell its disc's bounding square touches.
func (g *SpatialGrid) Insert(b Body) {
	p := b.Transform.Position
	c0, r0, c1, r1 := g.cellRange(p.X, p.Z, 0.5*b.Galaxy.Extent())
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			idx := row*g.cols + col
			g.cells[idx] = append(g.cells[idx], gridEntry{body: b, col0: c0, row0: r0})
		}
	}
}

// QueryInto appends to dst every body whose disc overlaps the circle of the
// given radius at p, and returns the updated slice.
func (g *SpatialGrid) QueryInto(dst []Body, p r3.Vec, radius float64) []Body {
	c0, r0, c1, r1 := g.cellRange(p.X, p.Z, radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, en := range g.cells[row*g.cols+col] {
				// Report from the first shared cell only.
				if col != max(en.col0, c0) || row != max(en.row0, r0) {
					continue
				}
				if en.body.Intersect(p, radius) {
					dst = append(dst, en.body)
				}
			}
		}
	}
	return dst
}

// cellRange returns the clamped cell bounds of the square [x±r, z±r].
func (g *SpatialGrid) cellRange(x, z, r float64) (c0, r0, c1, r1 int) {
	c0 = g.clamp(int(math.Floor((x-r-g.minX)/g.cellSize)), g.cols)
	c1 = g.clamp(int(math.Floor((x+r-g.minX)/g.cellSize)), g.cols)
	r0 = g.clamp(int(math.Floor((z-r-g.minZ)/g.cellSize)), g.rows)
	r1 = g.clamp(int(math.Floor((z+r-g.minZ)/g.cellSize)), g.rows)
	return c0, r0, c1, r1
}

func (g *SpatialGrid) clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
