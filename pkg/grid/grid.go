package grid

import (
	"fmt"

	"github.com/matzehuels/levelgen/pkg/geom"
)

// Grid is a rectangular table of token stacks.
type Grid struct {
	bounds geom.Rect
	cells  []Stack
}

// New allocates an empty grid covering bounds.
func New(bounds geom.Rect) *Grid {
	return &Grid{bounds: bounds, cells: make([]Stack, bounds.Area())}
}

// NewSized allocates an empty w x h grid anchored at the origin.
func NewSized(w, h int) *Grid {
	return New(geom.R(0, 0, w, h))
}

// Bounds returns the region the grid covers.
func (g *Grid) Bounds() geom.Rect { return g.bounds }

// Contains reports whether v is inside the grid.
func (g *Grid) Contains(v geom.Vec2) bool { return g.bounds.Contains(v) }

// At returns the stack at v. It panics if v is outside the grid.
func (g *Grid) At(v geom.Vec2) *Stack {
	if !g.bounds.Contains(v) {
		panic(fmt.Sprintf("grid: %v outside %v", v, g.bounds))
	}
	return &g.cells[g.bounds.Index(v)]
}

// Has reports whether the cell at v contains t. Cells outside the grid
// contain nothing.
func (g *Grid) Has(v geom.Vec2, t Token) bool {
	return g.bounds.Contains(v) && g.At(v).Contains(t)
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].Clear()
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := New(g.bounds)
	for i := range g.cells {
		out.cells[i].tokens = g.cells[i].Tokens()
	}
	return out
}

// Count returns how many cells contain t.
func (g *Grid) Count(t Token) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Contains(t) {
			n++
		}
	}
	return n
}

// Canvas returns a canvas spanning the whole grid.
func (g *Grid) Canvas() Canvas {
	return Canvas{Area: g.bounds, Grid: g}
}

// Canvas is a non-owning view of a grid restricted to Area.
type Canvas struct {
	Area geom.Rect
	Grid *Grid
}

// With returns a view of the same grid over r.
func (c Canvas) With(r geom.Rect) Canvas {
	return Canvas{Area: r, Grid: c.Grid}
}

// At returns the stack at v.
func (c Canvas) At(v geom.Vec2) *Stack {
	return c.Grid.At(v)
}
