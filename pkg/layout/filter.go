package layout

import (
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/predicate"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// Filter tests every cell of the area with Predicate and runs Generator on
// the matching cells and Alt, if set, on the others.
type Filter struct {
	Predicate predicate.Predicate
	Generator Generator
	Alt       Generator
}

func (Filter) generator() {}

func (g Filter) Make(c grid.Canvas, r *rng.Rand) bool {
	for v := range c.Area.All() {
		if g.Predicate.Apply(c.Grid, v, r) {
			if !makeCell(g.Generator, c, v, r) {
				return false
			}
		} else if g.Alt != nil && !makeCell(g.Alt, c, v, r) {
			return false
		}
	}
	return true
}

// FloodFill runs Generator once on every cell that satisfies Predicate and
// is 4-connected, through satisfying cells, to a satisfying cell of the
// area. The fill may spread beyond the area across the whole grid.
type FloodFill struct {
	Predicate predicate.Predicate
	Generator Generator
}

func (FloodFill) generator() {}

func (g FloodFill) Make(c grid.Canvas, r *rng.Rand) bool {
	whole := c.Grid.Bounds()
	visited := make([]bool, whole.Area())
	var queue []geom.Vec2
	visit := func(v geom.Vec2) bool {
		if !whole.Contains(v) || visited[whole.Index(v)] || !g.Predicate.Apply(c.Grid, v, r) {
			return true
		}
		visited[whole.Index(v)] = true
		queue = append(queue, v)
		return makeCell(g.Generator, c, v, r)
	}
	for v := range c.Area.All() {
		if !visit(v) {
			return false
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, n := range v.Neighbors4() {
			if !visit(n) {
				return false
			}
		}
	}
	return true
}
