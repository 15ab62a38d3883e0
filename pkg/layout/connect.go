package layout

import (
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/pathfind"
	"github.com/matzehuels/levelgen/pkg/predicate"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// ConnectIterations is the number of random pairs [Connect] links.
const ConnectIterations = 300

// Connector prices a kind of cell for [Connect] and says how to carve it.
type Connector struct {
	// Cost of stepping onto a matching cell. Nil makes the cell impassable.
	Cost      *float64
	Predicate predicate.Predicate
	Generator Generator
}

// Connect links random pairs of cells matching ToConnect with cheapest
// 4-connected paths and runs, on every path cell, the generator of the
// cheapest connector matching that cell. Cells matching no connector are
// impassable. The node fails if some pair cannot be linked.
type Connect struct {
	ToConnect  predicate.Predicate
	Connectors []Connector
}

func (Connect) generator() {}

func (g Connect) Make(c grid.Canvas, r *rng.Rand) bool {
	var points []geom.Vec2
	for v := range c.Area.All() {
		if g.ToConnect.Apply(c.Grid, v, r) {
			points = append(points, v)
		}
	}
	if len(points) == 0 {
		return true
	}
	for range ConnectIterations {
		p1 := points[r.Intn(len(points))]
		p2 := points[r.Intn(len(points))]
		if p1 != p2 && !g.link(c, r, p1, p2) {
			return false
		}
	}
	return true
}

// connector returns the cheapest connector matching v, or nil. Every
// predicate is evaluated once. Connectors without a cost only win when
// nothing priced matches.
func (g Connect) connector(c grid.Canvas, r *rng.Rand, v geom.Vec2) *Connector {
	var best *Connector
	for i := range g.Connectors {
		e := &g.Connectors[i]
		if !e.Predicate.Apply(c.Grid, v, r) {
			continue
		}
		if best == nil || best.Cost == nil || (e.Cost != nil && *e.Cost < *best.Cost) {
			best = e
		}
	}
	return best
}

// link carves the cheapest path from p1 to p2.
func (g Connect) link(c grid.Canvas, r *rng.Rand, p1, p2 geom.Vec2) bool {
	cost := func(v geom.Vec2) float64 {
		if e := g.connector(c, r, v); e != nil && e.Cost != nil {
			return *e.Cost
		}
		return pathfind.Infinity
	}
	heuristic := func(v geom.Vec2) float64 {
		return float64(p2.Dist4(v))
	}
	path := pathfind.New(c.Area, cost, heuristic, geom.Directions4(), p1, p2)
	if !path.Reachable(p2) {
		return false
	}
	for v := p2; v != p1; v = path.NextMove(v) {
		e := g.connector(c, r, v)
		if e == nil || e.Cost == nil {
			panic(configErrorf("connect", "path crosses %v, which no priced connector matches on re-evaluation; connector predicates must not be random", v))
		}
		if !makeCell(e.Generator, c, v, r) {
			return false
		}
	}
	return true
}
