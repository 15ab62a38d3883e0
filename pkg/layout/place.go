package layout

import (
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/predicate"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// PlaceTries bounds the random origins tried for one placement.
const PlaceTries = 100000

// PlaceEntry describes one kind of rectangle for [Place].
type PlaceEntry struct {
	Extent
	Generator Generator
	// Count is sampled once per Make to decide how many rectangles to place.
	// The zero Range places none; blueprints default to [DefaultCount].
	Count rng.Range
	// MinSpacing keeps later rectangles at least this many cells away.
	MinSpacing int
	// Predicate must hold on every cell of a rectangle. Nil means always.
	Predicate predicate.Predicate
	// Anchor, if set, fixes the rectangle's position and allows one try.
	Anchor *Anchor
}

// DefaultCount is the placement count of an entry that does not set one.
var DefaultCount = rng.Range{Min: 1, Max: 2}

// Place scatters non-overlapping rectangles over the area and runs each
// entry's generator on its rectangles. Entries are processed in order. If
// any placement finds no free spot, the node fails; rectangles already
// placed stay placed.
type Place struct {
	Entries []PlaceEntry
}

func (Place) generator() {}

func (g Place) Make(c grid.Canvas, r *rng.Rand) bool {
	occ := newOccupancy(c.Area)
	for _, e := range g.Entries {
		for range e.Count.Sample(r) {
			if !occ.place(e, c, r) {
				return false
			}
		}
	}
	return true
}

// occupancy marks cells claimed during one Place.Make call.
type occupancy struct {
	area  geom.Rect
	taken []bool
}

func newOccupancy(area geom.Rect) *occupancy {
	return &occupancy{area: area, taken: make([]bool, area.Area())}
}

// place finds a spot for one rectangle of e and runs its generator there.
func (o *occupancy) place(e PlaceEntry, c grid.Canvas, r *rng.Rand) bool {
	size := e.resolve("place", r)
	tries := PlaceTries
	if e.Anchor != nil {
		tries = 1
	}
	for range tries {
		rect, ok := o.candidate(e, size, r)
		if !ok {
			return false
		}
		if !o.free(rect, e.Predicate, c.Grid, r) {
			continue
		}
		o.claim(rect.Inset(-e.MinSpacing))
		return e.Generator.Make(c.With(rect), r)
	}
	return false
}

// candidate proposes a rectangle of the given size, or reports that none
// can fit in the area.
func (o *occupancy) candidate(e PlaceEntry, size geom.Vec2, r *rng.Rand) (geom.Rect, bool) {
	if e.Anchor != nil {
		rect := e.Anchor.Rect(o.area, size)
		return rect, o.area.ContainsRect(rect)
	}
	// Origins that keep the rectangle inside the area.
	origins := geom.R(o.area.Left, o.area.Top, o.area.Right-size.X+1, o.area.Bottom-size.Y+1)
	if origins.Empty() {
		return geom.Rect{}, false
	}
	origin := geom.V(r.Between(origins.Left, origins.Right), r.Between(origins.Top, origins.Bottom))
	return geom.Sized(origin, size), true
}

// free reports whether every cell of rect satisfies p and is unclaimed.
// It stops at the first cell that does not.
func (o *occupancy) free(rect geom.Rect, p predicate.Predicate, g *grid.Grid, r *rng.Rand) bool {
	for v := range rect.All() {
		if p != nil && !p.Apply(g, v, r) {
			return false
		}
		if o.taken[o.area.Index(v)] {
			return false
		}
	}
	return true
}

func (o *occupancy) claim(rect geom.Rect) {
	for v := range rect.Intersect(o.area).All() {
		o.taken[o.area.Index(v)] = true
	}
}
