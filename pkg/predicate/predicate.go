package predicate

import (
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// Predicate tests a single grid position.
type Predicate interface {
	Apply(g *grid.Grid, v geom.Vec2, r *rng.Rand) bool
}

// Func adapts a plain function to [Predicate].
type Func func(g *grid.Grid, v geom.Vec2, r *rng.Rand) bool

func (f Func) Apply(g *grid.Grid, v geom.Vec2, r *rng.Rand) bool { return f(g, v, r) }

// True matches every position.
type True struct{}

func (True) Apply(*grid.Grid, geom.Vec2, *rng.Rand) bool { return true }

// False matches nothing.
type False struct{}

func (False) Apply(*grid.Grid, geom.Vec2, *rng.Rand) bool { return false }

// On matches cells whose stack contains Token. Positions outside the grid
// never match.
type On struct {
	Token grid.Token
}

func (p On) Apply(g *grid.Grid, v geom.Vec2, _ *rng.Rand) bool {
	return g.Has(v, p.Token)
}

// Not inverts Predicate.
type Not struct {
	Predicate Predicate
}

func (p Not) Apply(g *grid.Grid, v geom.Vec2, r *rng.Rand) bool {
	return !p.Predicate.Apply(g, v, r)
}

// And matches when every member matches, stopping at the first miss.
// An empty And matches.
type And []Predicate

func (p And) Apply(g *grid.Grid, v geom.Vec2, r *rng.Rand) bool {
	for _, q := range p {
		if !q.Apply(g, v, r) {
			return false
		}
	}
	return true
}

// Or matches when any member matches, stopping at the first hit.
// An empty Or does not match.
type Or []Predicate

func (p Or) Apply(g *grid.Grid, v geom.Vec2, r *rng.Rand) bool {
	for _, q := range p {
		if q.Apply(g, v, r) {
			return true
		}
	}
	return false
}

// Chance matches with probability Value, independently at every call.
type Chance struct {
	Value float64
}

func (p Chance) Apply(_ *grid.Grid, _ geom.Vec2, r *rng.Rand) bool {
	return r.Chance(p.Value)
}

// Area matches when at least MinCount cells of the (2*Radius+1) square
// centred on the position satisfy Predicate. Cells outside the grid are
// skipped. A zero MinCount is treated as 1.
type Area struct {
	Radius    int
	Predicate Predicate
	MinCount  int
}

func (p Area) Apply(g *grid.Grid, v geom.Vec2, r *rng.Rand) bool {
	need := max(p.MinCount, 1)
	square := geom.R(v.X-p.Radius, v.Y-p.Radius, v.X+p.Radius+1, v.Y+p.Radius+1)
	count := 0
	for w := range square.Intersect(g.Bounds()).All() {
		if p.Predicate.Apply(g, w, r) {
			count++
		}
	}
	return count >= need
}

// XMod matches columns with x mod Div == Mod.
type XMod struct {
	Div int
	Mod int
}

func (p XMod) Apply(_ *grid.Grid, v geom.Vec2, _ *rng.Rand) bool {
	return p.Div > 0 && mod(v.X, p.Div) == p.Mod
}

// YMod matches rows with y mod Div == Mod.
type YMod struct {
	Div int
	Mod int
}

func (p YMod) Apply(_ *grid.Grid, v geom.Vec2, _ *rng.Rand) bool {
	return p.Div > 0 && mod(v.Y, p.Div) == p.Mod
}

// mod is the non-negative remainder.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
