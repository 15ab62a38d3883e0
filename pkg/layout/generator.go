package layout

import (
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// Generator is a node of a level recipe. The set of implementations is
// closed; they are the exported types of this package.
type Generator interface {
	// Make applies the node to c.Area and reports success.
	Make(c grid.Canvas, r *rng.Rand) bool

	generator()
}

// None does nothing and always succeeds.
type None struct{}

// Set appends each token to every cell that does not hold it yet.
type Set struct {
	Tokens []grid.Token
}

// SetFront prepends Token to every cell that does not hold it yet.
type SetFront struct {
	Token grid.Token
}

// Reset replaces every cell's stack with Tokens.
type Reset struct {
	Tokens []grid.Token
}

// Remove deletes each token from every cell, keeping the remaining order.
type Remove struct {
	Tokens []grid.Token
}

func (None) generator()     {}
func (Set) generator()      {}
func (SetFront) generator() {}
func (Reset) generator()    {}
func (Remove) generator()   {}

func (None) Make(grid.Canvas, *rng.Rand) bool { return true }

func (g Set) Make(c grid.Canvas, _ *rng.Rand) bool {
	for v := range c.Area.All() {
		s := c.At(v)
		for _, t := range g.Tokens {
			s.PushBack(t)
		}
	}
	return true
}

func (g SetFront) Make(c grid.Canvas, _ *rng.Rand) bool {
	for v := range c.Area.All() {
		c.At(v).PushFront(g.Token)
	}
	return true
}

func (g Reset) Make(c grid.Canvas, _ *rng.Rand) bool {
	for v := range c.Area.All() {
		s := c.At(v)
		s.Clear()
		for _, t := range g.Tokens {
			s.PushBack(t)
		}
	}
	return true
}

func (g Remove) Make(c grid.Canvas, _ *rng.Rand) bool {
	for v := range c.Area.All() {
		s := c.At(v)
		for _, t := range g.Tokens {
			s.Remove(t)
		}
	}
	return true
}

// makeCell runs g on the single cell v.
func makeCell(g Generator, c grid.Canvas, v geom.Vec2, r *rng.Rand) bool {
	return g.Make(c.With(geom.Cell(v)), r)
}
