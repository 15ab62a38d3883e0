package layout

import (
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// Chain runs each generator on the whole area in order and stops at the
// first failure.
type Chain struct {
	Generators []Generator
}

func (Chain) generator() {}

func (g Chain) Make(c grid.Canvas, r *rng.Rand) bool {
	for _, gen := range g.Generators {
		if !gen.Make(c, r) {
			return false
		}
	}
	return true
}

// Repeat runs Generator on the whole area Count.Sample times and stops at
// the first failure.
type Repeat struct {
	Count     rng.Range
	Generator Generator
}

func (Repeat) generator() {}

func (g Repeat) Make(c grid.Canvas, r *rng.Rand) bool {
	for range g.Count.Sample(r) {
		if !g.Generator.Make(c, r) {
			return false
		}
	}
	return true
}

// Option is one alternative of [Choose]. Chance, if set, is its probability;
// alternatives without one share the remaining probability equally.
type Option struct {
	Generator Generator
	Chance    *float64
}

// Choose picks one option at random and runs it on the whole area.
type Choose struct {
	Options []Option
}

func (Choose) generator() {}

func (g Choose) Make(c grid.Canvas, r *rng.Rand) bool {
	if len(g.Options) == 0 {
		panic(configErrorf("choose", "no options"))
	}
	return g.Options[r.Choose(g.Chances())].Generator.Make(c, r)
}

// Chances returns the resolved probability of every option.
func (g Choose) Chances() []float64 {
	chances := make([]*float64, len(g.Options))
	for i, o := range g.Options {
		chances[i] = o.Chance
	}
	return rng.FillChances(chances)
}
