package rng

import (
	"math/rand/v2"
)

// Rand is a reproducible random stream.
type Rand struct {
	r *rand.Rand
}

// New returns a PCG-backed stream for seed.
func New(seed uint64) *Rand {
	return FromSource(rand.NewPCG(seed, seed^0xdeadbeef))
}

// FromSource wraps an arbitrary source, which lets tests script draws.
func FromSource(src rand.Source) *Rand {
	return &Rand{r: rand.New(src)}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Intn returns a uniform value in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	return r.r.IntN(n)
}

// Between returns a uniform value in [lo, hi), or lo when the interval is empty.
func (r *Rand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}

// Get samples rg. It is the same as rg.Sample(r).
func (r *Rand) Get(rg Range) int {
	return r.Between(rg.Min, rg.Max)
}

// Roll reports true with probability 1/n. n <= 1 always rolls true.
func (r *Rand) Roll(n int) bool {
	if n <= 1 {
		return true
	}
	return r.r.IntN(n) == 0
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Choose returns an index drawn with probability proportional to weights[i].
// Negative weights count as zero. It panics if no weight is positive.
func (r *Rand) Choose(weights []float64) int {
	var sum float64
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum <= 0 {
		panic("rng: Choose needs at least one positive weight")
	}
	u := r.r.Float64() * sum
	last := -1
	var acc float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if u < acc {
			return i
		}
	}
	// Float rounding can leave u == sum.
	return last
}
