package rng

import "fmt"

// Range is the half-open integer interval [Min, Max).
type Range struct {
	Min int
	Max int
}

// Single returns the range that always samples n.
func Single(n int) Range {
	return Range{Min: n, Max: n + 1}
}

// Sample draws a uniform integer in [Min, Max). An empty range yields Min.
func (rg Range) Sample(r *Rand) int {
	return r.Between(rg.Min, rg.Max)
}

// Empty reports whether the range contains no integers.
func (rg Range) Empty() bool {
	return rg.Max <= rg.Min
}

// Contains reports whether n lies in [Min, Max).
func (rg Range) Contains(n int) bool {
	return n >= rg.Min && n < rg.Max
}

func (rg Range) String() string {
	return fmt.Sprintf("[%d,%d)", rg.Min, rg.Max)
}
