// Package noise generates fractal height fields with the diamond-square
// (midpoint displacement) algorithm.
//
// [Generate] works on a square table of side 2^k+1 large enough to cover the
// requested area, seeded with four corner values and a centre value, then
// resamples the table onto the area by nearest neighbour. Each refinement
// round adds symmetric noise whose amplitude is multiplied by the decay
// factor, so small decays give smooth fields and a decay of 1 gives rough
// ones. Output is not clamped.
package noise
