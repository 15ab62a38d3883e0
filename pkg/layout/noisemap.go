package layout

import (
	"slices"

	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/noise"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// NoiseDecay is the variance decay of the height field behind [NoiseMap].
const NoiseDecay = 0.45

// noiseSeed raises the corners and sinks the centre.
var noiseSeed = noise.Seed{TopLeft: 1, TopRight: 1, BottomRight: 1, BottomLeft: 1, Middle: 0}

// NoiseBand selects the cells whose height lies between two quantiles.
type NoiseBand struct {
	// Lower and Upper are fractions in [0, 1] of the sorted heights.
	Lower     float64
	Upper     float64
	Generator Generator
}

// NoiseMap generates a fractal height field over the area and runs each
// band's generator on every cell whose height falls in the band. Bands are
// quantiles, so a band [0, 0.3) covers the lowest 30% of cells whatever the
// absolute heights are. Bands are applied in order and may overlap.
type NoiseMap struct {
	Bands []NoiseBand
}

func (NoiseMap) generator() {}

func (g NoiseMap) Make(c grid.Canvas, r *rng.Rand) bool {
	if c.Area.Empty() {
		return true
	}
	field := noise.Generate(r, c.Area, noiseSeed, NoiseDecay)
	sorted := field.Values()
	slices.Sort(sorted)
	for _, b := range g.Bands {
		lower := quantile(sorted, b.Lower)
		upper := quantile(sorted, b.Upper)
		for v := range c.Area.All() {
			if h := field.At(v); h >= lower && h < upper {
				if !makeCell(b.Generator, c, v, r) {
					return false
				}
			}
		}
	}
	return true
}

// quantile maps a fraction to a height threshold. Fractions at or past the
// top map to one above the maximum so that an upper bound of 1 includes the
// highest cell.
func quantile(sorted []float64, frac float64) float64 {
	i := max(0, int(frac*float64(len(sorted))))
	if i >= len(sorted) {
		return sorted[len(sorted)-1] + 1
	}
	return sorted[i]
}
