package noise

import (
	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// initialVariance is the noise amplitude of the coarsest round.
const initialVariance = 0.5

// Seed holds the values placed at the table corners and centre before
// refinement.
type Seed struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
	Middle      float64
}

// Field is a height value per cell of an area.
type Field struct {
	area   geom.Rect
	values []float64
}

// Area returns the region the field covers.
func (f *Field) Area() geom.Rect { return f.area }

// At returns the height at v, which must lie inside Area.
func (f *Field) At(v geom.Vec2) float64 {
	return f.values[f.area.Index(v)]
}

// Values returns a copy of all heights in row-major order.
func (f *Field) Values() []float64 {
	return append([]float64(nil), f.values...)
}

// Resolution returns the side of the working table used for an area: the
// smallest 2^k+1 whose span 2^k covers both the area's width-1 and height-1.
func Resolution(area geom.Rect) int {
	span := max(area.Width()-1, area.Height()-1)
	side := 1
	for side < span {
		side *= 2
	}
	return side + 1
}

// Generate builds a height field over area. decay should lie in (0, 1].
func Generate(r *rng.Rand, area geom.Rect, seed Seed, decay float64) *Field {
	width := Resolution(area)
	t := newTable(width)
	last := width - 1
	t.set(0, 0, seed.TopLeft)
	t.set(last, 0, seed.TopRight)
	t.set(last, last, seed.BottomRight)
	t.set(0, last, seed.BottomLeft)
	t.set(last/2, last/2, seed.Middle)

	variance := initialVariance
	noise := func() float64 { return variance * (r.Float64()*2 - 1) }

	for a := last; a >= 2; a /= 2 {
		h := a / 2
		blocks := last / a
		// The first centre is seeded, so the first round starts with squares.
		if a < last {
			for x := 0; x < blocks; x++ {
				for y := 0; y < blocks; y++ {
					px, py := x*a, y*a
					avg := (t.get(px, py) + t.get(px+a, py) + t.get(px, py+a) + t.get(px+a, py+a)) / 4
					t.set(px+h, py+h, avg+noise())
				}
			}
		}
		for x := 0; x < blocks; x++ {
			for y := 0; y < blocks+1; y++ {
				px, py := x*a, y*a
				avg := t.average(
					geom.V(px+h, py-h),
					geom.V(px, py),
					geom.V(px+a, py),
					geom.V(px+h, py+h),
				)
				t.set(px+h, py, avg+noise())
			}
		}
		for x := 0; x < blocks+1; x++ {
			for y := 0; y < blocks; y++ {
				px, py := x*a, y*a
				avg := t.average(
					geom.V(px-h, py+h),
					geom.V(px, py),
					geom.V(px, py+a),
					geom.V(px+h, py+h),
				)
				t.set(px, py+h, avg+noise())
			}
		}
		variance *= decay
	}

	f := &Field{area: area, values: make([]float64, area.Area())}
	for v := range area.All() {
		lx := (v.X - area.Left) * width / area.Width()
		ly := (v.Y - area.Top) * width / area.Height()
		f.values[area.Index(v)] = t.get(lx, ly)
	}
	return f
}

// table is the square working grid, indexed [x][y].
type table struct {
	side int
	vals []float64
}

func newTable(side int) *table {
	return &table{side: side, vals: make([]float64, side*side)}
}

func (t *table) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.side && y < t.side
}

func (t *table) get(x, y int) float64    { return t.vals[x*t.side+y] }
func (t *table) set(x, y int, v float64) { t.vals[x*t.side+y] = v }

// average returns the mean of the points that fall inside the table.
func (t *table) average(pts ...geom.Vec2) float64 {
	var sum float64
	n := 0
	for _, p := range pts {
		if t.inside(p.X, p.Y) {
			sum += t.get(p.X, p.Y)
			n++
		}
	}
	return sum / float64(n)
}
