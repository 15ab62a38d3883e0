package geom

import (
	"fmt"
	"iter"
)

// Vec2 is an integer grid coordinate or extent.
type Vec2 struct {
	X, Y int
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y int) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Div divides both components by n, truncating toward zero.
func (v Vec2) Div(n int) Vec2 { return Vec2{v.X / n, v.Y / n} }

// Dist4 returns the Manhattan distance between v and o.
func (v Vec2) Dist4(o Vec2) int {
	return abs(v.X-o.X) + abs(v.Y-o.Y)
}

// Neighbors4 returns the four orthogonal neighbours of v.
func (v Vec2) Neighbors4() [4]Vec2 {
	return [4]Vec2{v.Add(Up), v.Add(Right), v.Add(Down), v.Add(Left)}
}

func (v Vec2) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// Unit steps. Y grows downward.
var (
	Up    = Vec2{0, -1}
	Right = Vec2{1, 0}
	Down  = Vec2{0, 1}
	Left  = Vec2{-1, 0}
)

// Directions4 returns the four orthogonal unit steps.
func Directions4() []Vec2 {
	return []Vec2{Up, Right, Down, Left}
}

// Rect is the half-open region [Left, Right) x [Top, Bottom).
type Rect struct {
	Left, Top, Right, Bottom int
}

// R builds a rectangle from its edges.
func R(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// FromCorners builds the rectangle spanning topLeft (inclusive) to
// bottomRight (exclusive).
func FromCorners(topLeft, bottomRight Vec2) Rect {
	return Rect{topLeft.X, topLeft.Y, bottomRight.X, bottomRight.Y}
}

// Sized builds a w x h rectangle with its top-left corner at origin.
func Sized(origin Vec2, size Vec2) Rect {
	return Rect{origin.X, origin.Y, origin.X + size.X, origin.Y + size.Y}
}

// Cell returns the 1x1 rectangle at v.
func Cell(v Vec2) Rect {
	return Rect{v.X, v.Y, v.X + 1, v.Y + 1}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Size returns (Width, Height).
func (r Rect) Size() Vec2 { return Vec2{r.Width(), r.Height()} }

func (r Rect) TopLeft() Vec2     { return Vec2{r.Left, r.Top} }
func (r Rect) BottomRight() Vec2 { return Vec2{r.Right, r.Bottom} }

// Area returns the number of cells, zero for empty or inverted rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Empty reports whether r contains no cells.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Middle returns the centre cell, rounding toward the top-left.
func (r Rect) Middle() Vec2 {
	return Vec2{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Contains reports whether v lies inside r.
func (r Rect) Contains(v Vec2) bool {
	return v.X >= r.Left && v.X < r.Right && v.Y >= r.Top && v.Y < r.Bottom
}

// ContainsRect reports whether o lies entirely inside r. An empty o is
// contained only if its corners are within r's bounds.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Inset shrinks r by m on every side. A negative m grows it.
func (r Rect) Inset(m int) Rect {
	return Rect{r.Left + m, r.Top + m, r.Right - m, r.Bottom - m}
}

// Intersect returns the overlap of r and o, which may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{max(r.Left, o.Left), max(r.Top, o.Top), min(r.Right, o.Right), min(r.Bottom, o.Bottom)}
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Index maps v to its row-major offset inside r. v must be contained in r.
func (r Rect) Index(v Vec2) int {
	return (v.X - r.Left) + (v.Y-r.Top)*r.Width()
}

// All yields every cell of r, x outer and y inner.
func (r Rect) All() iter.Seq[Vec2] {
	return func(yield func(Vec2) bool) {
		for x := r.Left; x < r.Right; x++ {
			for y := r.Top; y < r.Bottom; y++ {
				if !yield(Vec2{x, y}) {
					return
				}
			}
		}
	}
}

// Points returns every cell of r in [Rect.All] order.
func (r Rect) Points() []Vec2 {
	out := make([]Vec2, 0, r.Area())
	for v := range r.All() {
		out = append(out, v)
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.Left, r.Right, r.Top, r.Bottom)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
