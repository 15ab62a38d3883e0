package layout

import (
	"fmt"

	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// Margins runs Inside on the area shrunk by Width on every side and Border
// on the four strips around it. On an area too small to leave an inside,
// Inside runs on an empty canvas and the strips cover everything.
type Margins struct {
	Width  int
	Border Generator
	Inside Generator
}

func (Margins) generator() {}

func (g Margins) Make(c grid.Canvas, r *rng.Rand) bool {
	inside := clip(c.Area, c.Area.Inset(g.Width))
	if !g.Inside.Make(c.With(inside), r) {
		return false
	}
	for _, strip := range borderStrips(c.Area, g.Width) {
		if !g.Border.Make(c.With(strip), r) {
			return false
		}
	}
	return true
}

// borderStrips returns the top, right, bottom and left strips of a, which
// together with clip(a, a.Inset(w)) tile a exactly. Strips are clipped to
// a, so a margin wider than half the area leaves some of them empty.
func borderStrips(a geom.Rect, w int) [4]geom.Rect {
	return [4]geom.Rect{
		clip(a, geom.R(a.Left, a.Top, a.Right, a.Top+w)),
		clip(a, geom.R(a.Right-w, a.Top+w, a.Right, a.Bottom)),
		clip(a, geom.R(a.Left, a.Bottom-w, a.Right-w, a.Bottom)),
		clip(a, geom.R(a.Left, a.Top+w, a.Left+w, a.Bottom-w)),
	}
}

// clip intersects r with a and collapses an inverted result to zero size.
func clip(a, r geom.Rect) geom.Rect {
	r = a.Intersect(r)
	r.Right = max(r.Right, r.Left)
	r.Bottom = max(r.Bottom, r.Top)
	return r
}

// Side selects the edge of a one-sided [Margin].
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

var sideNames = map[Side]string{
	SideTop:    "top",
	SideBottom: "bottom",
	SideLeft:   "left",
	SideRight:  "right",
}

func (s Side) String() string {
	if n, ok := sideNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide converts a side name ("top", "bottom", "left", "right").
func ParseSide(s string) (Side, error) {
	for side, name := range sideNames {
		if name == s {
			return side, nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Margin runs Border on a Width-thick strip along Side and Inside on the
// rest of the area.
type Margin struct {
	Side   Side
	Width  int
	Border Generator
	Inside Generator
}

func (Margin) generator() {}

func (g Margin) Make(c grid.Canvas, r *rng.Rand) bool {
	border, inside := g.split(c.Area)
	if !g.Border.Make(c.With(border), r) {
		return false
	}
	return g.Inside.Make(c.With(inside), r)
}

func (g Margin) split(a geom.Rect) (border, inside geom.Rect) {
	w := g.Width
	switch g.Side {
	case SideTop:
		return geom.R(a.Left, a.Top, a.Right, a.Top+w), geom.R(a.Left, a.Top+w, a.Right, a.Bottom)
	case SideBottom:
		return geom.R(a.Left, a.Bottom-w, a.Right, a.Bottom), geom.R(a.Left, a.Top, a.Right, a.Bottom-w)
	case SideLeft:
		return geom.R(a.Left, a.Top, a.Left+w, a.Bottom), geom.R(a.Left+w, a.Top, a.Right, a.Bottom)
	case SideRight:
		return geom.R(a.Right-w, a.Top, a.Right, a.Bottom), geom.R(a.Left, a.Top, a.Right-w, a.Bottom)
	}
	panic(configErrorf("margin", "unknown side %v", g.Side))
}

// SplitH cuts the area vertically at Ratio of its width and runs Left and
// Right on the two parts.
type SplitH struct {
	Ratio float64
	Left  Generator
	Right Generator
}

func (SplitH) generator() {}

func (g SplitH) Make(c grid.Canvas, r *rng.Rand) bool {
	a := c.Area
	x := a.Left + int(float64(a.Width())*g.Ratio)
	if !g.Left.Make(c.With(geom.R(a.Left, a.Top, x, a.Bottom)), r) {
		return false
	}
	return g.Right.Make(c.With(geom.R(x, a.Top, a.Right, a.Bottom)), r)
}

// SplitV cuts the area horizontally at Ratio of its height and runs Top and
// Bottom on the two parts.
type SplitV struct {
	Ratio  float64
	Top    Generator
	Bottom Generator
}

func (SplitV) generator() {}

func (g SplitV) Make(c grid.Canvas, r *rng.Rand) bool {
	a := c.Area
	y := a.Top + int(float64(a.Height())*g.Ratio)
	if !g.Top.Make(c.With(geom.R(a.Left, a.Top, a.Right, y)), r) {
		return false
	}
	return g.Bottom.Make(c.With(geom.R(a.Left, y, a.Right, a.Bottom)), r)
}
