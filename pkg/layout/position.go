package layout

import (
	"fmt"

	"github.com/matzehuels/levelgen/pkg/geom"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// Extent is the size of a placed rectangle: either exactly Size, or drawn
// uniformly per axis from [MinSize, MaxSize).
type Extent struct {
	Size    *geom.Vec2
	MinSize *geom.Vec2
	MaxSize *geom.Vec2
}

func (e Extent) check(kind string) *ConfigError {
	if e.Size != nil {
		if e.Size.X < 0 || e.Size.Y < 0 {
			return configErrorf(kind, "negative size %v", *e.Size)
		}
		return nil
	}
	if e.MinSize == nil || e.MaxSize == nil {
		return configErrorf(kind, "needs size or both min_size and max_size")
	}
	if e.MinSize.X >= e.MaxSize.X || e.MinSize.Y >= e.MaxSize.Y {
		return configErrorf(kind, "min_size %v must be below max_size %v on both axes", *e.MinSize, *e.MaxSize)
	}
	if e.MinSize.X < 0 || e.MinSize.Y < 0 {
		return configErrorf(kind, "negative min_size %v", *e.MinSize)
	}
	return nil
}

// resolve returns the concrete size, panicking on a malformed extent.
func (e Extent) resolve(kind string, r *rng.Rand) geom.Vec2 {
	if ce := e.check(kind); ce != nil {
		panic(ce)
	}
	if e.Size != nil {
		return *e.Size
	}
	x := r.Between(e.MinSize.X, e.MaxSize.X)
	y := r.Between(e.MinSize.Y, e.MaxSize.Y)
	return geom.V(x, y)
}

// Anchor places a rectangle relative to its enclosing area.
type Anchor int

const (
	// AnchorMiddle centres on both axes.
	AnchorMiddle Anchor = iota
	// AnchorMiddleV centres horizontally and spans the full height.
	AnchorMiddleV
	// AnchorMiddleH centres vertically and spans the full width.
	AnchorMiddleH
	AnchorLeftCenter
	AnchorRightCenter
	AnchorTopCenter
	AnchorBottomCenter
)

var anchorNames = []string{
	AnchorMiddle:       "middle",
	AnchorMiddleV:      "middle_v",
	AnchorMiddleH:      "middle_h",
	AnchorLeftCenter:   "left_center",
	AnchorRightCenter:  "right_center",
	AnchorTopCenter:    "top_center",
	AnchorBottomCenter: "bottom_center",
}

func (a Anchor) String() string {
	if a >= 0 && int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// ParseAnchor converts an anchor name such as "middle" or "top_center".
func ParseAnchor(s string) (Anchor, error) {
	for i, n := range anchorNames {
		if n == s {
			return Anchor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown anchor %q", s)
}

// Rect returns the rectangle of the given size anchored inside area.
// Centring rounds toward the lower coordinate.
func (a Anchor) Rect(area geom.Rect, size geom.Vec2) geom.Rect {
	mid := area.Middle()
	cx := mid.X - size.X/2
	cy := mid.Y - size.Y/2
	switch a {
	case AnchorMiddle:
		return geom.R(cx, cy, cx+size.X, cy+size.Y)
	case AnchorMiddleV:
		return geom.R(cx, area.Top, cx+size.X, area.Bottom)
	case AnchorMiddleH:
		return geom.R(area.Left, cy, area.Right, cy+size.Y)
	case AnchorLeftCenter:
		return geom.R(area.Left, cy, area.Left+size.X, cy+size.Y)
	case AnchorRightCenter:
		return geom.R(area.Right-size.X, cy, area.Right, cy+size.Y)
	case AnchorTopCenter:
		return geom.R(cx, area.Top, cx+size.X, area.Top+size.Y)
	case AnchorBottomCenter:
		return geom.R(cx, area.Bottom-size.Y, cx+size.X, area.Bottom)
	}
	panic(configErrorf("position", "unknown anchor %v", a))
}

// Position runs Generator on a rectangle of the given extent anchored in
// the area. It fails if the rectangle does not fit.
type Position struct {
	Extent
	Anchor    Anchor
	Generator Generator
}

func (Position) generator() {}

func (g Position) Make(c grid.Canvas, r *rng.Rand) bool {
	size := g.resolve("position", r)
	rect := g.Anchor.Rect(c.Area, size)
	if !c.Area.ContainsRect(rect) {
		return false
	}
	return g.Generator.Make(c.With(rect), r)
}
