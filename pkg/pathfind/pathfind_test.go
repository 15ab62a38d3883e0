package pathfind

import (
	"testing"

	"github.com/matzehuels/levelgen/pkg/geom"
)

func manhattan(goal geom.Vec2) func(geom.Vec2) float64 {
	return func(v geom.Vec2) float64 { return float64(v.Dist4(goal)) }
}

func TestStraightLine(t *testing.T) {
	area := geom.R(0, 0, 10, 1)
	start, goal := geom.V(0, 0), geom.V(9, 0)
	p := New(area, func(geom.Vec2) float64 { return 1 }, manhattan(goal), geom.Directions4(), start, goal)
	if !p.Reachable(goal) {
		t.Fatal("goal should be reachable")
	}
	if got := p.Cost(goal); got != 9 {
		t.Errorf("Cost(goal) = %v, want 9", got)
	}
	route := p.Route()
	if len(route) != 10 || route[0] != goal || route[len(route)-1] != start {
		t.Errorf("Route() = %v", route)
	}
}

func TestAvoidsWalls(t *testing.T) {
	// A wall at x=2 with a single gap at y=4.
	area := geom.R(0, 0, 5, 5)
	wall := func(v geom.Vec2) float64 {
		if v.X == 2 && v.Y != 4 {
			return Infinity
		}
		return 1
	}
	start, goal := geom.V(0, 0), geom.V(4, 0)
	p := New(area, wall, manhattan(goal), geom.Directions4(), start, goal)
	route := p.Route()
	if route == nil {
		t.Fatal("goal should be reachable through the gap")
	}
	for i, v := range route {
		if wall(v) == Infinity {
			t.Errorf("route passes through wall at %v", v)
		}
		if i > 0 && v.Dist4(route[i-1]) != 1 {
			t.Errorf("route step %v -> %v is not 4-connected", route[i-1], v)
		}
	}
	if got := p.Cost(goal); got != 12 {
		t.Errorf("Cost(goal) = %v, want 12", got)
	}
}

func TestUnreachable(t *testing.T) {
	area := geom.R(0, 0, 3, 3)
	blocked := func(v geom.Vec2) float64 {
		if v.X == 1 {
			return Infinity
		}
		return 1
	}
	start, goal := geom.V(0, 1), geom.V(2, 1)
	p := New(area, blocked, manhattan(goal), geom.Directions4(), start, goal)
	if p.Reachable(goal) {
		t.Error("goal behind a full wall should be unreachable")
	}
	if p.Route() != nil {
		t.Error("Route() should be nil when unreachable")
	}
}

func TestPrefersCheapCells(t *testing.T) {
	area := geom.R(0, 0, 3, 3)
	// The middle row is expensive; the top row is cheap.
	cost := func(v geom.Vec2) float64 {
		if v.Y == 1 {
			return 10
		}
		return 1
	}
	start, goal := geom.V(0, 1), geom.V(2, 1)
	p := New(area, cost, func(geom.Vec2) float64 { return 0 }, geom.Directions4(), start, goal)
	if got := p.Cost(goal); got != 13 {
		t.Errorf("Cost(goal) = %v, want 13 via the cheap row", got)
	}
}

func TestCostEvaluatedOncePerCell(t *testing.T) {
	area := geom.R(0, 0, 6, 6)
	calls := map[geom.Vec2]int{}
	cost := func(v geom.Vec2) float64 {
		calls[v]++
		return 1
	}
	New(area, cost, func(geom.Vec2) float64 { return 0 }, geom.Directions4(), geom.V(0, 0), geom.V(5, 5))
	for v, n := range calls {
		if n != 1 {
			t.Errorf("cost(%v) evaluated %d times", v, n)
		}
	}
}

func TestOffsetArea(t *testing.T) {
	area := geom.R(10, 20, 14, 23)
	start, goal := geom.V(10, 20), geom.V(13, 22)
	p := New(area, func(geom.Vec2) float64 { return 1 }, manhattan(goal), geom.Directions4(), start, goal)
	for v := goal; v != start; v = p.NextMove(v) {
		if !area.Contains(v) {
			t.Fatalf("route left the area at %v", v)
		}
	}
}
