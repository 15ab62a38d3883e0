// Package pathfind finds cheapest paths over a rectangular region.
//
// [New] runs an A* search from a start cell to a goal cell. Entering a cell
// costs whatever the cost function returns for it; [Infinity] marks a cell
// impassable. The cost function is evaluated at most once per cell per
// search. After the search, [Path.NextMove] walks the result back from the
// goal toward the start one step at a time.
//
//	p := pathfind.New(area, cost, heuristic, geom.Directions4(), start, goal)
//	if !p.Reachable(goal) {
//	    return false
//	}
//	for v := goal; v != start; v = p.NextMove(v) {
//	    // visit v
//	}
package pathfind
