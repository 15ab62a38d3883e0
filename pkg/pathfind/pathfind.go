package pathfind

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/matzehuels/levelgen/pkg/geom"
)

// Infinity is the cost of an impassable cell.
var Infinity = math.Inf(1)

// Path is the result of one search.
type Path struct {
	area   geom.Rect
	start  geom.Vec2
	goal   geom.Vec2
	dist   []float64
	parent []int
}

// New searches area for the cheapest route from start to goal moving along
// directions. cost returns the price of entering a cell; heuristic estimates
// the remaining price from a cell to goal. The start cell's own cost is never
// paid. It panics if start or goal lie outside area.
func New(area geom.Rect, cost func(geom.Vec2) float64, heuristic func(geom.Vec2) float64,
	directions []geom.Vec2, start, goal geom.Vec2) *Path {
	if !area.Contains(start) || !area.Contains(goal) {
		panic(fmt.Sprintf("pathfind: endpoints %v, %v outside %v", start, goal, area))
	}
	n := area.Area()
	p := &Path{
		area:   area,
		start:  start,
		goal:   goal,
		dist:   make([]float64, n),
		parent: make([]int, n),
	}
	costs := make([]float64, n)
	known := make([]bool, n)
	closed := make([]bool, n)
	for i := range p.dist {
		p.dist[i] = Infinity
		p.parent[i] = -1
	}
	enter := func(i int, v geom.Vec2) float64 {
		if !known[i] {
			costs[i] = cost(v)
			known[i] = true
		}
		return costs[i]
	}

	si := area.Index(start)
	p.dist[si] = 0
	q := &queue{{pos: start, priority: heuristic(start)}}
	for q.Len() > 0 {
		it := heap.Pop(q).(item)
		vi := area.Index(it.pos)
		if closed[vi] {
			continue
		}
		closed[vi] = true
		if it.pos == goal {
			break
		}
		for _, d := range directions {
			w := it.pos.Add(d)
			if !area.Contains(w) {
				continue
			}
			wi := area.Index(w)
			if closed[wi] {
				continue
			}
			c := enter(wi, w)
			if math.IsInf(c, 1) {
				continue
			}
			if nd := p.dist[vi] + c; nd < p.dist[wi] {
				p.dist[wi] = nd
				p.parent[wi] = vi
				heap.Push(q, item{pos: w, priority: nd + heuristic(w)})
			}
		}
	}
	return p
}

// Start returns the search origin.
func (p *Path) Start() geom.Vec2 { return p.start }

// Goal returns the search target.
func (p *Path) Goal() geom.Vec2 { return p.goal }

// Reachable reports whether the search found a route from the start to v.
func (p *Path) Reachable(v geom.Vec2) bool {
	return p.area.Contains(v) && !math.IsInf(p.dist[p.area.Index(v)], 1)
}

// Cost returns the accumulated price of reaching v, or Infinity.
func (p *Path) Cost(v geom.Vec2) float64 {
	if !p.area.Contains(v) {
		return Infinity
	}
	return p.dist[p.area.Index(v)]
}

// NextMove returns the cell preceding v on the route from the start. It
// panics if v is the start or was not reached.
func (p *Path) NextMove(v geom.Vec2) geom.Vec2 {
	if !p.Reachable(v) || v == p.start {
		panic(fmt.Sprintf("pathfind: no move from %v", v))
	}
	i := p.parent[p.area.Index(v)]
	return geom.V(p.area.Left+i%p.area.Width(), p.area.Top+i/p.area.Width())
}

// Route returns the cells from goal back to start, both included, or nil if
// the goal was not reached.
func (p *Path) Route() []geom.Vec2 {
	if !p.Reachable(p.goal) {
		return nil
	}
	out := []geom.Vec2{p.goal}
	for v := p.goal; v != p.start; {
		v = p.NextMove(v)
		out = append(out, v)
	}
	return out
}

type item struct {
	pos      geom.Vec2
	priority float64
}

// queue is a min-heap on priority.
type queue []item

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].priority < q[j].priority }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}
