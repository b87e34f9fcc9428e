package world

import (
	"container/heap"
)

type pathNode struct {
	point  Point
	g      float64
	f      float64
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	item := x.(*pathNode)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// FindPath runs A* from one tile to another over Exits, weighting steps with
// PathCost and using straight-line distance as the heuristic. The goal tile
// may itself be blocked (a creature standing on it); every other step must be
// open. The returned path starts at from and ends at to.
func FindPath(m *Map, from, to Point) ([]Point, bool) {
	if !m.InBounds(from) || !m.InBounds(to) || !m.TileAt(to).IsPassable() {
		return nil, false
	}

	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{point: from, f: Distance(from, to)})
	gScore := map[Point]float64{from: 0}
	closed := make(map[Point]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, seen := closed[current.point]; seen {
			continue
		}
		closed[current.point] = struct{}{}
		if current.point == to {
			return reconstructPath(current), true
		}

		for _, d := range cardinal {
			next := current.point.Add(d.X, d.Y)
			if next != to && (!m.InBounds(next) || m.IsBlocked(next)) {
				continue
			}
			if _, seen := closed[next]; seen {
				continue
			}
			tentativeG := current.g + m.PathCost(current.point, next)
			if prev, ok := gScore[next]; ok && tentativeG >= prev {
				continue
			}
			gScore[next] = tentativeG
			heap.Push(open, &pathNode{
				point:  next,
				g:      tentativeG,
				f:      tentativeG + Distance(next, to),
				parent: current,
			})
		}
	}
	return nil, false
}

func reconstructPath(end *pathNode) []Point {
	path := make([]Point, 0)
	for node := end; node != nil; node = node.parent {
		path = append(path, node.point)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}
