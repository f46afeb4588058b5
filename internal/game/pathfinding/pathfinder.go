// Package pathfinding searches the hex node graph: A* shortest paths and
// bounded-cost reachability.
package pathfinding

import (
	"container/heap"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// PathFinder runs searches over a graph. It never mutates nodes; per-search
// scratch state lives in slices indexed by node index and is reset at the
// start of every call.
type PathFinder struct {
	graph  *core.Graph
	logger zerolog.Logger

	gCost     []int
	hCost     []int
	cameFrom  []int
	closed    []bool
	costSoFar []int
}

// New creates a PathFinder over graph.
func New(graph *core.Graph, logger zerolog.Logger) *PathFinder {
	n := graph.Len()
	return &PathFinder{
		graph:     graph,
		logger:    logger.With().Str("component", "PathFinder").Logger(),
		gCost:     make([]int, n),
		hCost:     make([]int, n),
		cameFrom:  make([]int, n),
		closed:    make([]bool, n),
		costSoFar: make([]int, n),
	}
}

func (pf *PathFinder) idx(n *core.Node) int { return n.Position.ToIndex(pf.graph.W) }

func (pf *PathFinder) reset() {
	for i := range pf.gCost {
		pf.gCost[i] = -1
		pf.hCost[i] = 0
		pf.cameFrom[i] = -1
		pf.closed[i] = false
		pf.costSoFar[i] = -1
	}
}

// stepCost is the weight of entering n. A target entered through
// ignoreDestination may sit on impassable terrain; it costs one step.
func stepCost(n *core.Node) int {
	if n.MovementCost < core.MoveOpen {
		return core.MoveOpen
	}
	return n.MovementCost
}

// FindPath returns the nodes from start (exclusive) to end (inclusive) along a
// cheapest route for a unit of type t. Intermediate nodes must be enterable
// and unoccupied; the end node must be too unless ignoreDestination is set.
// Returns an empty path when start == end and core.ErrNoPath when end cannot
// be reached.
func (pf *PathFinder) FindPath(start, end *core.Node, t core.UnitType, ignoreDestination bool) ([]*core.Node, error) {
	if start == nil || end == nil {
		return nil, core.ErrInvalidCoordinates
	}
	if start == end {
		return []*core.Node{}, nil
	}

	pf.reset()

	startIdx := pf.idx(start)
	pf.gCost[startIdx] = 0
	pf.hCost[startIdx] = start.Position.DistanceTo(end.Position)

	open := &openSet{}
	heap.Push(open, &openEntry{node: start, g: 0, h: pf.hCost[startIdx]})

	seq := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*openEntry)
		curIdx := pf.idx(cur.node)
		if pf.closed[curIdx] || cur.g != pf.gCost[curIdx] {
			continue
		}
		if cur.node == end {
			return pf.buildPath(startIdx, curIdx), nil
		}
		pf.closed[curIdx] = true

		for _, nb := range cur.node.Neighbors() {
			nbIdx := pf.idx(nb)
			if pf.closed[nbIdx] {
				continue
			}
			if !(nb == end && ignoreDestination) && !isOpenFor(nb, t) {
				continue
			}

			g := pf.gCost[curIdx] + stepCost(nb)
			if pf.gCost[nbIdx] >= 0 && g >= pf.gCost[nbIdx] {
				continue
			}
			pf.gCost[nbIdx] = g
			pf.hCost[nbIdx] = nb.Position.DistanceTo(end.Position)
			pf.cameFrom[nbIdx] = curIdx
			seq++
			heap.Push(open, &openEntry{node: nb, g: g, h: pf.hCost[nbIdx], seq: seq})
		}
	}

	pf.logger.Debug().
		Str("from", start.Position.String()).
		Str("to", end.Position.String()).
		Str("unit_type", t.String()).
		Bool("ignore_destination", ignoreDestination).
		Msg("No path found")
	return nil, core.ErrNoPath
}

func (pf *PathFinder) buildPath(startIdx, endIdx int) []*core.Node {
	var path []*core.Node
	for i := endIdx; i != startIdx && i >= 0; i = pf.cameFrom[i] {
		path = append(path, pf.graph.Nodes[i])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindNodesInRange returns every node a unit of type t can reach from start
// for a total movement cost of at most maxCost, excluding start. Occupied and
// impassable nodes are neither entered nor expanded.
//
// The frontier is expanded breadth-first in neighbor order and a node keeps
// the cost it was first reached with, even if a cheaper route turns up later.
// Costs are settled over the whole reachable area before filtering by
// maxCost, so a larger range only ever adds nodes.
func (pf *PathFinder) FindNodesInRange(start *core.Node, maxCost int, t core.UnitType) core.NodeSet {
	result := core.NodeSet{}
	if start == nil || maxCost <= 0 {
		return result
	}

	pf.reset()
	pf.costSoFar[pf.idx(start)] = 0

	queue := []*core.Node{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curCost := pf.costSoFar[pf.idx(cur)]

		for _, nb := range cur.Neighbors() {
			if nb == start || !isOpenFor(nb, t) {
				continue
			}
			nbIdx := pf.idx(nb)
			// First-reached cost stands
			if pf.costSoFar[nbIdx] >= 0 {
				continue
			}
			cost := curCost + nb.MovementCost
			pf.costSoFar[nbIdx] = cost
			if cost <= maxCost {
				result.Add(nb)
			}
			queue = append(queue, nb)
		}
	}
	return result
}

// PathCost sums the entry cost of every node on path.
func PathCost(path []*core.Node) int {
	total := 0
	for _, n := range path {
		total += stepCost(n)
	}
	return total
}

func isOpenFor(n *core.Node, t core.UnitType) bool {
	return n.CanEnter(t) && !n.IsOccupied()
}

// --- open set ---

type openEntry struct {
	node  *core.Node
	g, h  int
	seq   int
	index int
}

type openSet []*openEntry

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	fi, fj := o[i].g+o[i].h, o[j].g+o[j].h
	if fi != fj {
		return fi < fj
	}
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int)       { o[i], o[j] = o[j], o[i]; o[i].index = i; o[j].index = j }
func (o *openSet) Push(x interface{}) { e := x.(*openEntry); e.index = len(*o); *o = append(*o, e) }
func (o *openSet) Pop() interface{} {
	old := *o
	e := old[len(old)-1]
	old[len(old)-1] = nil
	*o = old[:len(old)-1]
	return e
}
