package core

// TerrainSource reports the terrain at a coordinate. It is consulted once per
// coordinate while the graph is built.
type TerrainSource interface {
	TerrainAt(c Coordinate) Terrain
}

// TerrainFunc adapts a function to TerrainSource.
type TerrainFunc func(c Coordinate) Terrain

// TerrainAt implements TerrainSource
func (f TerrainFunc) TerrainAt(c Coordinate) Terrain { return f(c) }

// Graph is the rectangular node graph, indexed row-major.
type Graph struct {
	W, H  int
	Nodes []*Node // length = W*H
}

// NewGraph builds every node from the terrain source, then links neighbors
// in a second pass.
func NewGraph(w, h int, terrain TerrainSource) *Graph {
	g := &Graph{W: w, H: h, Nodes: make([]*Node, w*h)}
	for i := range g.Nodes {
		c := FromIndex(i, w)
		g.Nodes[i] = NewNode(terrain.TerrainAt(c), c)
	}
	for _, n := range g.Nodes {
		n.FindNeighbors(g.Lookup)
	}
	return g
}

func (g *Graph) Idx(x, y int) int      { return y*g.W + x }
func (g *Graph) XY(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds checks if coordinates are within board boundaries
func (g *Graph) InBounds(c Coordinate) bool {
	return c.IsValid(g.W, g.H)
}

// Lookup returns the node at c, if any.
func (g *Graph) Lookup(c Coordinate) (*Node, bool) {
	if !g.InBounds(c) {
		return nil, false
	}
	return g.Nodes[c.ToIndex(g.W)], true
}

// Node returns the node at c, or nil if c is off the board.
func (g *Graph) Node(c Coordinate) *Node {
	n, _ := g.Lookup(c)
	return n
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.Nodes) }
