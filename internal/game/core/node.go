package core

// Node is a single hex cell of the board.
//
// A node holds at most one occupying unit and at most one building. The
// neighbor list is fixed once the graph is built.
type Node struct {
	Position     Coordinate
	Terrain      Terrain
	MovementCost int
	Passability  Passability
	DefenseBonus int
	TaxBonus     int

	OccupyingUnit *Unit
	LocalBuilding *Building

	neighbors []*Node
}

// NewNode creates a node initialized for the given terrain.
func NewNode(terrain Terrain, position Coordinate) *Node {
	n := &Node{}
	n.Initialize(terrain, position)
	return n
}

// Initialize sets position and terrain-derived stats.
func (n *Node) Initialize(terrain Terrain, position Coordinate) {
	stats := StatsFor(terrain)
	n.Position = position
	n.Terrain = terrain
	n.MovementCost = stats.MovementCost
	n.Passability = stats.Passability
	n.DefenseBonus = stats.Defense
	n.TaxBonus = stats.Tax
}

// FindNeighbors resolves the six adjacent coordinates through lookup, in
// Directions order. Missing coordinates are skipped. Links that already
// exist are kept. Only n's list is written; the graph gets symmetric links
// by calling this on every node.
func (n *Node) FindNeighbors(lookup func(Coordinate) (*Node, bool)) {
	for _, c := range n.Position.Neighbors() {
		other, ok := lookup(c)
		if !ok || other == nil || other == n {
			continue
		}
		n.link(other)
	}
}

func (n *Node) link(other *Node) {
	for _, existing := range n.neighbors {
		if existing == other {
			return
		}
	}
	n.neighbors = append(n.neighbors, other)
}

// Neighbors returns the connected adjacent nodes in Directions order
// (NE, E, SE, SW, W, NW).
func (n *Node) Neighbors() []*Node {
	return n.neighbors
}

// IsNeighbor reports whether other is linked to n.
func (n *Node) IsNeighbor(other *Node) bool {
	for _, nb := range n.neighbors {
		if nb == other {
			return true
		}
	}
	return false
}

// CanEnter reports whether a unit of type t may stand on this node.
func (n *Node) CanEnter(t UnitType) bool {
	return n.MovementCost != MoveImpassable && n.Passability.Allows(t)
}

// IsOccupied reports whether a unit stands on the node.
func (n *Node) IsOccupied() bool {
	return n.OccupyingUnit != nil
}

// HasBuilding reports whether a building stands on the node.
func (n *Node) HasBuilding() bool {
	return n.LocalBuilding != nil
}

// CalculateTaxTotal returns terrain tax plus building tax. Land without a
// building yields nothing.
func (n *Node) CalculateTaxTotal() int {
	if n.LocalBuilding == nil {
		return 0
	}
	return n.TaxBonus + n.LocalBuilding.Tax
}

// CalculateDefenseTotal returns terrain defense plus any building defense.
func (n *Node) CalculateDefenseTotal() int {
	total := n.DefenseBonus
	if n.LocalBuilding != nil {
		total += n.LocalBuilding.Defense
	}
	return total
}

// HostileTo returns the deployable on this node that belongs to a faction
// other than tag, preferring the unit over the building. Returns nil if none.
func (n *Node) HostileTo(tag FactionTag) Deployable {
	if n.OccupyingUnit != nil && n.OccupyingUnit.Faction() != tag {
		return n.OccupyingUnit
	}
	if n.LocalBuilding != nil && n.LocalBuilding.Faction() != tag {
		return n.LocalBuilding
	}
	return nil
}
