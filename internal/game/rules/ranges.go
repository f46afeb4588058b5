package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/pathfinding"
)

// Ranges are the nodes a selected unit can act on this turn.
type Ranges struct {
	Move   core.NodeSet
	Attack core.NodeSet
	Charge core.NodeSet

	// Approach maps each charge target to the move-range node the unit
	// steps onto before attacking.
	Approach map[*core.Node]*core.Node
}

// EmptyRanges returns ranges with no nodes.
func EmptyRanges() Ranges {
	return Ranges{
		Move:     core.NewNodeSet(),
		Attack:   core.NewNodeSet(),
		Charge:   core.NewNodeSet(),
		Approach: map[*core.Node]*core.Node{},
	}
}

// IsEmpty reports whether the unit can do nothing.
func (r Ranges) IsEmpty() bool {
	return r.Move.Len() == 0 && r.Attack.Len() == 0 && r.Charge.Len() == 0
}

// RangeCalculator derives move, attack and charge sets for units
type RangeCalculator struct {
	graph  *core.Graph
	finder *pathfinding.PathFinder
	logger zerolog.Logger
}

// NewRangeCalculator creates a new range calculator
func NewRangeCalculator(graph *core.Graph, finder *pathfinding.PathFinder, logger zerolog.Logger) *RangeCalculator {
	return &RangeCalculator{
		graph:  graph,
		finder: finder,
		logger: logger.With().Str("component", "RangeCalculator").Logger(),
	}
}

// Compute returns the ranges for u from its current node. A unit standing on
// terrain it cannot enter is stuck and gets empty ranges.
func (rc *RangeCalculator) Compute(u *core.Unit) Ranges {
	r := EmptyRanges()
	if u == nil || !u.IsAlive() {
		return r
	}

	origin := rc.graph.Node(u.Position())
	if origin == nil {
		rc.logger.Error().Str("unit", u.String()).Msg("Unit is off the board")
		return r
	}
	if !origin.CanEnter(u.Type) {
		rc.logger.Error().
			Str("unit", u.String()).
			Str("terrain", origin.Terrain.String()).
			Msg("Unit stands on terrain it cannot enter, treating as stuck")
		return r
	}

	if u.CanMove() {
		r.Move = rc.finder.FindNodesInRange(origin, u.MoveLeft, u.Type)
	}

	if u.CanAttack() {
		r.Attack = rc.AttackRange(origin, u.Faction())
	}

	if u.CanMove() && u.CanAttack() {
		rc.chargeRange(u, origin, &r)
	}

	rc.logger.Debug().
		Str("unit", u.ID()).
		Int("move", r.Move.Len()).
		Int("attack", r.Attack.Len()).
		Int("charge", r.Charge.Len()).
		Msg("Ranges computed")

	return r
}

// AttackRange returns the neighbors of origin holding a piece hostile to faction.
func (rc *RangeCalculator) AttackRange(origin *core.Node, faction core.FactionTag) core.NodeSet {
	set := core.NewNodeSet()
	for _, nb := range origin.Neighbors() {
		if nb.HostileTo(faction) != nil {
			set.Add(nb)
		}
	}
	return set
}

func (rc *RangeCalculator) chargeRange(u *core.Unit, origin *core.Node, r *Ranges) {
	for _, m := range r.Move.Sorted() {
		for _, nb := range m.Neighbors() {
			if nb == origin || origin.IsNeighbor(nb) || r.Charge.Contains(nb) {
				continue
			}
			if nb.HostileTo(u.Faction()) == nil {
				continue
			}
			r.Charge.Add(nb)
			r.Approach[nb] = rc.approachNode(u, origin, nb, m, r.Move)
		}
	}
}

// approachNode walks the shortest path back from target to origin and takes
// its first step. If that node is outside the move range, the node the target
// was discovered from is used instead. A plain backtrace would return the
// first step unconditionally; the fallback keeps the approach a node the unit
// can actually reach this turn.
func (rc *RangeCalculator) approachNode(u *core.Unit, origin, target, via *core.Node, move core.NodeSet) *core.Node {
	path, err := rc.finder.FindPath(target, origin, u.Type, true)
	if err == nil && len(path) > 0 && move.Contains(path[0]) {
		return path[0]
	}
	return via
}
