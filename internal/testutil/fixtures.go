package testutil

import (
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/mapgen"
)

// Stats used by fixtures unless a test overrides them.
var (
	LandStats     = core.UnitStats{Strength: 1000, MoveAllowance: 3, NumAttacks: 1, Upkeep: 2}
	NavalStats    = core.UnitStats{Strength: 800, MoveAllowance: 4, NumAttacks: 1, Upkeep: 3}
	CapitalStats  = core.BuildingStats{Defense: 2, Tax: 5, Durability: 1500}
	TownStats     = core.BuildingStats{Defense: 1, Tax: 2, Durability: 800}
	PlainsLayout5 = `
		. . . . .
		. . . . .
		. . . . .
		. . . . .
		. . . . .`
)

// LayoutGraph builds a graph from layout rows (see mapgen.ParseLayout).
func LayoutGraph(layout string) *core.Graph {
	lt := mapgen.MustParseLayout(layout)
	return core.NewGraph(lt.W, lt.H, lt)
}

// PlainsGraph builds a w x h graph that is plains everywhere.
func PlainsGraph(w, h int) *core.Graph {
	return core.NewGraph(w, h, mapgen.Uniform(core.TerrainPlains))
}

// PlaceUnit creates a unit and puts it on the node at c.
func PlaceUnit(g *core.Graph, faction core.FactionTag, t core.UnitType, stats core.UnitStats, c core.Coordinate) *core.Unit {
	u := core.NewUnit(faction, t, stats, c)
	g.Node(c).OccupyingUnit = u
	return u
}

// PlaceBuilding creates a building and puts it on the node at c.
func PlaceBuilding(g *core.Graph, faction core.FactionTag, stats core.BuildingStats, c core.Coordinate) *core.Building {
	b := core.NewBuilding(faction, stats, c)
	g.Node(c).LocalBuilding = b
	return b
}
