package core

import "fmt"

// Terrain is the immutable land type of a node.
type Terrain int

const (
	TerrainSea Terrain = iota
	TerrainWater
	TerrainPlains
	TerrainForest
	TerrainHill
)

func (t Terrain) String() string {
	switch t {
	case TerrainSea:
		return "Sea"
	case TerrainWater:
		return "Water"
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainHill:
		return "Hill"
	default:
		return fmt.Sprintf("Terrain(%d)", int(t))
	}
}

// ParseTerrain converts a terrain name to a Terrain. Unknown names map to Sea.
func ParseTerrain(s string) Terrain {
	switch s {
	case "Water", "water":
		return TerrainWater
	case "Plains", "plains":
		return TerrainPlains
	case "Forest", "forest":
		return TerrainForest
	case "Hill", "hill":
		return TerrainHill
	default:
		return TerrainSea
	}
}

// Movement costs
const (
	MoveImpassable = -1
	MoveOpen       = 1
	MoveDifficult  = 2
)

// Passability says which unit types may enter a node.
type Passability int

const (
	PassImpassable Passability = iota
	PassLandOnly
	PassNavalOnly
)

func (p Passability) String() string {
	switch p {
	case PassLandOnly:
		return "LandOnly"
	case PassNavalOnly:
		return "NavalOnly"
	default:
		return "Impassable"
	}
}

// Allows reports whether a unit of the given type can enter.
func (p Passability) Allows(t UnitType) bool {
	switch p {
	case PassLandOnly:
		return t == UnitLand
	case PassNavalOnly:
		return t == UnitNaval
	default:
		return false
	}
}

// TerrainStats are the per-terrain values copied onto a node at initialization.
type TerrainStats struct {
	MovementCost int
	Passability  Passability
	Defense      int
	Tax          int
}

var terrainTable = map[Terrain]TerrainStats{
	TerrainWater:  {MovementCost: MoveOpen, Passability: PassNavalOnly, Defense: 0, Tax: 0},
	TerrainPlains: {MovementCost: MoveOpen, Passability: PassLandOnly, Defense: 0, Tax: 3},
	TerrainForest: {MovementCost: MoveDifficult, Passability: PassLandOnly, Defense: 1, Tax: 2},
	TerrainHill:   {MovementCost: MoveDifficult, Passability: PassLandOnly, Defense: 2, Tax: 2},
}

// StatsFor returns the stats for a terrain. Sea and unknown terrain are impassable.
func StatsFor(t Terrain) TerrainStats {
	if s, ok := terrainTable[t]; ok {
		return s
	}
	return TerrainStats{MovementCost: MoveImpassable, Passability: PassImpassable}
}
