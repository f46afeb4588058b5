package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// MapConfig holds configuration for scenario generation
type MapConfig struct {
	Width              int
	Height             int
	Noise              NoiseConfig
	MinCapitalSpacing  int
	TownsPerFaction    int
	StartingLandUnits  int
	StartingNavalUnits int

	// Base replaces the noise terrain when set, e.g. with a LayoutTerrain.
	Base core.TerrainSource
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h int, seed int64) MapConfig {
	return MapConfig{
		Width:  w,
		Height: h,
		Noise: NoiseConfig{
			Seed:        seed,
			Scale:       0.15,
			SeaLevel:    0.28,
			WaterLevel:  0.36,
			HillLevel:   0.72,
			ForestLevel: 0.6,
		},
		MinCapitalSpacing:  w / 2,
		TownsPerFaction:    1,
		StartingLandUnits:  2,
		StartingNavalUnits: 1,
	}
}

// Placement lists where one faction's pieces start.
type Placement struct {
	Faction    core.FactionTag
	Capital    core.Coordinate
	Towns      []core.Coordinate
	LandUnits  []core.Coordinate
	NavalUnits []core.Coordinate
}

// Scenario is everything needed to set up a board: terrain plus the
// starting placement of each faction.
type Scenario struct {
	Width, Height int
	Terrain       core.TerrainSource
	Placements    []Placement
}

// Placement returns the starting placement for tag.
func (s *Scenario) Placement(tag core.FactionTag) (Placement, bool) {
	for _, p := range s.Placements {
		if p.Faction == tag {
			return p, true
		}
	}
	return Placement{}, false
}

// Generator handles scenario generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new scenario generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateScenario builds terrain and places both factions. The player
// starts in the western third and the enemy in the eastern third; a land
// corridor is carved between the capitals so they are always connected.
func (g *Generator) GenerateScenario() (*Scenario, error) {
	if g.config.Width < 6 || g.config.Height < 3 {
		return nil, fmt.Errorf("map %dx%d is too small: need at least 6x3", g.config.Width, g.config.Height)
	}

	base := g.config.Base
	if base == nil {
		base = NewNoiseTerrain(g.config.Noise)
	}
	terrain := NewOverlay(base)
	used := make(map[core.Coordinate]bool)

	player, enemy, err := g.placeCapitals()
	if err != nil {
		return nil, err
	}
	used[player] = true
	used[enemy] = true

	g.clearAround(terrain, player)
	g.clearAround(terrain, enemy)
	g.carveCorridor(terrain, player, enemy)

	placements := []Placement{
		{Faction: core.PlayerFaction, Capital: player},
		{Faction: core.EnemyFaction, Capital: enemy},
	}
	for i := range placements {
		p := &placements[i]
		p.Towns = g.placeTowns(terrain, p.Capital, used)
		p.LandUnits = g.placeLandUnits(p.Capital, used)
		p.NavalUnits = g.placeNavalUnits(terrain, p.Capital, used)
	}

	return &Scenario{
		Width:      g.config.Width,
		Height:     g.config.Height,
		Terrain:    terrain,
		Placements: placements,
	}, nil
}

func (g *Generator) placeCapitals() (core.Coordinate, core.Coordinate, error) {
	w, h := g.config.Width, g.config.Height
	third := max(w/3, 1)

	pick := func(minX, maxX int) core.Coordinate {
		return core.Coordinate{
			X: minX + g.rng.Intn(max(maxX-minX, 1)),
			Y: 1 + g.rng.Intn(max(h-2, 1)),
		}
	}

	maxAttempts := w * h
	for attempts := 0; attempts < maxAttempts; attempts++ {
		player := pick(1, third)
		enemy := pick(w-third, w-1)
		if player.DistanceTo(enemy) >= g.config.MinCapitalSpacing {
			return player, enemy, nil
		}
	}

	// Fallback: opposite edges of the middle row
	player := core.Coordinate{X: 1, Y: h / 2}
	enemy := core.Coordinate{X: w - 2, Y: h / 2}
	if player.DistanceTo(enemy) < g.config.MinCapitalSpacing {
		return core.Coordinate{}, core.Coordinate{}, fmt.Errorf(
			"unable to place capitals %d apart on a %dx%d map", g.config.MinCapitalSpacing, w, h)
	}
	return player, enemy, nil
}

// clearAround forces a capital and its neighbors to plains so the capital
// can be garrisoned and recruited from.
func (g *Generator) clearAround(terrain *Overlay, c core.Coordinate) {
	terrain.Set(c, core.TerrainPlains)
	for _, nb := range c.ValidNeighbors(g.config.Width, g.config.Height) {
		terrain.Set(nb, core.TerrainPlains)
	}
}

func (g *Generator) carveCorridor(terrain *Overlay, from, to core.Coordinate) {
	cur := from
	for steps := 0; cur != to && steps < g.config.Width*g.config.Height; steps++ {
		best := cur
		bestDist := cur.DistanceTo(to)
		for _, nb := range cur.ValidNeighbors(g.config.Width, g.config.Height) {
			if d := nb.DistanceTo(to); d < bestDist {
				best, bestDist = nb, d
			}
		}
		if best == cur {
			return
		}
		cur = best
		if !core.StatsFor(terrain.TerrainAt(cur)).Passability.Allows(core.UnitLand) {
			terrain.Set(cur, core.TerrainPlains)
		}
	}
}

func (g *Generator) placeTowns(terrain *Overlay, capital core.Coordinate, used map[core.Coordinate]bool) []core.Coordinate {
	var candidates []core.Coordinate
	for _, c := range g.ring(capital, 2) {
		if !used[c] {
			candidates = append(candidates, c)
		}
	}

	var towns []core.Coordinate
	for len(towns) < g.config.TownsPerFaction && len(candidates) > 0 {
		i := g.rng.Intn(len(candidates))
		c := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)

		if !core.StatsFor(terrain.TerrainAt(c)).Passability.Allows(core.UnitLand) {
			terrain.Set(c, core.TerrainPlains)
		}
		used[c] = true
		towns = append(towns, c)
	}
	return towns
}

func (g *Generator) placeLandUnits(capital core.Coordinate, used map[core.Coordinate]bool) []core.Coordinate {
	var free []core.Coordinate
	for _, nb := range capital.ValidNeighbors(g.config.Width, g.config.Height) {
		if !used[nb] {
			free = append(free, nb)
		}
	}
	g.rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	n := min(g.config.StartingLandUnits, len(free))
	for _, c := range free[:n] {
		used[c] = true
	}
	return free[:n]
}

func (g *Generator) placeNavalUnits(terrain *Overlay, capital core.Coordinate, used map[core.Coordinate]bool) []core.Coordinate {
	var water []core.Coordinate
	for radius := 1; radius <= 3; radius++ {
		for _, c := range g.ring(capital, radius) {
			if !used[c] && terrain.TerrainAt(c) == core.TerrainWater {
				water = append(water, c)
			}
		}
	}

	n := min(g.config.StartingNavalUnits, len(water))
	for _, c := range water[:n] {
		used[c] = true
	}
	return water[:n]
}

// ring returns the in-bounds coordinates exactly radius steps from center,
// in row-major order.
func (g *Generator) ring(center core.Coordinate, radius int) []core.Coordinate {
	var out []core.Coordinate
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius - 1; x <= center.X+radius+1; x++ {
			c := core.Coordinate{X: x, Y: y}
			if c.IsValid(g.config.Width, g.config.Height) && center.DistanceTo(c) == radius {
				out = append(out, c)
			}
		}
	}
	return out
}
