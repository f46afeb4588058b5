package mapgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestDefaultMapConfig(t *testing.T) {
	config := DefaultMapConfig(20, 12, 7)

	assert.Equal(t, 20, config.Width)
	assert.Equal(t, 12, config.Height)
	assert.Equal(t, int64(7), config.Noise.Seed)
	assert.Equal(t, 10, config.MinCapitalSpacing)
	assert.Equal(t, 1, config.TownsPerFaction)
	assert.Equal(t, 2, config.StartingLandUnits)
	assert.Less(t, config.Noise.SeaLevel, config.Noise.WaterLevel)
	assert.Less(t, config.Noise.WaterLevel, config.Noise.HillLevel)
}

func TestNewGenerator(t *testing.T) {
	config := DefaultMapConfig(10, 10, 1)
	rng := newTestRNG()
	generator := NewGenerator(config, rng)

	require.NotNil(t, generator)
	assert.Equal(t, config, generator.config)
	assert.Same(t, rng, generator.rng)
}

func TestParseLayout(t *testing.T) {
	lt, err := ParseLayout(`
		~ w . f h
		. . . . .
	`)
	require.NoError(t, err)
	assert.Equal(t, 5, lt.W)
	assert.Equal(t, 2, lt.H)

	assert.Equal(t, core.TerrainSea, lt.TerrainAt(core.NewCoordinate(0, 0)))
	assert.Equal(t, core.TerrainWater, lt.TerrainAt(core.NewCoordinate(1, 0)))
	assert.Equal(t, core.TerrainPlains, lt.TerrainAt(core.NewCoordinate(2, 0)))
	assert.Equal(t, core.TerrainForest, lt.TerrainAt(core.NewCoordinate(3, 0)))
	assert.Equal(t, core.TerrainHill, lt.TerrainAt(core.NewCoordinate(4, 0)))
	assert.Equal(t, core.TerrainSea, lt.TerrainAt(core.NewCoordinate(9, 9)), "off-layout is sea")
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"empty", "  \n \n"},
		{"ragged rows", "...\n.."},
		{"unknown symbol", "..x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(tt.layout)
			assert.Error(t, err)
		})
	}
}

func TestSymbolMatchesLayout(t *testing.T) {
	for _, terrain := range []core.Terrain{core.TerrainSea, core.TerrainWater, core.TerrainPlains, core.TerrainForest, core.TerrainHill} {
		lt := MustParseLayout(string(Symbol(terrain)))
		assert.Equal(t, terrain, lt.TerrainAt(core.NewCoordinate(0, 0)), terrain.String())
	}
}

func TestNoiseTerrainDeterministic(t *testing.T) {
	cfg := DefaultMapConfig(16, 12, 99).Noise
	a := NewNoiseTerrain(cfg)
	b := NewNoiseTerrain(cfg)

	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			c := core.NewCoordinate(x, y)
			require.Equal(t, a.TerrainAt(c), b.TerrainAt(c), "terrain at %s", c)
		}
	}
}

func TestNoiseTerrainThresholds(t *testing.T) {
	cfg := NoiseConfig{Seed: 1, SeaLevel: 2, WaterLevel: 3, HillLevel: 4, ForestLevel: 5}
	assert.Equal(t, core.TerrainSea, NewNoiseTerrain(cfg).TerrainAt(core.NewCoordinate(3, 3)), "everything under sea level")

	cfg = NoiseConfig{Seed: 1, SeaLevel: -1, WaterLevel: -1, HillLevel: 2, ForestLevel: 2}
	assert.Equal(t, core.TerrainPlains, NewNoiseTerrain(cfg).TerrainAt(core.NewCoordinate(3, 3)), "flat and bare")

	cfg = NoiseConfig{Seed: 1, SeaLevel: -1, WaterLevel: -1, HillLevel: 2, ForestLevel: -1}
	assert.Equal(t, core.TerrainForest, NewNoiseTerrain(cfg).TerrainAt(core.NewCoordinate(3, 3)), "flat and wooded")
}

func TestOverlay(t *testing.T) {
	o := NewOverlay(Uniform(core.TerrainSea))
	o.Set(core.NewCoordinate(1, 1), core.TerrainHill)

	assert.Equal(t, core.TerrainHill, o.TerrainAt(core.NewCoordinate(1, 1)))
	assert.Equal(t, core.TerrainSea, o.TerrainAt(core.NewCoordinate(2, 1)))
}

func TestGenerateScenario(t *testing.T) {
	config := DefaultMapConfig(20, 12, 42)
	scenario, err := NewGenerator(config, newTestRNG()).GenerateScenario()
	require.NoError(t, err)
	require.Len(t, scenario.Placements, 2)

	player, ok := scenario.Placement(core.PlayerFaction)
	require.True(t, ok)
	enemy, ok := scenario.Placement(core.EnemyFaction)
	require.True(t, ok)

	assert.GreaterOrEqual(t, player.Capital.DistanceTo(enemy.Capital), config.MinCapitalSpacing)
	assert.Less(t, player.Capital.X, config.Width/2)
	assert.GreaterOrEqual(t, enemy.Capital.X, config.Width/2)

	seen := make(map[core.Coordinate]bool)
	for _, p := range scenario.Placements {
		assert.Equal(t, core.TerrainPlains, scenario.Terrain.TerrainAt(p.Capital), "capital is on plains")
		assert.Len(t, p.Towns, config.TownsPerFaction)
		assert.Len(t, p.LandUnits, config.StartingLandUnits)

		all := append([]core.Coordinate{p.Capital}, p.Towns...)
		all = append(all, p.LandUnits...)
		all = append(all, p.NavalUnits...)
		for _, c := range all {
			assert.True(t, c.IsValid(config.Width, config.Height), "%s in bounds", c)
			assert.False(t, seen[c], "%s used twice", c)
			seen[c] = true
		}
		for _, c := range p.Towns {
			assert.True(t, core.StatsFor(scenario.Terrain.TerrainAt(c)).Passability.Allows(core.UnitLand))
			assert.Equal(t, 2, p.Capital.DistanceTo(c))
		}
		for _, c := range p.LandUnits {
			assert.True(t, c.IsAdjacentTo(p.Capital))
		}
		for _, c := range p.NavalUnits {
			assert.Equal(t, core.TerrainWater, scenario.Terrain.TerrainAt(c))
		}
	}
}

func TestGenerateScenarioConnectsCapitals(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		config := DefaultMapConfig(18, 10, seed)
		config.Noise.SeaLevel = 0.45 // mostly sea
		config.Noise.WaterLevel = 0.5
		scenario, err := NewGenerator(config, rand.New(rand.NewSource(seed))).GenerateScenario()
		require.NoError(t, err)

		graph := core.NewGraph(scenario.Width, scenario.Height, scenario.Terrain)
		player, _ := scenario.Placement(core.PlayerFaction)
		enemy, _ := scenario.Placement(core.EnemyFaction)

		// Flood fill over land from the player capital
		start := graph.Node(player.Capital)
		reached := map[*core.Node]bool{start: true}
		queue := []*core.Node{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range cur.Neighbors() {
				if !reached[nb] && nb.CanEnter(core.UnitLand) {
					reached[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		assert.True(t, reached[graph.Node(enemy.Capital)], "seed %d: capitals connected over land", seed)
	}
}

func TestGenerateScenarioDeterministic(t *testing.T) {
	config := DefaultMapConfig(20, 12, 5)
	a, err := NewGenerator(config, newTestRNG()).GenerateScenario()
	require.NoError(t, err)
	b, err := NewGenerator(config, newTestRNG()).GenerateScenario()
	require.NoError(t, err)

	assert.Equal(t, a.Placements, b.Placements)
}

func TestGenerateScenarioTooSmall(t *testing.T) {
	_, err := NewGenerator(DefaultMapConfig(4, 2, 1), newTestRNG()).GenerateScenario()
	assert.Error(t, err)

	config := DefaultMapConfig(8, 4, 1)
	config.MinCapitalSpacing = 50
	_, err = NewGenerator(config, newTestRNG()).GenerateScenario()
	assert.Error(t, err)
}

func TestGenerateScenarioOnLayout(t *testing.T) {
	layout := MustParseLayout(`
. . . . . . . . . .
. . h . . . . h . .
. . . . ~ ~ . . . .
. . . . ~ ~ . . . .
`)
	config := DefaultMapConfig(10, 4, 1)
	config.Base = layout
	config.StartingNavalUnits = 0

	scenario, err := NewGenerator(config, newTestRNG()).GenerateScenario()
	require.NoError(t, err)

	player, _ := scenario.Placement(core.PlayerFaction)
	enemy, _ := scenario.Placement(core.EnemyFaction)
	assert.Equal(t, core.TerrainPlains, scenario.Terrain.TerrainAt(player.Capital))
	assert.Equal(t, core.TerrainPlains, scenario.Terrain.TerrainAt(enemy.Capital))

	// Land cells away from the capitals keep the authored terrain
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			c := core.NewCoordinate(x, y)
			if c.DistanceTo(player.Capital) <= 1 || c.DistanceTo(enemy.Capital) <= 1 {
				continue
			}
			if layout.TerrainAt(c) == core.TerrainSea {
				continue
			}
			assert.Equal(t, layout.TerrainAt(c), scenario.Terrain.TerrainAt(c), "%s", c)
		}
	}
}
