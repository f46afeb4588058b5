package game

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/mapgen"
)

// Settings are the match rules a board is built with.
type Settings struct {
	MaxTurns          int
	StartingGold      int
	ArmyPrice         int
	DefenseMultiplier int

	Land    core.UnitStats
	Naval   core.UnitStats
	Capital core.BuildingStats
	Town    core.BuildingStats

	MoveStep    time.Duration
	AttackLunge time.Duration
	AIStagger   time.Duration

	PlayerColor string
	EnemyColor  string
}

// SettingsFromConfig copies the game and animation sections of c.
func SettingsFromConfig(c *config.Config) Settings {
	g := c.Game
	return Settings{
		MaxTurns:          g.MaxTurns,
		StartingGold:      g.StartingGold,
		ArmyPrice:         g.ArmyPrice,
		DefenseMultiplier: g.DefenseMultiplier,
		Land:              unitStats(g.Units.Land),
		Naval:             unitStats(g.Units.Naval),
		Capital:           buildingStats(g.Buildings.Capital),
		Town:              buildingStats(g.Buildings.Town),
		MoveStep:          c.Animation.MoveStep(),
		AttackLunge:       c.Animation.AttackLunge(),
		AIStagger:         c.Animation.AIStagger(),
		PlayerColor:       hexColor(c.Colors.Factions.Player),
		EnemyColor:        hexColor(c.Colors.Factions.Enemy),
	}
}

// DefaultSettings are the rules built from the config defaults alone.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Defaults())
}

// StatsFor returns the stats new units of type t are created with.
func (s Settings) StatsFor(t core.UnitType) core.UnitStats {
	if t == core.UnitNaval {
		return s.Naval
	}
	return s.Land
}

// MapConfigFromConfig translates the map section of c. When a layout file
// is configured its size overrides width and height.
func MapConfigFromConfig(c *config.Config) (mapgen.MapConfig, error) {
	m := c.Game.Map
	mc := mapgen.DefaultMapConfig(m.Width, m.Height, m.Seed)
	mc.Noise.Scale = m.Noise.Scale
	mc.Noise.SeaLevel = m.Noise.SeaLevel
	mc.Noise.WaterLevel = m.Noise.WaterLevel
	mc.Noise.HillLevel = m.Noise.HillLevel
	mc.Noise.ForestLevel = m.Noise.ForestLevel
	mc.TownsPerFaction = m.TownsPerFaction
	mc.StartingLandUnits = m.StartingLandUnits
	mc.StartingNavalUnits = m.StartingNavalUnits

	if m.Layout != "" {
		data, err := os.ReadFile(m.Layout)
		if err != nil {
			return mapgen.MapConfig{}, fmt.Errorf("read layout: %w", err)
		}
		layout, err := mapgen.ParseLayout(string(data))
		if err != nil {
			return mapgen.MapConfig{}, fmt.Errorf("layout %s: %w", m.Layout, err)
		}
		mc.Width, mc.Height = layout.W, layout.H
		mc.MinCapitalSpacing = layout.W / 2
		mc.Base = layout
	}

	// Zero means half the map width
	if m.MinCapitalSpacing > 0 {
		mc.MinCapitalSpacing = m.MinCapitalSpacing
	}
	return mc, nil
}

func unitStats(u config.UnitConfig) core.UnitStats {
	return core.UnitStats{
		Strength:      u.Strength,
		MoveAllowance: u.MoveAllowance,
		NumAttacks:    u.NumAttacks,
		Upkeep:        u.Upkeep,
	}
}

func buildingStats(b config.BuildingConfig) core.BuildingStats {
	return core.BuildingStats{Defense: b.Defense, Tax: b.Tax, Durability: b.Durability}
}

func hexColor(rgb [3]int) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
