package renderer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

func TestInfoPanelFactionLines(t *testing.T) {
	p := NewInfoPanel(nil, color.RGBA{})
	p.ShowFactionInfo(game.FactionInfo{
		Tag: core.PlayerFaction, Gold: 12500, Income: 13, Expenses: 4,
		Units: 1, Buildings: 2, Turn: 3, MaxTurns: 50, Phase: "PlayerTurn",
	})

	assert.Equal(t, []string{
		"Turn 3 of 50 (PlayerTurn)",
		"Gold 12,500",
		"Income +13  Upkeep -4",
		"1 unit, 2 buildings",
	}, p.FactionLines())
	assert.Empty(t, p.SelectionLines())
}

func TestInfoPanelSelectionLines(t *testing.T) {
	unit := &game.UnitInfo{
		ID: "u1", Faction: core.PlayerFaction, Type: core.UnitLand,
		Strength: 1000, Upkeep: 2, MoveLeft: 1, MoveAllowance: 3, AttacksLeft: 1, NumAttacks: 1,
	}

	t.Run("selected unit on a capital", func(t *testing.T) {
		p := NewInfoPanel(nil, color.RGBA{})
		p.ShowNodeInfo(game.NodeInfo{
			Position: core.NewCoordinate(2, 1), Terrain: core.TerrainPlains, MovementCost: 1,
			Passability: core.PassLandOnly, DefenseTotal: 2, TaxTotal: 8, Unit: unit,
			Building: &game.BuildingInfo{Faction: core.PlayerFaction, Durability: 1500, IsCapital: true},
		})
		p.ShowUnitInfo(unit)

		lines := p.SelectionLines()
		assert.Equal(t, []string{
			"Plains at (2,1)",
			"  LandOnly, cost 1",
			"  Defense 2  Tax 8",
			"Player Capital",
			"  Durability 1,500",
			"Player Land unit",
			"  Strength 1,000",
			"  Moves 1/3  Attacks 1/1",
			"  Upkeep 2",
		}, lines, "the unit is listed once")
	})

	t.Run("inspected enemy node", func(t *testing.T) {
		p := NewInfoPanel(nil, color.RGBA{})
		enemy := *unit
		enemy.ID, enemy.Faction = "e1", core.EnemyFaction
		p.ShowNodeInfo(game.NodeInfo{Terrain: core.TerrainSea, MovementCost: -1, Unit: &enemy})
		p.ShowUnitInfo(nil)

		lines := p.SelectionLines()
		require.NotEmpty(t, lines)
		assert.Contains(t, lines, "  Impassable, impassable")
		assert.Contains(t, lines, "Enemy Land unit")
	})

	t.Run("cleared", func(t *testing.T) {
		p := NewInfoPanel(nil, color.RGBA{})
		p.ShowNodeInfo(game.NodeInfo{})
		p.ShowUnitInfo(unit)
		p.ClearSelection()
		assert.Empty(t, p.SelectionLines())
	})
}

func TestInfoPanelSnapshot(t *testing.T) {
	p := NewInfoPanel(nil, color.RGBA{})
	p.ShowFactionInfo(game.FactionInfo{Gold: 20, Units: 0, Buildings: 1, Turn: 1, MaxTurns: 50})

	assert.Equal(t, "Turn 1 of 50 ()\nGold 20\nIncome +0  Upkeep -0\n0 units, 1 building", p.Snapshot())
}
