package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/mapgen"
)

// ANSI color codes for terminal rendering
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorCyan  = "\033[36m"
	ColorGreen = "\033[32m"
	ColorGray  = "\033[90m"
)

// Board glyphs. A cell is two runes: the piece (or terrain) and what is
// under it.
const (
	CapitalSymbol = '#'
	TownSymbol    = '+'
)

var factionLetters = map[core.FactionTag][2]rune{
	// unit, building-only
	core.PlayerFaction: {'P', 'p'},
	core.EnemyFaction:  {'E', 'e'},
}

// Render returns the board as plain text. Odd rows are indented half a
// cell to show the hex offset.
func (b *Board) Render() string {
	return b.render(false)
}

// RenderColor is Render with ANSI colors per faction and terrain.
func (b *Board) RenderColor() string {
	return b.render(true)
}

func (b *Board) render(color bool) string {
	w, h := b.graph.W, b.graph.H

	var sb strings.Builder
	sb.Grow((w*3+8)*(h+3) + 128)

	// Header row
	sb.WriteString("   ")
	for x := 0; x < w; x++ {
		fmt.Fprintf(&sb, "%-3d", x)
	}
	sb.WriteString("\n")

	for y := 0; y < h; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		if y%2 == 1 {
			sb.WriteString(" ")
		}
		for x := 0; x < w; x++ {
			b.writeCell(&sb, b.graph.Node(core.NewCoordinate(x, y)), color)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nP/E=unit p/e=building #=capital +=town ")
	fmt.Fprintf(&sb, "%c=sea %c=water %c=plains %c=forest %c=hill\n",
		mapgen.SymbolSea, mapgen.SymbolWater, mapgen.SymbolPlains, mapgen.SymbolForest, mapgen.SymbolHill)
	fmt.Fprintf(&sb, "Turn %d/%d  %s  Player gold %d  Enemy gold %d\n",
		b.Turn(), b.machine.GetContext().MaxTurns, b.Phase(), b.player.Gold(), b.enemy.Gold())
	return sb.String()
}

func (b *Board) writeCell(sb *strings.Builder, n *core.Node, color bool) {
	first, second, tint := b.cellGlyphs(n)
	if color && tint != "" {
		sb.WriteString(tint)
	}
	sb.WriteRune(first)
	sb.WriteRune(second)
	if color && tint != "" {
		sb.WriteString(ColorReset)
	}
	sb.WriteString(" ")
}

func (b *Board) cellGlyphs(n *core.Node) (rune, rune, string) {
	terrain := mapgen.Symbol(n.Terrain)
	under := terrain
	if bld := n.LocalBuilding; bld != nil {
		under = TownSymbol
		if f := b.factionOf(bld.Faction()); f != nil && f.Capital() == bld {
			under = CapitalSymbol
		}
	}

	switch {
	case n.OccupyingUnit != nil:
		u := n.OccupyingUnit
		return factionLetters[u.Faction()][0], under, factionTint(u.Faction())
	case n.LocalBuilding != nil:
		tag := n.LocalBuilding.Faction()
		return factionLetters[tag][1], under, factionTint(tag)
	}
	return terrain, ' ', terrainTint(n.Terrain)
}

func factionTint(tag core.FactionTag) string {
	if tag == core.PlayerFaction {
		return ColorBlue
	}
	return ColorRed
}

func terrainTint(t core.Terrain) string {
	switch t {
	case core.TerrainWater, core.TerrainSea:
		return ColorCyan
	case core.TerrainForest:
		return ColorGreen
	case core.TerrainHill:
		return ColorGray
	}
	return ""
}
