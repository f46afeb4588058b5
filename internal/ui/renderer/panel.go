package renderer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
)

const panelLineHeight = 16

// InfoPanel is the board's info sink. It keeps the latest snapshots and
// draws them as text beside the board.
type InfoPanel struct {
	defaultFont font.Face
	background  color.RGBA

	node    *game.NodeInfo
	unit    *game.UnitInfo
	faction game.FactionInfo
}

// NewInfoPanel creates an empty panel.
func NewInfoPanel(f font.Face, background color.RGBA) *InfoPanel {
	return &InfoPanel{defaultFont: f, background: background}
}

// ShowNodeInfo implements game.InfoSink.
func (p *InfoPanel) ShowNodeInfo(info game.NodeInfo) { p.node = &info }

// ShowUnitInfo implements game.InfoSink.
func (p *InfoPanel) ShowUnitInfo(info *game.UnitInfo) { p.unit = info }

// ClearSelection drops the node and unit snapshots. The board has no
// "nothing selected" push, so the client calls this when it sees the
// selection go idle.
func (p *InfoPanel) ClearSelection() {
	p.node = nil
	p.unit = nil
}

// ShowFactionInfo implements game.InfoSink.
func (p *InfoPanel) ShowFactionInfo(info game.FactionInfo) { p.faction = info }

// FactionLines summarizes the player's faction and the turn.
func (p *InfoPanel) FactionLines() []string {
	f := p.faction
	return []string{
		fmt.Sprintf("Turn %d of %d (%s)", f.Turn, f.MaxTurns, f.Phase),
		fmt.Sprintf("Gold %s", humanize.Comma(int64(f.Gold))),
		fmt.Sprintf("Income +%s  Upkeep -%s", humanize.Comma(int64(f.Income)), humanize.Comma(int64(f.Expenses))),
		fmt.Sprintf("%s, %s",
			plural(f.Units, "unit"), plural(f.Buildings, "building")),
	}
}

// SelectionLines describes the selected node and whatever stands on it.
// It is empty when nothing is selected.
func (p *InfoPanel) SelectionLines() []string {
	var lines []string
	if n := p.node; n != nil {
		cost := "impassable"
		if n.MovementCost > 0 {
			cost = fmt.Sprintf("cost %d", n.MovementCost)
		}
		lines = append(lines,
			fmt.Sprintf("%s at %s", n.Terrain, n.Position),
			fmt.Sprintf("  %s, %s", n.Passability, cost),
			fmt.Sprintf("  Defense %d  Tax %d", n.DefenseTotal, n.TaxTotal),
		)
		if b := n.Building; b != nil {
			kind := "Town"
			if b.IsCapital {
				kind = "Capital"
			}
			lines = append(lines,
				fmt.Sprintf("%s %s", b.Faction, kind),
				fmt.Sprintf("  Durability %s", humanize.Comma(int64(b.Durability))),
			)
		}
		if n.Unit != nil && (p.unit == nil || p.unit.ID != n.Unit.ID) {
			lines = append(lines, unitLines(n.Unit)...)
		}
	}
	if p.unit != nil {
		lines = append(lines, unitLines(p.unit)...)
	}
	return lines
}

func unitLines(u *game.UnitInfo) []string {
	return []string{
		fmt.Sprintf("%s %s unit", u.Faction, u.Type),
		fmt.Sprintf("  Strength %s", humanize.Comma(int64(u.Strength))),
		fmt.Sprintf("  Moves %d/%d  Attacks %d/%d", u.MoveLeft, u.MoveAllowance, u.AttacksLeft, u.NumAttacks),
		fmt.Sprintf("  Upkeep %d", u.Upkeep),
	}
}

// Snapshot is the panel as plain text, for the clipboard.
func (p *InfoPanel) Snapshot() string {
	lines := append(p.FactionLines(), p.SelectionLines()...)
	return strings.Join(lines, "\n")
}

// Draw renders the panel in the rectangle starting at x, y.
func (p *InfoPanel) Draw(screen *ebiten.Image, x, y, w, h int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), p.background, false)
	if p.defaultFont == nil {
		return
	}

	ty := y + 20
	for _, line := range p.FactionLines() {
		text.Draw(screen, line, p.defaultFont, x+10, ty, common.TextColor)
		ty += panelLineHeight
	}
	ty += panelLineHeight / 2
	for _, line := range p.SelectionLines() {
		text.Draw(screen, line, p.defaultFont, x+10, ty, common.MutedTextColor)
		ty += panelLineHeight
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
