package renderer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

var hoverColor = common.FromRGBA([4]int{255, 255, 255, 40})

func (br *BoardRenderer) drawOverlays(screen *ebiten.Image, g *core.Graph) {
	// Range and selection tints
	for c, status := range br.statuses {
		if g.Node(c) == nil {
			continue
		}
		switch status {
		case game.StatusInteractable:
			br.fillHex(screen, c, br.palette.Interactable)
		case game.StatusAttackable:
			br.fillHex(screen, c, br.palette.Attackable)
		case game.StatusSelected:
			br.fillHex(screen, c, br.palette.Selected)
		}
	}

	// Grid lines
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			br.strokeHex(screen, core.NewCoordinate(x, y), 1, br.palette.GridLines)
		}
	}

	br.drawPath(screen)

	if br.hasHover && g.Node(br.hover) != nil {
		br.fillHex(screen, br.hover, hoverColor)
	}

	// Selection border on top of the grid
	for c, status := range br.statuses {
		if status == game.StatusSelected {
			br.strokeHex(screen, c, 3, common.PathColor)
		}
	}
}

func (br *BoardRenderer) drawPath(screen *ebiten.Image) {
	for i := 1; i < len(br.path); i++ {
		x0, y0 := br.layout.Center(br.path[i-1])
		x1, y1 := br.layout.Center(br.path[i])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 3, common.PathColor, true)
	}
	if n := len(br.path); n > 0 {
		x, y := br.layout.Center(br.path[n-1])
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(br.layout.Size*0.2), common.PathColor, true)
	}
}
