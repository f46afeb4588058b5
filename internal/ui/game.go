// Package ui is the ebiten desktop client. The board pushes highlights,
// motion and info snapshots into the renderer and panel; the client feeds
// clicks and keys back as board commands and ticks the animation clock
// once per frame.
package ui

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/anim"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/ui/input"
	"github.com/mitchelldurbincs/HexTactics/internal/ui/renderer"
)

// boardMargin is the gap between the window edge and the first hex.
const boardMargin = 12

// NewHumanGame builds the board and wires the client around it. Settings
// and map come from c unless boardCfg already sets them.
func NewHumanGame(ctx context.Context, c *config.Config, boardCfg game.BoardConfig, logger zerolog.Logger) (*HumanGame, error) {
	g := &HumanGame{
		ui:          c.UI,
		ticker:      anim.NewTicker(logger),
		defaultFont: basicfont.Face7x13,
		palette:     common.NewPalette(c.Colors),
		logger:      logger.With().Str("component", "HumanGame").Logger(),
	}

	layout := renderer.NewHexLayout(float64(c.UI.HexSize), boardMargin, boardMargin)
	g.boardRenderer = renderer.NewBoardRenderer(layout, g.palette, g.defaultFont, c.Development.ShowCoordinates)
	g.panel = renderer.NewInfoPanel(g.defaultFont, g.palette.Panel)

	if boardCfg.Settings.MaxTurns == 0 {
		boardCfg.Settings = game.SettingsFromConfig(c)
	}
	if boardCfg.Scenario == nil && boardCfg.Map.Width == 0 {
		mc, err := game.MapConfigFromConfig(c)
		if err != nil {
			return nil, err
		}
		boardCfg.Map = mc
	}
	boardCfg.Collaborators = game.Collaborators{
		Scheduler:  g.ticker,
		Highlights: g.boardRenderer,
		Info:       g.panel,
		Motion:     g.boardRenderer,
	}
	boardCfg.Logger = logger

	board, err := game.NewBoard(ctx, boardCfg)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	g.board = board
	g.inputHandler = input.NewHandler(g.locate)

	g.logger.Info().
		Str("game_id", board.GameID()).
		Int("hex_size", c.UI.HexSize).
		Msg("Client ready")
	return g, nil
}

// locate maps a pixel to a hex on the board.
func (g *HumanGame) locate(x, y int) (core.Coordinate, bool) {
	c := g.boardRenderer.Layout().PixelToHex(float64(x), float64(y))
	return c, g.board.Node(c) != nil
}

// Run opens the window and blocks until it is closed.
func Run(g *HumanGame) error {
	ebiten.SetWindowSize(g.ui.Window.Width, g.ui.Window.Height)
	ebiten.SetWindowTitle(g.ui.Window.Title)
	return ebiten.RunGame(g)
}
