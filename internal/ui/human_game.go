package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/anim"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
	"github.com/mitchelldurbincs/HexTactics/internal/ui/input"
	"github.com/mitchelldurbincs/HexTactics/internal/ui/renderer"
)

// messageFrames is how long a status message stays up, at 60 TPS.
const messageFrames = 120

// HumanGame is the ebiten.Game for one human player against the AI.
type HumanGame struct {
	board         *game.Board
	ticker        *anim.Ticker
	boardRenderer *renderer.BoardRenderer
	panel         *renderer.InfoPanel
	inputHandler  *input.Handler
	defaultFont   font.Face
	palette       common.Palette
	ui            config.UIConfig
	logger        zerolog.Logger

	// UI state
	statusMessage string
	messageTimer  int
}

// Board returns the board the client drives.
func (g *HumanGame) Board() *game.Board { return g.board }

// Update advances animations by one tick and applies this frame's input.
func (g *HumanGame) Update() error {
	g.ticker.Advance(time.Second / time.Duration(ebiten.TPS()))

	for _, cmd := range g.inputHandler.Update() {
		g.handleCommand(cmd)
	}
	g.syncView()
	return nil
}

// syncView pushes per-frame state the board does not push itself.
func (g *HumanGame) syncView() {
	hover, ok := g.inputHandler.Hovered()
	g.boardRenderer.SetHover(hover, ok)

	if g.board.Selection().Mode == game.SelectionIdle {
		g.panel.ClearSelection()
	}
	if g.messageTimer > 0 {
		g.messageTimer--
	}
}

func (g *HumanGame) handleCommand(cmd input.Command) {
	var err error
	switch cmd.Kind {
	case input.CommandSelect:
		err = g.board.SelectAtPosition(cmd.At)
	case input.CommandAct:
		err = g.board.ActAtPosition(cmd.At)
	case input.CommandEndTurn:
		if err = g.board.EndTurn(); err == nil {
			g.showMessage("Enemy turn")
		}
	case input.CommandRecruit:
		var u *core.Unit
		if u, err = g.board.RecruitArmy(); err == nil {
			g.showMessage(fmt.Sprintf("Recruited an army at %s", u.Position()))
		}
	case input.CommandClear:
		g.board.ClearSelection()
	case input.CommandCopy:
		if err = clipboard.WriteAll(g.panel.Snapshot()); err == nil {
			g.showMessage("Copied info to clipboard")
		}
	case input.CommandToggleCoords:
		g.boardRenderer.SetShowCoords(!g.boardRenderer.ShowCoords())
	}

	if err != nil {
		g.logger.Debug().Err(err).Str("command", cmd.Kind.String()).Msg("Command refused")
		g.showMessage(describe(err))
	}
}

var errorMessages = []struct {
	err error
	msg string
}{
	{core.ErrGameOver, "The match is over"},
	{core.ErrBusy, "Wait for the current action to finish"},
	{core.ErrNotPlayerTurn, "Not your turn"},
	{core.ErrNotOwned, "That is not your unit"},
	{core.ErrNoPath, "No path there"},
	{core.ErrOutOfRange, "Out of range"},
	{core.ErrNoMovesLeft, "No moves left"},
	{core.ErrNoAttacksLeft, "No attacks left"},
	{core.ErrInsufficientGold, "Not enough gold"},
	{core.ErrNoCapital, "No capital to recruit at"},
	{core.ErrCapitalOccupied, "The capital is occupied"},
	{core.ErrInvalidCoordinates, "Off the board"},
}

// describe turns a refused action into a short status line.
func describe(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}

func (g *HumanGame) showMessage(msg string) {
	g.statusMessage = msg
	g.messageTimer = messageFrames
}

// Draw renders the game screen.
func (g *HumanGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	g.boardRenderer.Draw(screen, g.board)
	panelX := g.ui.Window.Width - g.ui.PanelWidth
	g.panel.Draw(screen, panelX, 0, g.ui.PanelWidth, g.ui.Window.Height)
	g.drawUI(screen)
}

func (g *HumanGame) drawUI(screen *ebiten.Image) {
	x := g.ui.Window.Width - g.ui.PanelWidth + 10
	helpY := g.ui.Window.Height - 100

	text.Draw(screen, "Controls:", g.defaultFont, x, helpY, common.TextColor)
	for i, line := range []string{
		"Left click: Select",
		"Right click: Move/Attack",
		"R: Recruit  Space: End turn",
		"Esc: Deselect  C: Copy info",
	} {
		text.Draw(screen, line, g.defaultFont, x, helpY+15*(i+1), common.MutedTextColor)
	}

	if g.board.IsOver() {
		banner := map[states.GamePhase]string{
			states.PhaseGameWon:    "Victory!",
			states.PhaseGameOver:   "Defeat",
			states.PhaseOutOfTurns: "Out of turns",
		}[g.board.Phase()]
		text.Draw(screen, banner, g.defaultFont, boardMargin, g.ui.Window.Height-40, common.TextColor)
	}

	if g.messageTimer > 0 && g.statusMessage != "" {
		text.Draw(screen, g.statusMessage, g.defaultFont, boardMargin, g.ui.Window.Height-20, common.TextColor)
	}
}

// Layout defines the Ebitengine screen size.
func (g *HumanGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.ui.Window.Width, g.ui.Window.Height
}
