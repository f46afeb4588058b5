package input

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// CommandKind is what the player asked for.
type CommandKind int

const (
	CommandSelect CommandKind = iota
	CommandAct
	CommandEndTurn
	CommandRecruit
	CommandClear
	CommandCopy
	CommandToggleCoords
)

func (k CommandKind) String() string {
	switch k {
	case CommandSelect:
		return "select"
	case CommandAct:
		return "act"
	case CommandEndTurn:
		return "end_turn"
	case CommandRecruit:
		return "recruit"
	case CommandClear:
		return "clear"
	case CommandCopy:
		return "copy"
	case CommandToggleCoords:
		return "toggle_coords"
	default:
		return "unknown"
	}
}

// Command is one translated player input. At is set for Select and Act.
type Command struct {
	Kind CommandKind
	At   core.Coordinate
}

// Locator maps a screen pixel to a board coordinate. ok is false when the
// pixel is off the board.
type Locator func(x, y int) (c core.Coordinate, ok bool)

var keyCommands = map[ebiten.Key]CommandKind{
	ebiten.KeySpace:  CommandEndTurn,
	ebiten.KeyEnter:  CommandEndTurn,
	ebiten.KeyR:      CommandRecruit,
	ebiten.KeyEscape: CommandClear,
	ebiten.KeyC:      CommandCopy,
	ebiten.KeyG:      CommandToggleCoords,
}

// Handler turns raw mouse and keyboard input into board commands. Left
// click selects, right click acts on the selection.
type Handler struct {
	locate Locator

	hover    core.Coordinate
	hasHover bool
}

// NewHandler creates a handler that resolves clicks with locate.
func NewHandler(locate Locator) *Handler {
	return &Handler{locate: locate}
}

// Update polls ebiten and returns this frame's commands.
func (h *Handler) Update() []Command {
	return h.Translate(PollFrame())
}

// Translate converts one frame of input to commands, mouse first. Clicks
// off the board are dropped.
func (h *Handler) Translate(f Frame) []Command {
	var cmds []Command

	h.hover, h.hasHover = h.locate(f.CursorX, f.CursorY)
	if h.hasHover {
		if f.LeftClick {
			cmds = append(cmds, Command{Kind: CommandSelect, At: h.hover})
		}
		if f.RightClick {
			cmds = append(cmds, Command{Kind: CommandAct, At: h.hover})
		}
	}

	for _, k := range f.Keys {
		if kind, ok := keyCommands[k]; ok {
			cmds = append(cmds, Command{Kind: kind})
		}
	}
	return cmds
}

// Hovered returns the hex under the cursor as of the last frame.
func (h *Handler) Hovered() (core.Coordinate, bool) {
	return h.hover, h.hasHover
}
