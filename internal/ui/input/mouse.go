package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Frame is the raw input of one frame.
type Frame struct {
	CursorX, CursorY int
	LeftClick        bool
	RightClick       bool
	Keys             []ebiten.Key
}

// PollFrame reads this frame's input from ebiten.
func PollFrame() Frame {
	x, y := ebiten.CursorPosition()
	return Frame{
		CursorX:    x,
		CursorY:    y,
		LeftClick:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		RightClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Keys:       inpututil.AppendJustPressedKeys(nil),
	}
}
