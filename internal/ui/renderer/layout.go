package renderer

import (
	"math"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

var sqrt3 = math.Sqrt(3)

// HexLayout maps board coordinates to screen pixels for pointy-top hexes
// in odd-r offset rows. Size is the center-to-corner radius.
type HexLayout struct {
	Size             float64
	OriginX, OriginY float64
}

// NewHexLayout places the center of (0,0) one hex in from the origin corner.
func NewHexLayout(size, offsetX, offsetY float64) HexLayout {
	return HexLayout{
		Size:    size,
		OriginX: offsetX + sqrt3*size/2,
		OriginY: offsetY + size,
	}
}

// Center returns the pixel center of the hex at c.
func (l HexLayout) Center(c core.Coordinate) (x, y float64) {
	x = l.OriginX + sqrt3*l.Size*(float64(c.X)+0.5*float64(c.Y&1))
	y = l.OriginY + 1.5*l.Size*float64(c.Y)
	return x, y
}

// Corners returns the six corners of the hex at c, clockwise from the top.
func (l HexLayout) Corners(c core.Coordinate) [6][2]float64 {
	cx, cy := l.Center(c)
	var out [6][2]float64
	for i := range out {
		angle := math.Pi / 180 * float64(60*i-90)
		out[i] = [2]float64{cx + l.Size*math.Cos(angle), cy + l.Size*math.Sin(angle)}
	}
	return out
}

// PixelToHex returns the coordinate of the hex containing the pixel. The
// result may be off the board; callers check it against the graph.
func (l HexLayout) PixelToHex(px, py float64) core.Coordinate {
	x := px - l.OriginX
	y := py - l.OriginY
	q := (sqrt3/3*x - y/3) / l.Size
	r := (2.0 / 3.0 * y) / l.Size
	aq, ar := axialRound(q, r)
	return core.NewCoordinate(aq+(ar-(ar&1))/2, ar)
}

// Bounds is the pixel size of a w x h board.
func (l HexLayout) Bounds(w, h int) (width, height float64) {
	width = sqrt3 * l.Size * (float64(w) + 0.5)
	height = l.Size * (1.5*float64(h) + 0.5)
	return width, height
}

// axialRound rounds fractional axial coordinates to the nearest hex using
// the cube constraint q + r + s = 0.
func axialRound(q, r float64) (int, int) {
	s := -q - r
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)

	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return int(rq), int(rr)
}

// Lerp interpolates between two pixel positions.
func Lerp(x0, y0, x1, y1, t float64) (float64, float64) {
	return x0 + (x1-x0)*t, y0 + (y1-y0)*t
}
