package renderer

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/faction"
)

// lungeReach is how far toward its target an attacker leans, as a fraction
// of the distance between hex centers.
const lungeReach = 0.4

// whiteRect is the interior of the 3x3 white source image, which avoids
// sampling its edges when filling triangles.
var whiteRect = image.Rect(1, 1, 2, 2)

// BoardRenderer draws the hex board. It is the board's highlight and motion
// sink: overlay state and in-flight piece positions are pushed to it and
// read back when drawing.
type BoardRenderer struct {
	layout      HexLayout
	palette     common.Palette
	defaultFont font.Face
	showCoords  bool

	statuses map[core.Coordinate]game.NodeStatus
	path     []core.Coordinate
	motions  map[*core.Unit][2]float64

	hover    core.Coordinate
	hasHover bool

	whiteImage *ebiten.Image
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(layout HexLayout, palette common.Palette, f font.Face, showCoords bool) *BoardRenderer {
	return &BoardRenderer{
		layout:      layout,
		palette:     palette,
		defaultFont: f,
		showCoords:  showCoords,
		statuses:    make(map[core.Coordinate]game.NodeStatus),
		motions:     make(map[*core.Unit][2]float64),
	}
}

// Layout returns the geometry the renderer draws with.
func (br *BoardRenderer) Layout() HexLayout { return br.layout }

// ClearHighlights implements game.HighlightSink.
func (br *BoardRenderer) ClearHighlights() {
	clear(br.statuses)
	br.path = nil
}

// SetNodeStatus implements game.HighlightSink.
func (br *BoardRenderer) SetNodeStatus(c core.Coordinate, status game.NodeStatus) {
	if status == game.StatusClear {
		delete(br.statuses, c)
		return
	}
	br.statuses[c] = status
}

// ShowPath implements game.HighlightSink.
func (br *BoardRenderer) ShowPath(path []core.Coordinate) {
	br.path = append(br.path[:0], path...)
}

// Status returns the overlay currently shown on c.
func (br *BoardRenderer) Status(c core.Coordinate) game.NodeStatus {
	return br.statuses[c]
}

// MoveProgress implements game.MotionSink. The unit is placed along the
// path's segments in proportion to t.
func (br *BoardRenderer) MoveProgress(u *core.Unit, path []core.Coordinate, t float64) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		x, y := br.layout.Center(path[0])
		br.motions[u] = [2]float64{x, y}
		return
	}

	pos := t * float64(len(path)-1)
	i := min(int(pos), len(path)-2)
	x0, y0 := br.layout.Center(path[i])
	x1, y1 := br.layout.Center(path[i+1])
	x, y := Lerp(x0, y0, x1, y1, pos-float64(i))
	br.motions[u] = [2]float64{x, y}
}

// LungeProgress implements game.MotionSink. The attacker leans toward the
// target and back.
func (br *BoardRenderer) LungeProgress(u *core.Unit, target core.Coordinate, t float64) {
	x0, y0 := br.layout.Center(u.Position())
	x1, y1 := br.layout.Center(target)
	x, y := Lerp(x0, y0, x1, y1, lungeReach*math.Sin(math.Pi*t))
	br.motions[u] = [2]float64{x, y}
}

// MotionDone implements game.MotionSink.
func (br *BoardRenderer) MotionDone(u *core.Unit) {
	delete(br.motions, u)
}

// UnitPosition is where u is drawn: mid-motion if it is moving, otherwise
// the center of its node.
func (br *BoardRenderer) UnitPosition(u *core.Unit) (float64, float64) {
	if p, ok := br.motions[u]; ok {
		return p[0], p[1]
	}
	return br.layout.Center(u.Position())
}

// ShowCoords reports whether coordinate labels are drawn.
func (br *BoardRenderer) ShowCoords() bool { return br.showCoords }

// SetShowCoords turns coordinate labels on or off.
func (br *BoardRenderer) SetShowCoords(on bool) { br.showCoords = on }

// SetHover marks the hex under the cursor.
func (br *BoardRenderer) SetHover(c core.Coordinate, ok bool) {
	br.hover, br.hasHover = c, ok
}

// Draw renders the board on the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, b *game.Board) {
	if b == nil {
		return
	}
	g := b.Graph()

	// Terrain pass
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := core.NewCoordinate(x, y)
			br.fillHex(screen, c, br.palette.TerrainColor(g.Node(c).Terrain))
		}
	}

	br.drawOverlays(screen, g)

	// Buildings under units
	factions := []*faction.Faction{b.PlayerFaction(), b.EnemyFaction()}
	for _, f := range factions {
		capital := f.Capital()
		for _, bld := range f.Buildings() {
			br.drawBuilding(screen, bld, bld == capital)
		}
	}
	for _, f := range factions {
		for _, u := range f.Units() {
			br.drawUnit(screen, u)
		}
	}

	if br.showCoords && br.defaultFont != nil {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				c := core.NewCoordinate(x, y)
				cx, cy := br.layout.Center(c)
				text.Draw(screen, strconv.Itoa(x)+","+strconv.Itoa(y), br.defaultFont,
					int(cx-br.layout.Size*0.5), int(cy+br.layout.Size*0.8), common.MutedTextColor)
			}
		}
	}
}

func (br *BoardRenderer) drawBuilding(screen *ebiten.Image, bld *core.Building, capital bool) {
	cx, cy := br.layout.Center(bld.Position())
	m := float32(br.layout.Size * 0.9)
	fill := br.palette.Faction(bld.Faction())
	if capital {
		fill = common.Lighten(fill, common.CapitalHighlight)
	}
	vector.DrawFilledRect(screen, float32(cx)-m/2, float32(cy)-m/2, m, m, fill, false)
	vector.StrokeRect(screen, float32(cx)-m/2, float32(cy)-m/2, m, m, 1, br.palette.GridLines, false)
}

func (br *BoardRenderer) drawUnit(screen *ebiten.Image, u *core.Unit) {
	x, y := br.UnitPosition(u)
	radius := float32(br.layout.Size * 0.55)
	fill := br.palette.Faction(u.Faction())
	vector.DrawFilledCircle(screen, float32(x), float32(y), radius, fill, true)
	if u.Type == core.UnitNaval {
		vector.StrokeCircle(screen, float32(x), float32(y), radius, 2, br.palette.TerrainColor(core.TerrainWater), true)
	}
	if !u.CanMove() && !u.CanAttack() {
		vector.DrawFilledCircle(screen, float32(x), float32(y), radius, color.RGBA{0, 0, 0, 90}, true)
	}

	if br.defaultFont == nil {
		return
	}
	// Strength in hundreds keeps the label inside the hex
	label := strconv.Itoa(u.Strength / 100)
	bounds := text.BoundString(br.defaultFont, label)
	tw := bounds.Max.X - bounds.Min.X
	th := bounds.Max.Y - bounds.Min.Y
	text.Draw(screen, label, br.defaultFont, int(x)-tw/2, int(y)+th/2, common.StrengthTextColor)
}

// fillHex fills the hex at c with a premultiplied color.
func (br *BoardRenderer) fillHex(screen *ebiten.Image, c core.Coordinate, clr color.RGBA) {
	if br.whiteImage == nil {
		br.whiteImage = ebiten.NewImage(3, 3)
		br.whiteImage.Fill(color.White)
	}

	var p vector.Path
	corners := br.layout.Corners(c)
	p.MoveTo(float32(corners[0][0]), float32(corners[0][1]))
	for _, pt := range corners[1:] {
		p.LineTo(float32(pt[0]), float32(pt[1]))
	}
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	screen.DrawTriangles(vs, is, br.whiteImage.SubImage(whiteRect).(*ebiten.Image), op)
}

// strokeHex outlines the hex at c.
func (br *BoardRenderer) strokeHex(screen *ebiten.Image, c core.Coordinate, width float32, clr color.Color) {
	corners := br.layout.Corners(c)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), width, clr, true)
	}
}
