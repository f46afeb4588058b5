package common

import (
	"image/color"

	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Palette holds every color the client draws with, resolved from config.
type Palette struct {
	Factions map[core.FactionTag]color.RGBA
	Terrain  map[core.Terrain]color.RGBA

	Interactable color.RGBA
	Attackable   color.RGBA
	Selected     color.RGBA

	Background color.RGBA
	GridLines  color.RGBA
	Panel      color.RGBA
}

// Fixed colors that are not configurable
var (
	TextColor          = color.RGBA{235, 235, 235, 255}
	MutedTextColor     = color.RGBA{170, 170, 170, 255}
	StrengthTextColor  = color.White
	CapitalHighlight   = 40
	PathColor          = color.RGBA{255, 220, 60, 200}
	UnknownFactionGray = color.RGBA{150, 150, 150, 255}
)

// NewPalette resolves the colors section of the config.
func NewPalette(c config.ColorsConfig) Palette {
	return Palette{
		Factions: map[core.FactionTag]color.RGBA{
			core.PlayerFaction:  FromRGB(c.Factions.Player),
			core.EnemyFaction:   FromRGB(c.Factions.Enemy),
			core.NeutralFaction: FromRGB(c.Factions.Neutral),
		},
		Terrain: map[core.Terrain]color.RGBA{
			core.TerrainSea:    FromRGB(c.Terrain.Sea),
			core.TerrainWater:  FromRGB(c.Terrain.Water),
			core.TerrainPlains: FromRGB(c.Terrain.Plains),
			core.TerrainForest: FromRGB(c.Terrain.Forest),
			core.TerrainHill:   FromRGB(c.Terrain.Hill),
		},
		Interactable: FromRGBA(c.Highlight.Interactable),
		Attackable:   FromRGBA(c.Highlight.Attackable),
		Selected:     FromRGBA(c.Highlight.Selected),
		Background:   FromRGB(c.UI.Background),
		GridLines:    FromRGB(c.UI.GridLines),
		Panel:        FromRGB(c.UI.Panel),
	}
}

// Faction returns the faction's color, gray for unknown tags.
func (p Palette) Faction(tag core.FactionTag) color.RGBA {
	if c, ok := p.Factions[tag]; ok {
		return c
	}
	return UnknownFactionGray
}

// TerrainColor returns the fill for t. Unknown terrain draws as sea.
func (p Palette) TerrainColor(t core.Terrain) color.RGBA {
	if c, ok := p.Terrain[t]; ok {
		return c
	}
	return p.Terrain[core.TerrainSea]
}

// FromRGB converts a config triple to an opaque color. Components are
// clamped to 0..255.
func FromRGB(rgb [3]int) color.RGBA {
	return color.RGBA{clamp8(rgb[0]), clamp8(rgb[1]), clamp8(rgb[2]), 255}
}

// FromRGBA converts a config quadruple, alpha last. Components are not
// premultiplied in config, so they are here.
func FromRGBA(rgba [4]int) color.RGBA {
	a := int(clamp8(rgba[3]))
	return color.RGBA{
		R: uint8(int(clamp8(rgba[0])) * a / 255),
		G: uint8(int(clamp8(rgba[1])) * a / 255),
		B: uint8(int(clamp8(rgba[2])) * a / 255),
		A: uint8(a),
	}
}

// Lighten returns c with amount added to each color component.
func Lighten(c color.RGBA, amount int) color.RGBA {
	return color.RGBA{
		R: clamp8(int(c.R) + amount),
		G: clamp8(int(c.G) + amount),
		B: clamp8(int(c.B) + amount),
		A: c.A,
	}
}

func clamp8(v int) uint8 {
	return uint8(max(0, min(v, 255)))
}
