package mapgen

import (
	"fmt"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Layout symbols, one per terrain.
const (
	SymbolSea    = '~'
	SymbolWater  = 'w'
	SymbolPlains = '.'
	SymbolForest = 'f'
	SymbolHill   = 'h'
)

// Symbol returns the layout character for a terrain.
func Symbol(t core.Terrain) rune {
	switch t {
	case core.TerrainWater:
		return SymbolWater
	case core.TerrainPlains:
		return SymbolPlains
	case core.TerrainForest:
		return SymbolForest
	case core.TerrainHill:
		return SymbolHill
	default:
		return SymbolSea
	}
}

func terrainFromSymbol(r rune) (core.Terrain, bool) {
	switch r {
	case SymbolSea:
		return core.TerrainSea, true
	case SymbolWater:
		return core.TerrainWater, true
	case SymbolPlains:
		return core.TerrainPlains, true
	case SymbolForest:
		return core.TerrainForest, true
	case SymbolHill:
		return core.TerrainHill, true
	}
	return core.TerrainSea, false
}

// LayoutTerrain is an authored map: one string per row, one symbol per column.
type LayoutTerrain struct {
	W, H  int
	cells []core.Terrain
}

// ParseLayout reads rows separated by newlines. Blank lines and spaces are
// ignored; every row must have the same width.
func ParseLayout(layout string) (*LayoutTerrain, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout is empty")
	}

	lt := &LayoutTerrain{W: len([]rune(rows[0])), H: len(rows)}
	lt.cells = make([]core.Terrain, 0, lt.W*lt.H)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != lt.W {
			return nil, fmt.Errorf("layout row %d has width %d, want %d", y, len(runes), lt.W)
		}
		for x, r := range runes {
			t, ok := terrainFromSymbol(r)
			if !ok {
				return nil, fmt.Errorf("layout row %d column %d: unknown symbol %q", y, x, r)
			}
			lt.cells = append(lt.cells, t)
		}
	}
	return lt, nil
}

// MustParseLayout is ParseLayout for fixed layouts; it panics on error.
func MustParseLayout(layout string) *LayoutTerrain {
	lt, err := ParseLayout(layout)
	if err != nil {
		panic(err)
	}
	return lt
}

// TerrainAt implements core.TerrainSource. Off-layout coordinates are Sea.
func (lt *LayoutTerrain) TerrainAt(c core.Coordinate) core.Terrain {
	if !c.IsValid(lt.W, lt.H) {
		return core.TerrainSea
	}
	return lt.cells[c.ToIndex(lt.W)]
}

// Uniform returns a source with the same terrain everywhere.
func Uniform(t core.Terrain) core.TerrainSource {
	return core.TerrainFunc(func(core.Coordinate) core.Terrain { return t })
}

// NoiseConfig holds thresholds for noise terrain. Levels are in [0, 1].
type NoiseConfig struct {
	Seed        int64
	Scale       float64
	SeaLevel    float64
	WaterLevel  float64
	HillLevel   float64
	ForestLevel float64
}

// NoiseTerrain derives terrain from two layered simplex noise fields:
// elevation decides sea, water, land and hills; vegetation decides forest.
type NoiseTerrain struct {
	cfg        NoiseConfig
	elevation  opensimplex.Noise
	vegetation opensimplex.Noise
}

// NewNoiseTerrain creates a noise source.
func NewNoiseTerrain(cfg NoiseConfig) *NoiseTerrain {
	if cfg.Scale <= 0 {
		cfg.Scale = 0.15
	}
	return &NoiseTerrain{
		cfg:        cfg,
		elevation:  opensimplex.NewNormalized(cfg.Seed),
		vegetation: opensimplex.NewNormalized(cfg.Seed + 1),
	}
}

// TerrainAt implements core.TerrainSource.
func (nt *NoiseTerrain) TerrainAt(c core.Coordinate) core.Terrain {
	// Odd rows sit half a hex east; rows are sqrt(3)/2 apart.
	x := float64(c.X) + 0.5*float64(c.Y&1)
	y := float64(c.Y) * 0.866

	elev := octaveNoise(nt.elevation, x, y, 3, nt.cfg.Scale, 0.5)
	switch {
	case elev < nt.cfg.SeaLevel:
		return core.TerrainSea
	case elev < nt.cfg.WaterLevel:
		return core.TerrainWater
	case elev >= nt.cfg.HillLevel:
		return core.TerrainHill
	}

	if octaveNoise(nt.vegetation, x, y, 2, nt.cfg.Scale*1.5, 0.5) >= nt.cfg.ForestLevel {
		return core.TerrainForest
	}
	return core.TerrainPlains
}

func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total, amplitude, maxValue := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

// Overlay forces specific coordinates to a terrain on top of a base source.
type Overlay struct {
	Base      core.TerrainSource
	Overrides map[core.Coordinate]core.Terrain
}

// NewOverlay creates an overlay with no overrides.
func NewOverlay(base core.TerrainSource) *Overlay {
	return &Overlay{Base: base, Overrides: make(map[core.Coordinate]core.Terrain)}
}

// Set forces c to t.
func (o *Overlay) Set(c core.Coordinate, t core.Terrain) {
	o.Overrides[c] = t
}

// TerrainAt implements core.TerrainSource.
func (o *Overlay) TerrainAt(c core.Coordinate) core.Terrain {
	if t, ok := o.Overrides[c]; ok {
		return t
	}
	return o.Base.TerrainAt(c)
}
