// Package faction tracks one side's roster and treasury.
package faction

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Faction owns units and buildings and a shared gold balance.
//
// Rosters keep registration order so per-turn processing is deterministic.
// Gold has no floor: upkeep can drive it negative.
type Faction struct {
	Tag   core.FactionTag
	Color string

	gold      int
	units     []*core.Unit
	buildings []*core.Building
	capital   *core.Building
	named     bool
	graph     *core.Graph

	logger zerolog.Logger
}

// Ledger is the result of one end-of-turn economy pass.
type Ledger struct {
	Income   int
	Expenses int
	Gold     int
}

// Net is income minus expenses.
func (l Ledger) Net() int { return l.Income - l.Expenses }

// New creates an empty faction with a starting balance.
func New(tag core.FactionTag, color string, gold int, logger zerolog.Logger) *Faction {
	return &Faction{
		Tag:    tag,
		Color:  color,
		gold:   gold,
		logger: logger.With().Str("component", "Faction").Str("faction", tag.String()).Logger(),
	}
}

func (f *Faction) Gold() int                   { return f.gold }
func (f *Faction) Capital() *core.Building     { return f.capital }
func (f *Faction) IsDestroyed() bool           { return len(f.buildings) == 0 }
func (f *Faction) Units() []*core.Unit         { return append([]*core.Unit(nil), f.units...) }
func (f *Faction) Buildings() []*core.Building { return append([]*core.Building(nil), f.buildings...) }

// AddUnit puts u on the roster. It does not touch the board.
func (f *Faction) AddUnit(u *core.Unit) {
	f.units = append(f.units, u)
}

// AddBuilding puts b on the roster. The first building ever added becomes
// the capital.
func (f *Faction) AddBuilding(b *core.Building) {
	f.buildings = append(f.buildings, b)
	if !f.named {
		f.capital = b
		f.named = true
	}
}

// SetCapital overrides the capital. b must be on the roster.
func (f *Faction) SetCapital(b *core.Building) error {
	if !f.Owns(b) {
		return fmt.Errorf("set capital: %w", core.ErrNotOwned)
	}
	f.capital = b
	f.named = true
	return nil
}

// Owns reports whether d is on this faction's roster.
func (f *Faction) Owns(d core.Deployable) bool {
	switch p := d.(type) {
	case *core.Unit:
		return indexOf(f.units, p) >= 0
	case *core.Building:
		return indexOf(f.buildings, p) >= 0
	}
	return false
}

// Initialize registers every rostered piece into its node on g. A piece that
// is off the board or collides with another piece is an error. A unit placed
// on terrain it cannot enter is logged and kept; it will be stuck.
func (f *Faction) Initialize(g *core.Graph) error {
	f.graph = g

	for _, b := range f.buildings {
		n := g.Node(b.Position())
		if n == nil {
			return fmt.Errorf("%s building at %s: %w", f.Tag, b.Position(), core.ErrInvalidCoordinates)
		}
		if n.LocalBuilding != nil && n.LocalBuilding != b {
			return fmt.Errorf("%s building at %s: %w", f.Tag, b.Position(), core.ErrNodeOccupied)
		}
		n.LocalBuilding = b
	}

	for _, u := range f.units {
		n := g.Node(u.Position())
		if n == nil {
			return fmt.Errorf("%s unit at %s: %w", f.Tag, u.Position(), core.ErrInvalidCoordinates)
		}
		if n.OccupyingUnit != nil && n.OccupyingUnit != u {
			return fmt.Errorf("%s unit at %s: %w", f.Tag, u.Position(), core.ErrNodeOccupied)
		}
		if !n.CanEnter(u.Type) {
			f.logger.Error().
				Str("position", u.Position().String()).
				Str("terrain", n.Terrain.String()).
				Str("unit_type", u.Type.String()).
				Msg("Unit placed on terrain it cannot enter")
		}
		n.OccupyingUnit = u
	}

	f.logger.Debug().
		Int("units", len(f.units)).
		Int("buildings", len(f.buildings)).
		Bool("has_capital", f.capital != nil).
		Msg("Faction initialized")
	return nil
}

// CalculateIncome sums the tax of every node holding one of our buildings.
func (f *Faction) CalculateIncome() int {
	if f.graph == nil {
		return 0
	}
	total := 0
	for _, b := range f.buildings {
		if n := f.graph.Node(b.Position()); n != nil {
			total += n.CalculateTaxTotal()
		}
	}
	return total
}

// CalculateExpenses sums unit upkeep.
func (f *Faction) CalculateExpenses() int {
	total := 0
	for _, u := range f.units {
		total += u.Upkeep
	}
	return total
}

// EndTurn refreshes every unit and applies income minus expenses.
func (f *Faction) EndTurn() Ledger {
	for _, u := range f.units {
		u.EndTurn()
	}

	l := Ledger{Income: f.CalculateIncome(), Expenses: f.CalculateExpenses()}
	f.gold += l.Net()
	l.Gold = f.gold

	f.logger.Debug().
		Int("income", l.Income).
		Int("expenses", l.Expenses).
		Int("gold", l.Gold).
		Msg("Economy applied")
	return l
}

// RecruitArmy buys a unit at the capital. It fails without changing any
// state when gold is short, there is no capital, or the capital node is
// occupied or cannot hold the unit type.
func (f *Faction) RecruitArmy(t core.UnitType, stats core.UnitStats, price int) (*core.Unit, error) {
	var err error
	var n *core.Node
	switch {
	case f.gold < price:
		err = core.ErrInsufficientGold
	case f.capital == nil || f.graph == nil:
		err = core.ErrNoCapital
	default:
		n = f.graph.Node(f.capital.Position())
		switch {
		case n == nil:
			err = core.ErrNoCapital
		case n.IsOccupied():
			err = core.ErrCapitalOccupied
		case !n.CanEnter(t):
			err = core.ErrImpassable
		}
	}
	if err != nil {
		f.logger.Warn().
			Err(err).
			Int("gold", f.gold).
			Int("price", price).
			Msg("Recruitment refused")
		return nil, fmt.Errorf("recruit %s: %w", t, err)
	}

	f.gold -= price
	u := core.NewUnit(f.Tag, t, stats, n.Position)
	n.OccupyingUnit = u
	f.AddUnit(u)

	f.logger.Info().
		Str("position", n.Position.String()).
		Int("gold", f.gold).
		Msg("Army recruited")
	return u, nil
}

// Remove takes d off the roster. Losing the capital leaves the faction
// without one until SetCapital is called. Returns false if d was not ours.
func (f *Faction) Remove(d core.Deployable) bool {
	switch p := d.(type) {
	case *core.Unit:
		i := indexOf(f.units, p)
		if i < 0 {
			return false
		}
		f.units = append(f.units[:i], f.units[i+1:]...)
	case *core.Building:
		i := indexOf(f.buildings, p)
		if i < 0 {
			return false
		}
		f.buildings = append(f.buildings[:i], f.buildings[i+1:]...)
		if f.capital == p {
			f.capital = nil
		}
	default:
		return false
	}
	return true
}

func indexOf[T comparable](s []T, v T) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
