package core

import (
	"fmt"

	"github.com/google/uuid"
)

// FactionTag identifies the owner of a deployable.
type FactionTag int

const (
	NeutralFaction FactionTag = -1
	PlayerFaction  FactionTag = 0
	EnemyFaction   FactionTag = 1
)

func (f FactionTag) String() string {
	switch f {
	case PlayerFaction:
		return "Player"
	case EnemyFaction:
		return "Enemy"
	case NeutralFaction:
		return "Neutral"
	default:
		return fmt.Sprintf("Faction(%d)", int(f))
	}
}

// Category discriminates the two deployable variants.
type Category int

const (
	CategoryBuilding Category = iota
	CategoryUnit
)

func (c Category) String() string {
	if c == CategoryUnit {
		return "Unit"
	}
	return "Building"
}

// UnitType decides which terrain a unit may enter.
type UnitType int

const (
	UnitLand UnitType = iota
	UnitNaval
)

func (t UnitType) String() string {
	if t == UnitNaval {
		return "Naval"
	}
	return "Land"
}

// Dice is the random source for damage rolls. *rand.Rand satisfies it.
type Dice interface {
	Intn(n int) int
}

// Damage roll ranges, inclusive, in steps of DamageStep.
const (
	DamageStep        = 100
	UnitDamageMax     = 500
	BuildingDamageMax = 200
)

func rollSteps(d Dice, maxDamage int) int {
	if d == nil {
		return 0
	}
	return (d.Intn(maxDamage/DamageStep) + 1) * DamageStep
}

// Deployable is any faction-owned piece that deals and takes damage.
type Deployable interface {
	ID() string
	Category() Category
	Faction() FactionTag
	Position() Coordinate
	// RollDamage returns the damage this piece deals in one exchange.
	RollDamage(d Dice) int
	// TakeDamage applies damage and returns true only on the call that
	// destroys the piece.
	TakeDamage(amount int) bool
	IsAlive() bool
}

// UnitStats are the allowances a unit is created with.
type UnitStats struct {
	Strength      int
	MoveAllowance int
	NumAttacks    int
	Upkeep        int
}

// Unit is a mobile combat piece.
type Unit struct {
	id       string
	faction  FactionTag
	position Coordinate

	Type          UnitType
	NumAttacks    int
	Upkeep        int
	MoveAllowance int
	Strength      int
	AttacksLeft   int
	MoveLeft      int

	destroyed bool
}

// NewUnit creates a unit with full allowances.
func NewUnit(faction FactionTag, t UnitType, stats UnitStats, pos Coordinate) *Unit {
	return &Unit{
		id:            uuid.NewString(),
		faction:       faction,
		position:      pos,
		Type:          t,
		NumAttacks:    stats.NumAttacks,
		Upkeep:        stats.Upkeep,
		MoveAllowance: stats.MoveAllowance,
		Strength:      stats.Strength,
		AttacksLeft:   stats.NumAttacks,
		MoveLeft:      stats.MoveAllowance,
	}
}

func (u *Unit) ID() string           { return u.id }
func (u *Unit) Category() Category   { return CategoryUnit }
func (u *Unit) Faction() FactionTag  { return u.faction }
func (u *Unit) Position() Coordinate { return u.position }
func (u *Unit) IsAlive() bool        { return !u.destroyed && u.Strength > 0 }

// SetPosition records the node the unit now stands on.
func (u *Unit) SetPosition(c Coordinate) { u.position = c }

// RollDamage returns 100-500 in steps of 100.
func (u *Unit) RollDamage(d Dice) int {
	return rollSteps(d, UnitDamageMax)
}

// TakeDamage implements Deployable
func (u *Unit) TakeDamage(amount int) bool {
	if u.destroyed {
		return false
	}
	u.Strength -= amount
	if u.Strength <= 0 {
		u.destroyed = true
		return true
	}
	return false
}

// EndTurn refills movement and attacks.
func (u *Unit) EndTurn() {
	u.MoveLeft = u.MoveAllowance
	u.AttacksLeft = u.NumAttacks
}

// CanMove reports whether any movement is left this turn.
func (u *Unit) CanMove() bool { return u.IsAlive() && u.MoveLeft > 0 }

// CanAttack reports whether any attack is left this turn.
func (u *Unit) CanAttack() bool { return u.IsAlive() && u.AttacksLeft > 0 }

// SpendMove deducts cost from MoveLeft, clamping at zero. It returns false
// without spending if no movement is left.
func (u *Unit) SpendMove(cost int) bool {
	if !u.CanMove() {
		return false
	}
	u.MoveLeft = max(u.MoveLeft-cost, 0)
	return true
}

// SpendAttack consumes one attack. It returns false if none are left.
func (u *Unit) SpendAttack() bool {
	if !u.CanAttack() {
		return false
	}
	u.AttacksLeft--
	return true
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s %s unit at %s (str %d)", u.faction, u.Type, u.position, u.Strength)
}

// BuildingStats are the values a building is created with.
type BuildingStats struct {
	Defense    int
	Tax        int
	Durability int
}

// Building is a static piece that produces tax and defends its node.
type Building struct {
	id       string
	faction  FactionTag
	position Coordinate

	Defense    int
	Tax        int
	Durability int

	destroyed bool
}

// NewBuilding creates a building.
func NewBuilding(faction FactionTag, stats BuildingStats, pos Coordinate) *Building {
	return &Building{
		id:         uuid.NewString(),
		faction:    faction,
		position:   pos,
		Defense:    stats.Defense,
		Tax:        stats.Tax,
		Durability: stats.Durability,
	}
}

func (b *Building) ID() string           { return b.id }
func (b *Building) Category() Category   { return CategoryBuilding }
func (b *Building) Faction() FactionTag  { return b.faction }
func (b *Building) Position() Coordinate { return b.position }
func (b *Building) IsAlive() bool        { return !b.destroyed && b.Durability > 0 }

// RollDamage returns 100-200 in steps of 100.
func (b *Building) RollDamage(d Dice) int {
	return rollSteps(d, BuildingDamageMax)
}

// TakeDamage implements Deployable
func (b *Building) TakeDamage(amount int) bool {
	if b.destroyed {
		return false
	}
	b.Durability -= amount
	if b.Durability <= 0 {
		b.destroyed = true
		return true
	}
	return false
}

func (b *Building) String() string {
	return fmt.Sprintf("%s building at %s (dur %d)", b.faction, b.position, b.Durability)
}
