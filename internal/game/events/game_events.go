package events

import (
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted      = "game.started"
	TypeGameEnded        = "game.ended"
	TypeTurnStarted      = "turn.started"
	TypeTurnEnded        = "turn.ended"
	TypeUnitSelected     = "unit.selected"
	TypeUnitMoved        = "unit.moved"
	TypeCombatResolved   = "combat.resolved"
	TypePieceDestroyed   = "piece.destroyed"
	TypeFactionDestroyed = "faction.destroyed"
	TypeUnitRecruited    = "unit.recruited"
	TypeEconomyApplied   = "economy.applied"
	TypeActionRejected   = "action.rejected"
	TypeStateTransition  = "state.transition"
)

// GameStartedEvent is published once the board is set up
type GameStartedEvent struct {
	BaseEvent
	MapWidth    int
	MapHeight   int
	MaxTurns    int
	PlayerUnits int
	EnemyUnits  int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, width, height, maxTurns, playerUnits, enemyUnits int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID, 0),
		MapWidth:    width,
		MapHeight:   height,
		MaxTurns:    maxTurns,
		PlayerUnits: playerUnits,
		EnemyUnits:  enemyUnits,
	}
}

// GameEndedEvent is published when the match reaches a terminal phase
type GameEndedEvent struct {
	BaseEvent
	Outcome  string
	Winner   core.FactionTag
	Duration time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent. Winner is NeutralFaction
// when the turn limit ran out.
func NewGameEndedEvent(gameID string, turn int, outcome string, winner core.FactionTag, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, turn),
		Outcome:   outcome,
		Winner:    winner,
		Duration:  duration,
	}
}

// TurnStartedEvent is published at the beginning of each player turn
type TurnStartedEvent struct {
	BaseEvent
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{BaseEvent: newBase(TypeTurnStarted, gameID, turn)}
}

// TurnEndedEvent is published after end-of-turn processing finishes
type TurnEndedEvent struct {
	BaseEvent
	AIAttacks     int
	ProcessedTime time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, aiAttacks int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID, turn),
		AIAttacks:     aiAttacks,
		ProcessedTime: processedTime,
	}
}

// UnitSelectedEvent is published when a friendly unit is selected
type UnitSelectedEvent struct {
	BaseEvent
	UnitID      string
	Position    core.Coordinate
	MoveRange   int
	AttackRange int
	ChargeRange int
}

// NewUnitSelectedEvent creates a new UnitSelectedEvent
func NewUnitSelectedEvent(gameID string, turn int, unitID string, pos core.Coordinate, move, attack, charge int) *UnitSelectedEvent {
	return &UnitSelectedEvent{
		BaseEvent:   newBase(TypeUnitSelected, gameID, turn),
		UnitID:      unitID,
		Position:    pos,
		MoveRange:   move,
		AttackRange: attack,
		ChargeRange: charge,
	}
}

// UnitMovedEvent is published when a move commits
type UnitMovedEvent struct {
	BaseEvent
	Faction  core.FactionTag
	UnitID   string
	From     core.Coordinate
	To       core.Coordinate
	Cost     int
	MoveLeft int
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(gameID string, turn int, u *core.Unit, from, to core.Coordinate, cost int) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, gameID, turn),
		Faction:   u.Faction(),
		UnitID:    u.ID(),
		From:      from,
		To:        to,
		Cost:      cost,
		MoveLeft:  u.MoveLeft,
	}
}

// CombatResolvedEvent is published after both sides of an exchange are applied
type CombatResolvedEvent struct {
	BaseEvent
	AttackerID        string
	DefenderID        string
	AttackerFaction   core.FactionTag
	DefenderFaction   core.FactionTag
	Location          core.Coordinate
	DamageDealt       int
	DamageTaken       int
	AttackerDestroyed bool
	DefenderDestroyed bool
	Charge            bool
}

// NewCombatResolvedEvent creates a new CombatResolvedEvent
func NewCombatResolvedEvent(gameID string, turn int, r core.CombatResult) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:         newBase(TypeCombatResolved, gameID, turn),
		AttackerID:        r.Attacker.ID(),
		DefenderID:        r.Defender.ID(),
		AttackerFaction:   r.Attacker.Faction(),
		DefenderFaction:   r.Defender.Faction(),
		Location:          r.Location,
		DamageDealt:       r.DamageDealt,
		DamageTaken:       r.DamageTaken,
		AttackerDestroyed: r.AttackerDestroyed,
		DefenderDestroyed: r.DefenderDestroyed,
		Charge:            r.Charge,
	}
}

// PieceDestroyedEvent is published once per destroyed unit or building
type PieceDestroyedEvent struct {
	BaseEvent
	PieceID  string
	Faction  core.FactionTag
	Category core.Category
	Position core.Coordinate
}

// NewPieceDestroyedEvent creates a new PieceDestroyedEvent
func NewPieceDestroyedEvent(gameID string, turn int, d core.Deployable) *PieceDestroyedEvent {
	return &PieceDestroyedEvent{
		BaseEvent: newBase(TypePieceDestroyed, gameID, turn),
		PieceID:   d.ID(),
		Faction:   d.Faction(),
		Category:  d.Category(),
		Position:  d.Position(),
	}
}

// FactionDestroyedEvent is published when a faction loses its last building
type FactionDestroyedEvent struct {
	BaseEvent
	Faction core.FactionTag
}

// NewFactionDestroyedEvent creates a new FactionDestroyedEvent
func NewFactionDestroyedEvent(gameID string, turn int, faction core.FactionTag) *FactionDestroyedEvent {
	return &FactionDestroyedEvent{
		BaseEvent: newBase(TypeFactionDestroyed, gameID, turn),
		Faction:   faction,
	}
}

// UnitRecruitedEvent is published when a faction buys a unit
type UnitRecruitedEvent struct {
	BaseEvent
	Faction  core.FactionTag
	UnitID   string
	Position core.Coordinate
	Price    int
	GoldLeft int
}

// NewUnitRecruitedEvent creates a new UnitRecruitedEvent
func NewUnitRecruitedEvent(gameID string, turn int, u *core.Unit, price, goldLeft int) *UnitRecruitedEvent {
	return &UnitRecruitedEvent{
		BaseEvent: newBase(TypeUnitRecruited, gameID, turn),
		Faction:   u.Faction(),
		UnitID:    u.ID(),
		Position:  u.Position(),
		Price:     price,
		GoldLeft:  goldLeft,
	}
}

// EconomyAppliedEvent is published per faction at the end of each turn
type EconomyAppliedEvent struct {
	BaseEvent
	Faction  core.FactionTag
	Income   int
	Expenses int
	Gold     int
}

// NewEconomyAppliedEvent creates a new EconomyAppliedEvent
func NewEconomyAppliedEvent(gameID string, turn int, faction core.FactionTag, income, expenses, gold int) *EconomyAppliedEvent {
	return &EconomyAppliedEvent{
		BaseEvent: newBase(TypeEconomyApplied, gameID, turn),
		Faction:   faction,
		Income:    income,
		Expenses:  expenses,
		Gold:      gold,
	}
}

// ActionRejectedEvent is published when a player action is refused
type ActionRejectedEvent struct {
	BaseEvent
	Action string
	Reason string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, turn int, action string, err error) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID, turn),
		Action:    action,
		Reason:    err.Error(),
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID string, turn int, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID, turn),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
