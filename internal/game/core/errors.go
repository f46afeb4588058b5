package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNotAdjacent        = errors.New("nodes are not adjacent")
	ErrNoPath             = errors.New("no path to destination")
	ErrOutOfRange         = errors.New("target out of range")
	ErrNoMovesLeft        = errors.New("no movement left this turn")
	ErrNoAttacksLeft      = errors.New("no attacks left this turn")
	ErrNotOwned           = errors.New("piece not owned by acting faction")
	ErrNoTarget           = errors.New("no hostile piece at target")
	ErrNoSelection        = errors.New("no unit selected")
	ErrBusy               = errors.New("an action is still in flight")
	ErrNotPlayerTurn      = errors.New("not accepting player actions")
	ErrGameOver           = errors.New("game is over")
	ErrInsufficientGold   = errors.New("insufficient gold")
	ErrNoCapital          = errors.New("faction has no capital")
	ErrCapitalOccupied    = errors.New("capital node is occupied")
	ErrNodeOccupied       = errors.New("node already holds a piece")
	ErrImpassable         = errors.New("terrain impassable for unit type")
)

// GameError carries the turn and faction an operation failed for.
type GameError struct {
	Turn      int
	Faction   FactionTag
	Operation string
	Err       error
}

// NewGameError creates a GameError.
func NewGameError(turn int, faction FactionTag, operation string, err error) *GameError {
	return &GameError{Turn: turn, Faction: faction, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	if e.Faction == NeutralFaction {
		return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s %s: %v", e.Turn, e.Faction, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

// WrapGameStateError adds turn and phase context. Returns nil for a nil error.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapUnitError adds the acting unit's position. Returns nil for a nil error.
func WrapUnitError(u *Unit, operation string, err error) error {
	if err == nil {
		return nil
	}
	if u == nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return fmt.Errorf("%s unit at %s: %s: %w", u.Faction(), u.Position(), operation, err)
}
