package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// GameContext provides match information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this match
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Turn is the current turn number, starting at 1
	Turn int

	// MaxTurns is the turn limit
	MaxTurns int

	// StartTime is when the first player turn began
	StartTime time.Time

	// EndTime is when a terminal phase was entered
	EndTime time.Time

	// Winner is NeutralFaction until the match is decided
	Winner core.FactionTag
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, maxTurns int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:   gameID,
		MaxTurns: maxTurns,
		Turn:     1,
		Logger:   logger.With().Str("game_id", gameID).Logger(),
		Winner:   core.NeutralFaction,
	}
}

// GetElapsedTime returns the time since the first turn, frozen once the match ends
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}

// TurnsExhausted reports whether MaxTurns turns have been completed
func (gc *GameContext) TurnsExhausted() bool {
	return gc.Turn > gc.MaxTurns
}
