package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// SetupState is the phase in which the board and factions are built
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() GamePhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering setup")
	return nil
}

func (s *SetupState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Int("max_turns", ctx.MaxTurns).Msg("Setup complete")
	return nil
}

func (s *SetupState) Validate(ctx *GameContext) error {
	return nil
}

// PlayerTurnState waits on the human player
type PlayerTurnState struct{}

func NewPlayerTurnState() State {
	return &PlayerTurnState{}
}

func (s *PlayerTurnState) Phase() GamePhase {
	return PhasePlayerTurn
}

func (s *PlayerTurnState) Enter(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
	}
	ctx.Logger.Info().
		Int("turn", ctx.Turn).
		Int("max_turns", ctx.MaxTurns).
		Msg("Player turn started")
	return nil
}

func (s *PlayerTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *PlayerTurnState) Validate(ctx *GameContext) error {
	if ctx.MaxTurns < 1 {
		return fmt.Errorf("max turns must be at least 1, got %d", ctx.MaxTurns)
	}
	if ctx.TurnsExhausted() {
		return fmt.Errorf("turn %d exceeds limit of %d", ctx.Turn, ctx.MaxTurns)
	}
	return nil
}

// EndTurnProcessingState runs the enemy AI and the economy
type EndTurnProcessingState struct{}

func NewEndTurnProcessingState() State {
	return &EndTurnProcessingState{}
}

func (s *EndTurnProcessingState) Phase() GamePhase {
	return PhaseEndTurnProcessing
}

func (s *EndTurnProcessingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Processing end of turn")
	return nil
}

func (s *EndTurnProcessingState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EndTurnProcessingState) Validate(ctx *GameContext) error {
	return nil
}

// endState is shared by the three terminal phases
type endState struct {
	phase  GamePhase
	winner core.FactionTag
}

func NewGameWonState() State {
	return &endState{phase: PhaseGameWon, winner: core.PlayerFaction}
}

func NewGameOverState() State {
	return &endState{phase: PhaseGameOver, winner: core.EnemyFaction}
}

func NewOutOfTurnsState() State {
	return &endState{phase: PhaseOutOfTurns, winner: core.NeutralFaction}
}

func (s *endState) Phase() GamePhase {
	return s.phase
}

func (s *endState) Enter(ctx *GameContext) error {
	ctx.Winner = s.winner
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Str("outcome", s.phase.String()).
		Str("winner", s.winner.String()).
		Int("turn", ctx.Turn).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Match ended")
	return nil
}

func (s *endState) Exit(ctx *GameContext) error {
	return fmt.Errorf("cannot leave terminal phase %s", s.phase)
}

func (s *endState) Validate(ctx *GameContext) error {
	if s.phase == PhaseOutOfTurns && !ctx.TurnsExhausted() {
		return fmt.Errorf("turn limit not reached: turn %d of %d", ctx.Turn, ctx.MaxTurns)
	}
	return nil
}
