package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// TurnProcessor handles the orchestration of the end of a player turn:
// the enemy's attacks, the economy, the turn counter and the end checks.
type TurnProcessor struct {
	board  *Board
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(board *Board) *TurnProcessor {
	return &TurnProcessor{
		board:  board,
		logger: board.logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// EndTurn closes the player turn and runs the enemy turn. The board stays
// busy until the enemy's queued attacks have all resolved; with an
// immediate scheduler that happens before EndTurn returns.
func (tp *TurnProcessor) EndTurn() error {
	b := tp.board
	if err := b.guard("end_turn"); err != nil {
		return err
	}

	b.busy = true
	b.ClearSelection()
	turn := b.Turn()
	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnLogger.Debug().Msg("Ending player turn")

	if err := b.machine.TransitionTo(states.PhaseEndTurnProcessing, "player ended turn"); err != nil {
		b.busy = false
		return b.reject("end_turn", core.WrapGameStateError(turn, b.Phase().String(), err))
	}

	startTime := time.Now()
	queued := b.enemyAI.PerformAiActions(func(resolved int) {
		tp.completeTurn(turn, resolved, startTime, turnLogger)
	})
	turnLogger.Debug().Int("queued_attacks", queued).Msg("Enemy attacks queued")
	return nil
}

// completeTurn runs once the enemy is done.
func (tp *TurnProcessor) completeTurn(turn, aiAttacks int, startTime time.Time, turnLogger zerolog.Logger) {
	b := tp.board
	defer func() { b.busy = false }()

	if b.IsOver() {
		turnLogger.Info().Str("phase", b.Phase().String()).Msg("Match ended during enemy turn")
		return
	}

	b.economy.ApplyTurn(turn, b.player, b.enemy)

	ctx := b.machine.GetContext()
	ctx.Turn++
	tp.publishTurnEnded(turn, aiAttacks, startTime)

	if outcome := b.win.CheckEndOfTurn(b.player, b.enemy, ctx.Turn); outcome.IsTerminal() {
		b.finish(outcome, fmt.Sprintf("turn %d ended", turn))
		return
	}

	if err := b.machine.TransitionTo(states.PhasePlayerTurn, "enemy turn finished"); err != nil {
		turnLogger.Error().Err(err).Msg("Failed to start player turn")
		return
	}
	tp.publishTurnStarted(ctx.Turn)
	b.pushFactionInfo()
	turnLogger.Debug().Int("next_turn", ctx.Turn).Msg("Turn finished")
}

// publishTurnStarted publishes the turn started event
func (tp *TurnProcessor) publishTurnStarted(turn int) {
	tp.board.bus.Publish(events.NewTurnStartedEvent(tp.board.gameID, turn))
}

// publishTurnEnded publishes the turn ended event
func (tp *TurnProcessor) publishTurnEnded(turn, aiAttacks int, startTime time.Time) {
	tp.board.bus.Publish(events.NewTurnEndedEvent(
		tp.board.gameID,
		turn,
		aiAttacks,
		time.Since(startTime),
	))
}
