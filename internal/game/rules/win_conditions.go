package rules

import "github.com/rs/zerolog"

// Outcome is the result of a win condition check
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGameWon
	OutcomeGameOver
	OutcomeOutOfTurns
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGameWon:
		return "GameWon"
	case OutcomeGameOver:
		return "GameOver"
	case OutcomeOutOfTurns:
		return "OutOfTurns"
	default:
		return "None"
	}
}

// IsTerminal reports whether the match ends with this outcome.
func (o Outcome) IsTerminal() bool {
	return o != OutcomeNone
}

// Faction is the view of a faction needed to decide the match
type Faction interface {
	IsDestroyed() bool
}

// WinConditionChecker handles match end detection
type WinConditionChecker struct {
	logger   zerolog.Logger
	maxTurns int
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger, maxTurns int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:   logger.With().Str("component", "WinConditionChecker").Logger(),
		maxTurns: maxTurns,
	}
}

// CheckDestruction decides the match on faction destruction alone. It is
// used right after combat, mid-turn. The enemy is checked first: an exchange
// that wipes out both sides counts as a win.
func (wc *WinConditionChecker) CheckDestruction(player, enemy Faction) Outcome {
	switch {
	case enemy.IsDestroyed():
		wc.logger.Info().Msg("Enemy faction destroyed")
		return OutcomeGameWon
	case player.IsDestroyed():
		wc.logger.Info().Msg("Player faction destroyed")
		return OutcomeGameOver
	}
	return OutcomeNone
}

// CheckEndOfTurn runs after the turn counter has been advanced. turn is the
// number of the turn about to start; the match runs out once it passes the limit.
func (wc *WinConditionChecker) CheckEndOfTurn(player, enemy Faction, turn int) Outcome {
	if o := wc.CheckDestruction(player, enemy); o.IsTerminal() {
		return o
	}
	// Turns are numbered from 1, so maxTurns full turns are played before the limit trips.
	if turn > wc.maxTurns {
		wc.logger.Info().
			Int("turn", turn).
			Int("max_turns", wc.maxTurns).
			Msg("Turn limit reached")
		return OutcomeOutOfTurns
	}
	wc.logger.Debug().Int("turn", turn).Msg("Match continues")
	return OutcomeNone
}

// MaxTurns returns the configured turn limit.
func (wc *WinConditionChecker) MaxTurns() int {
	return wc.maxTurns
}
