package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/faction"
)

// EconomyManager applies the end-of-turn economy to every faction
type EconomyManager struct {
	eventBus *events.EventBus
	gameID   string
	logger   zerolog.Logger
}

// NewEconomyManager creates a new economy manager
func NewEconomyManager(eventBus *events.EventBus, gameID string, logger zerolog.Logger) *EconomyManager {
	return &EconomyManager{
		eventBus: eventBus,
		gameID:   gameID,
		logger:   logger.With().Str("component", "EconomyManager").Logger(),
	}
}

// ApplyTurn refreshes each faction's units and books income minus upkeep,
// in the order given.
func (em *EconomyManager) ApplyTurn(turn int, factions ...*faction.Faction) []faction.Ledger {
	ledgers := make([]faction.Ledger, 0, len(factions))
	totalIncome, totalExpenses := 0, 0

	for _, f := range factions {
		l := f.EndTurn()
		ledgers = append(ledgers, l)
		totalIncome += l.Income
		totalExpenses += l.Expenses

		if l.Gold < 0 {
			em.logger.Warn().
				Str("faction", f.Tag.String()).
				Int("gold", l.Gold).
				Msg("Faction is in debt")
		}
		em.eventBus.Publish(events.NewEconomyAppliedEvent(em.gameID, turn, f.Tag, l.Income, l.Expenses, l.Gold))
	}

	em.logger.Debug().
		Int("turn", turn).
		Int("total_income", totalIncome).
		Int("total_expenses", totalExpenses).
		Msg("Turn economy applied")
	return ledgers
}
