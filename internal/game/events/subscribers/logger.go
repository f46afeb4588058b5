package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("turn", event.Turn()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Int("max_turns", e.MaxTurns).
			Int("player_units", e.PlayerUnits).
			Int("enemy_units", e.EnemyUnits)

	case *events.GameEndedEvent:
		logEvent.
			Str("outcome", e.Outcome).
			Str("winner", e.Winner.String()).
			Dur("duration", e.Duration)

	case *events.TurnEndedEvent:
		logEvent.
			Int("ai_attacks", e.AIAttacks).
			Dur("process_time", e.ProcessedTime)

	case *events.UnitSelectedEvent:
		logEvent.
			Str("unit_id", e.UnitID).
			Str("position", e.Position.String()).
			Int("move_range", e.MoveRange).
			Int("attack_range", e.AttackRange).
			Int("charge_range", e.ChargeRange)

	case *events.UnitMovedEvent:
		logEvent.
			Str("faction", e.Faction.String()).
			Str("unit_id", e.UnitID).
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Int("cost", e.Cost).
			Int("move_left", e.MoveLeft)

	case *events.CombatResolvedEvent:
		logEvent.
			Str("attacker_faction", e.AttackerFaction.String()).
			Str("defender_faction", e.DefenderFaction.String()).
			Str("location", e.Location.String()).
			Int("damage_dealt", e.DamageDealt).
			Int("damage_taken", e.DamageTaken).
			Bool("attacker_destroyed", e.AttackerDestroyed).
			Bool("defender_destroyed", e.DefenderDestroyed).
			Bool("charge", e.Charge)

	case *events.PieceDestroyedEvent:
		logEvent.
			Str("faction", e.Faction.String()).
			Str("category", e.Category.String()).
			Str("position", e.Position.String())

	case *events.FactionDestroyedEvent:
		logEvent.Str("faction", e.Faction.String())

	case *events.UnitRecruitedEvent:
		logEvent.
			Str("faction", e.Faction.String()).
			Str("position", e.Position.String()).
			Int("price", e.Price).
			Int("gold_left", e.GoldLeft)

	case *events.EconomyAppliedEvent:
		logEvent.
			Str("faction", e.Faction.String()).
			Int("income", e.Income).
			Int("expenses", e.Expenses).
			Int("gold", e.Gold)

	case *events.ActionRejectedEvent:
		logEvent.
			Str("action", e.Action).
			Str("reason", e.Reason)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
