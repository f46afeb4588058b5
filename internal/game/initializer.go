package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/ai"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/faction"
	"github.com/mitchelldurbincs/HexTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/HexTactics/internal/game/pathfinding"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// BoardConfig is everything a board is built from. Zero fields get
// defaults: settings and map from the config defaults, a time-seeded RNG,
// dice drawn from the RNG and a random game ID.
type BoardConfig struct {
	GameID   string
	Settings Settings
	Map      mapgen.MapConfig
	// Scenario skips map generation when set.
	Scenario      *mapgen.Scenario
	Rng           *rand.Rand
	Dice          core.Dice
	Collaborators Collaborators
	Subscribers   []events.Subscriber
	Logger        zerolog.Logger
}

// BoardInitializer handles the staged construction of a board
type BoardInitializer struct {
	config BoardConfig
	logger zerolog.Logger
}

// NewBoardInitializer creates a new board initializer
func NewBoardInitializer(cfg BoardConfig) *BoardInitializer {
	return &BoardInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Board").Logger(),
	}
}

// NewBoard builds a board ready for the first player turn.
func NewBoard(ctx context.Context, cfg BoardConfig) (*Board, error) {
	return NewBoardInitializer(cfg).Initialize(ctx)
}

// Initialize creates the board, places both factions and starts turn 1.
func (bi *BoardInitializer) Initialize(ctx context.Context) (*Board, error) {
	// Check context early
	select {
	case <-ctx.Done():
		bi.logger.Error().Err(ctx.Err()).Msg("Board creation cancelled before it started")
		return nil, ctx.Err()
	default:
	}

	if err := bi.setupDefaults(); err != nil {
		return nil, err
	}

	scenario, err := bi.scenario()
	if err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	graph := core.NewGraph(scenario.Width, scenario.Height, scenario.Terrain)

	player, err := bi.buildFaction(scenario, core.PlayerFaction, bi.config.Settings.PlayerColor, graph)
	if err != nil {
		return nil, fmt.Errorf("player setup failed: %w", err)
	}
	enemy, err := bi.buildFaction(scenario, core.EnemyFaction, bi.config.Settings.EnemyColor, graph)
	if err != nil {
		return nil, fmt.Errorf("enemy setup failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := bi.createBoard(graph, player, enemy)

	for _, s := range bi.config.Subscribers {
		b.bus.Subscribe(s)
	}

	b.bus.Publish(events.NewGameStartedEvent(
		b.gameID,
		graph.W,
		graph.H,
		bi.config.Settings.MaxTurns,
		len(player.Units()),
		len(enemy.Units()),
	))

	if err := b.machine.TransitionTo(states.PhasePlayerTurn, "board initialized"); err != nil {
		bi.logger.Error().Err(err).Msg("Failed to start the first turn")
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}
	b.bus.Publish(events.NewTurnStartedEvent(b.gameID, b.Turn()))
	b.pushFactionInfo()

	bi.logger.Info().
		Str("game_id", b.gameID).
		Int("width", graph.W).
		Int("height", graph.H).
		Int("max_turns", bi.config.Settings.MaxTurns).
		Int("player_units", len(player.Units())).
		Int("enemy_units", len(enemy.Units())).
		Msg("Board created successfully")
	return b, nil
}

// setupDefaults sets up default values for missing configuration
func (bi *BoardInitializer) setupDefaults() error {
	cfg := &bi.config
	if cfg.Rng == nil {
		bi.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Dice == nil {
		cfg.Dice = cfg.Rng
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}
	if cfg.Settings.MaxTurns == 0 {
		cfg.Settings = DefaultSettings()
	}
	if cfg.Scenario == nil && cfg.Map.Width == 0 {
		mc, err := MapConfigFromConfig(config.Defaults())
		if err != nil {
			return err
		}
		cfg.Map = mc
	}
	cfg.Collaborators = cfg.Collaborators.withDefaults()
	return nil
}

func (bi *BoardInitializer) scenario() (*mapgen.Scenario, error) {
	if bi.config.Scenario != nil {
		return bi.config.Scenario, nil
	}
	return mapgen.NewGenerator(bi.config.Map, bi.config.Rng).GenerateScenario()
}

// buildFaction creates the faction for tag from its placement. The capital
// is registered first so it becomes the faction's capital.
func (bi *BoardInitializer) buildFaction(sc *mapgen.Scenario, tag core.FactionTag, color string, graph *core.Graph) (*faction.Faction, error) {
	p, ok := sc.Placement(tag)
	if !ok {
		return nil, fmt.Errorf("scenario has no placement for %s", tag)
	}
	s := bi.config.Settings

	f := faction.New(tag, color, s.StartingGold, bi.config.Logger)
	f.AddBuilding(core.NewBuilding(tag, s.Capital, p.Capital))
	for _, c := range p.Towns {
		f.AddBuilding(core.NewBuilding(tag, s.Town, c))
	}
	for _, c := range p.LandUnits {
		f.AddUnit(core.NewUnit(tag, core.UnitLand, s.Land, c))
	}
	for _, c := range p.NavalUnits {
		f.AddUnit(core.NewUnit(tag, core.UnitNaval, s.Naval, c))
	}

	if err := f.Initialize(graph); err != nil {
		return nil, err
	}
	return f, nil
}

// createBoard wires the board's components
func (bi *BoardInitializer) createBoard(graph *core.Graph, player, enemy *faction.Faction) *Board {
	cfg := bi.config
	logger := bi.logger.With().Str("game_id", cfg.GameID).Logger()
	bus := events.NewEventBus(cfg.Logger)
	finder := pathfinding.New(graph, cfg.Logger)

	b := &Board{
		gameID:   cfg.GameID,
		settings: cfg.Settings,
		graph:    graph,
		finder:   finder,
		ranges:   rules.NewRangeCalculator(graph, finder, cfg.Logger),
		win:      rules.NewWinConditionChecker(cfg.Logger, cfg.Settings.MaxTurns),
		player:   player,
		enemy:    enemy,
		bus:      bus,
		dice:     cfg.Dice,
		collab:   cfg.Collaborators,
		logger:   logger,
		current:  rules.EmptyRanges(),
	}

	gameCtx := states.NewGameContext(cfg.GameID, cfg.Settings.MaxTurns, cfg.Logger)
	b.machine = states.NewStateMachine(gameCtx, bus)
	b.economy = NewEconomyManager(bus, cfg.GameID, cfg.Logger)
	b.turns = NewTurnProcessor(b)
	b.enemyAI = ai.New(enemy, graph, cfg.Collaborators.Scheduler, b.enemyAttack, ai.Timing{
		Stagger: cfg.Settings.AIStagger,
		Lunge:   cfg.Settings.AttackLunge,
	}, cfg.Logger)
	return b
}
