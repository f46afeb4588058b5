// Command headless plays a full match in the terminal: a scripted player
// against the enemy AI, printing the board after every turn.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/HexTactics/internal/game/faction"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", -1, "Map and dice seed (-1 to use config, 0 for time-based)")
	maxTurns := flag.Int("turns", 0, "Turn limit (0 to use config default)")
	quiet := flag.Bool("quiet", false, "Only print the final board and report")
	noColor := flag.Bool("no-color", false, "Print the board without ANSI colors")
	logEvents := flag.Bool("log-events", false, "Log every game event")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		if err := config.LoadEnvironmentConfig(env); err != nil {
			log.Warn().Err(err).Str("env", env).Msg("Environment config not applied")
		}
	}
	cfg := config.Get()
	setupLogging(cfg.Logging)

	if *seed >= 0 {
		cfg.Game.Map.Seed = *seed
	}
	if cfg.Game.Map.Seed == 0 {
		cfg.Game.Map.Seed = time.Now().UnixNano()
	}
	if *maxTurns > 0 {
		cfg.Game.MaxTurns = *maxTurns
	}

	if err := run(context.Background(), cfg, runOptions{
		out:       os.Stdout,
		quiet:     *quiet,
		color:     !*noColor,
		logEvents: *logEvents || cfg.Development.VerboseLogging,
	}); err != nil {
		log.Fatal().Err(err).Msg("Match failed")
	}
}

type runOptions struct {
	out       io.Writer
	quiet     bool
	color     bool
	logEvents bool
}

// matchResult is what run reports once the match is over.
type matchResult struct {
	Phase    string
	Turn     int
	Totals   TurnStats
	Recorder *subscribers.Recorder
	Board    *game.Board
}

func run(ctx context.Context, cfg *config.Config, opts runOptions) error {
	res, err := play(ctx, cfg, opts, log.Logger)
	if err != nil {
		return err
	}
	printReport(opts.out, res)
	return nil
}

func play(ctx context.Context, cfg *config.Config, opts runOptions, logger zerolog.Logger) (*matchResult, error) {
	mc, err := game.MapConfigFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	recorder := subscribers.NewRecorder("headless-recorder")
	subs := []events.Subscriber{recorder}
	if opts.logEvents {
		subs = append(subs, subscribers.NewLoggerSubscriber("headless-logger", logger, zerolog.InfoLevel))
	}

	board, err := game.NewBoard(ctx, game.BoardConfig{
		Settings:    game.SettingsFromConfig(cfg),
		Map:         mc,
		Rng:         rand.New(rand.NewSource(cfg.Game.Map.Seed)),
		Subscribers: subs,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	logger.Info().
		Str("game_id", board.GameID()).
		Int64("seed", cfg.Game.Map.Seed).
		Int("max_turns", board.Settings().MaxTurns).
		Msg("Headless match started")

	pilot := NewAutopilot(board, logger)
	res := &matchResult{Recorder: recorder, Board: board}
	for !board.IsOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		turn := board.Turn()
		stats, err := pilot.PlayTurn()
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", turn, err)
		}
		res.Totals.Attacks += stats.Attacks
		res.Totals.Charges += stats.Charges
		res.Totals.Moves += stats.Moves
		res.Totals.Recruits += stats.Recruits

		if !opts.quiet {
			fmt.Fprintf(opts.out, "Turn %d: %d attacks, %d charges, %d moves, %d recruits\n",
				turn, stats.Attacks, stats.Charges, stats.Moves, stats.Recruits)
			fmt.Fprintln(opts.out, renderBoard(board, opts.color))
		}
	}

	res.Phase = board.Phase().String()
	res.Turn = board.Turn()
	return res, nil
}

func renderBoard(b *game.Board, color bool) string {
	if color {
		return b.RenderColor()
	}
	return b.Render()
}

func printReport(w io.Writer, res *matchResult) {
	b := res.Board
	fmt.Fprintf(w, "Final board:\n%s\n", b.Render())
	fmt.Fprintf(w, "Result: %s on the %s turn\n", res.Phase, humanize.Ordinal(res.Turn))
	fmt.Fprintf(w, "Player actions: %s attacks, %s charges, %s moves, %s recruits\n",
		humanize.Comma(int64(res.Totals.Attacks)), humanize.Comma(int64(res.Totals.Charges)),
		humanize.Comma(int64(res.Totals.Moves)), humanize.Comma(int64(res.Totals.Recruits)))

	for _, f := range []*faction.Faction{b.PlayerFaction(), b.EnemyFaction()} {
		info := b.FactionInfo(f)
		fmt.Fprintf(w, "%-6s gold %s, %d units, %d buildings\n",
			info.Tag, humanize.Comma(int64(info.Gold)), info.Units, info.Buildings)
	}

	destroyed := res.Recorder.OfType(events.TypePieceDestroyed)
	fmt.Fprintf(w, "Pieces destroyed: %s, combats: %s, events: %s\n",
		humanize.Comma(int64(len(destroyed))),
		humanize.Comma(int64(len(res.Recorder.OfType(events.TypeCombatResolved)))),
		humanize.Comma(int64(res.Recorder.Len())))
}

func setupLogging(lc config.LoggingConfig) {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || lc.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("APP_ENV") == "production" || lc.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
