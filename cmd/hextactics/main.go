// Command hextactics opens the desktop client: one human player against the
// enemy AI on a generated hex map.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/HexTactics/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", -1, "Map seed (-1 to use config, 0 for time-based)")
	layout := flag.String("layout", "", "Layout file to play instead of a generated map")
	coords := flag.Bool("coords", false, "Show hex coordinates")
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
	if *layout != "" {
		cfg.Game.Map.Layout = *layout
	}
	if *coords {
		cfg.Development.ShowCoordinates = true
	}

	// Only the log level is applied live; board settings are read once.
	config.WatchConfig(func(c *config.Config) {
		setLevel(c.Logging.Level)
		log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
	}, func(err error) {
		log.Warn().Err(err).Msg("Config reload rejected")
	})

	var subs []events.Subscriber
	if cfg.Development.VerboseLogging {
		subs = append(subs, subscribers.NewLoggerSubscriber("client-logger", log.Logger, zerolog.DebugLevel))
	}

	g, err := ui.NewHumanGame(context.Background(), cfg, game.BoardConfig{
		Rng:         rand.New(rand.NewSource(cfg.Game.Map.Seed)),
		Subscribers: subs,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	if err := ui.Run(g); err != nil {
		log.Fatal().Err(err).Msg("Client exited with error")
	}
}

func setupLogging(lc config.LoggingConfig) {
	setLevel(lc.Level)

	if os.Getenv("APP_ENV") == "production" || lc.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

func setLevel(level string) {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
}
