// Package main is the entry point for Deep Delve.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/deepdelve/internal/config"
	"github.com/samdwyer/deepdelve/internal/game"
	"github.com/samdwyer/deepdelve/internal/persist"
	"github.com/samdwyer/deepdelve/internal/telemetry"
	"github.com/samdwyer/deepdelve/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	configPath := flag.String("config", os.Getenv("DEEPDELVE_CONFIG"), "path to the TOML config file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if s := os.Getenv("DEEPDELVE_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			log.Fatalf("Invalid DEEPDELVE_SEED %q: %v", s, err)
		}
		cfg.Game.Seed = seed
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Warn("telemetry setup failed, running without traces", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	g, err := game.New(game.ConfigFrom(cfg),
		game.WithLogger(logger),
		game.WithStore(persist.NewFileStore(cfg.Save.Path)),
	)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	err = run(ctx, g, screen)
	screen.Close()
	if err != nil {
		logger.Error("game error", zap.Error(err))
		log.Fatalf("Game error: %v", err)
	}
}

// run renders a frame per tick and only blocks on the terminal when the game
// is waiting for the player.
func run(ctx context.Context, g *game.Game, screen *ui.Screen) error {
	renderer := ui.NewRenderer(screen)
	for {
		renderer.Render(g.Frame())

		var in game.Input
		if g.WaitsForInput() {
			ev := screen.PollEvent()
			switch ev.(type) {
			case nil:
				return nil
			case *tcell.EventResize:
				screen.Sync()
				continue
			}
			if p, ok := ui.HoverPoint(ev); ok {
				g.SetHover(p)
				continue
			}
			var ok bool
			if in, ok = ui.TranslateEvent(ev); !ok {
				continue
			}
		}

		running, err := g.Tick(ctx, in)
		if err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		if !running {
			return nil
		}
	}
}

// newLogger builds the diagnostics logger. The terminal belongs to the game,
// so output goes to a file unless none is configured.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
