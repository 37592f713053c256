// Package main is the entry point for Dark Tamagotchi.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/darktamagotchi/internal/config"
	"github.com/samdwyer/darktamagotchi/internal/game"
	"github.com/samdwyer/darktamagotchi/internal/logging"
	"github.com/samdwyer/darktamagotchi/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_DARKTAMAGOTCHI_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if cfg.TelemetryEnabled {
		telemetry.ConfigureHoneycombEnv(cfg.HoneycombAPIKey, cfg.HoneycombDataset)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Error("telemetry setup failed, running without observability", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	seed, err := cfg.ResolveSeed()
	if err != nil {
		logger.Fatal("failed to seed random source", zap.Error(err))
	}

	g, err := game.New(game.Config{
		Seed:           seed,
		PlayerCreature: cfg.PlayerCreature,
		Battle:         cfg.Battle(),
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("failed to initialize game", zap.Error(err))
	}
	logger.Info("game started",
		zap.Int64("seed", seed),
		zap.String("species", g.Player().Species),
	)

	enemy := g.NewEncounter(ctx)
	fmt.Printf("A wild %s (level %d) appears!\n", enemy.Name, enemy.Level)

	result, err := g.RunBattle(ctx, enemy)
	if err != nil {
		logger.Fatal("battle failed", zap.Error(err))
	}
	printResult(result)

	if used := g.RecoverWithItems(); len(used) > 0 {
		fmt.Printf("%s used %d item(s) to recover.\n", g.Player().Name, len(used))
	}

	if !cfg.Multiplayer {
		return
	}

	rival := g.NewEncounter(ctx)
	fmt.Printf("\n%s challenges %s to a duel!\n", rival.Name, g.Player().Name)
	duel, err := g.RunMultiplayer(ctx, g.Player(), rival)
	if err != nil {
		logger.Error("multiplayer battle aborted", zap.Error(err))
		return
	}
	printResult(duel.First)
}

func printResult(result game.Result) {
	for _, line := range result.Log {
		fmt.Println(line)
	}
	s := result.Summary
	fmt.Printf("\n%s (%d turns)\n", s.OutcomeLine, s.Turns)
	fmt.Printf("HP: %d (%d%%) vs %d (%d%%)\n", s.PlayerHP, s.PlayerHPPercent, s.EnemyHP, s.EnemyHPPercent)
	switch {
	case s.XPGain > 0:
		fmt.Printf("XP gained: %d\n", s.XPGain)
	case s.XPLoss > 0:
		fmt.Printf("XP lost: %d\n", s.XPLoss)
	}
}
