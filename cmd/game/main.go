// Package main is the entry point for the portal prototype.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/portalgame/internal/config"
	"github.com/Faultbox/portalgame/internal/game"
	"github.com/Faultbox/portalgame/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	logger.Info("=== Portal Prototype ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Create and run game
	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	// Run the game loop
	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
