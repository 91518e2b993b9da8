// Package main is the entry point for the interactive ocean demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/acqua/internal/app"
	"github.com/Faultbox/acqua/internal/config"
	"github.com/Faultbox/acqua/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, cfgPath, err := config.LoadWithPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Acqua ocean demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, cfgPath)
	if err != nil {
		logger.Error("failed to create demo", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}
