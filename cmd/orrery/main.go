// Package main is the entry point for the orrery viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/app"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Orrery ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("path", config.UserConfigPath()))
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		return 1
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		logger.Error("render loop error", zap.Error(err))
		return 1
	}

	logger.Info("closed normally")
	return 0
}
