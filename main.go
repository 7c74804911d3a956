package main

import (
	"context"
	"os"

	"go.uber.org/zap"
	"rev-shortener/config"
	"rev-shortener/server"
)

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
}

func main() {
	defer logger.Sync()

	if err := run(context.Background(), os.Args[1:]); err != nil {
		logger.Fatal("Application error", zap.Error(err))
	}
	logger.Info("URL Shortener application stopped.")
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger.Info("Starting URL Shortener application...",
		zap.String("address", cfg.ServerPort),
		zap.Bool("rate_limit_disabled", cfg.DisableRateLimit))
	return server.Run(ctx, logger, cfg)
}
