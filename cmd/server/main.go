package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/umkmhub/marketplace/internal/server"
	"github.com/umkmhub/marketplace/internal/server/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()
	logger := server.NewLogger(cfg)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "app init failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
