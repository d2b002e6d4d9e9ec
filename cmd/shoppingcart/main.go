package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/angelmondragon/shoppingcart/internal/cart"
	"github.com/angelmondragon/shoppingcart/internal/cartfile"
	"github.com/angelmondragon/shoppingcart/internal/console"
	"github.com/angelmondragon/shoppingcart/pkg/config"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"github.com/angelmondragon/shoppingcart/pkg/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "shoppingcart"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "shoppingcart",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
		Console:     cfg.App.IsDev(),
	})

	reg := prometheus.NewRegistry()
	session := console.NewSession(console.SessionParams{
		Store:          cart.NewStore(),
		File:           cartfile.NewFile(cfg.Storage.CartFile),
		CurrencySymbol: cfg.Display.CurrencySymbol,
		Logger:         logg,
		Metrics:        metrics.NewCartMetrics(reg),
		Gatherer:       reg,

		RestoreOnFailedLoad: cfg.Storage.RestoreOnFailedLoad,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"cart_file": cfg.Storage.CartFile,
	})

	if cfg.Storage.AutoLoad {
		loadCtx := session.Context(ctx)
		if msg := session.Load(loadCtx); msg.IsError() {
			logg.Warn(loadCtx, msg.Text)
		}
	}

	if err := session.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logg.Error(ctx, "session stopped unexpectedly", err)
		os.Exit(1)
	}
}
