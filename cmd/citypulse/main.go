package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/city-pulse/internal/app"
	"github.com/samvad-hq/city-pulse/internal/cli"
	"github.com/samvad-hq/city-pulse/internal/config"
	"github.com/samvad-hq/city-pulse/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "citypulse: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("citypulse starting", "config", map[string]any{
		"app_env":      cfg.Env,
		"storage_type": cfg.StorageType,
		"enrich":       cfg.EnrichMetadata,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, cfg, log, app.Options{})
	}
	return cli.NewRootCommand(factory).ExecuteContext(ctx)
}
