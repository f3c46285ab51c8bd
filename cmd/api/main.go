package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"assetbase/internal/auth"
	"assetbase/internal/config"
	httpserver "assetbase/internal/http"
	"assetbase/internal/logging"
	"assetbase/internal/rbac"
	"assetbase/internal/seed"
	"assetbase/internal/storage"
	"assetbase/internal/tenancy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger depends on config; fall back to stderr here.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	stores, err := storage.Open(cfg.Database)
	if err != nil {
		logger.Fatal("open stores", zap.Error(err))
	}
	if err := stores.Migrate(); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	ctx := context.Background()
	if err := rbac.SeedCatalog(ctx, stores.Main); err != nil {
		logger.Fatal("seed permission catalog", zap.Error(err))
	}
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seed.Demo(ctx, stores.Main); err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
		logger.Info("demo data seeded")
	}

	directory := tenancy.NewDirectory(stores.Main)
	tokens := auth.NewService(stores.Main, directory, cfg.JWT)

	router := httpserver.NewRouter(stores, tokens, logger)

	logger.Info("server listening",
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env),
	)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
