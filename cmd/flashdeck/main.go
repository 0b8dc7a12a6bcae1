package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/almasov/flashdeck/internal/config"
	"github.com/almasov/flashdeck/internal/infra/postgres"
	"github.com/almasov/flashdeck/internal/logger"
	"github.com/almasov/flashdeck/internal/repository"
	"github.com/almasov/flashdeck/internal/service"
)

func main() {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	policy, err := cfg.Policy()
	if err != nil {
		zlog.Fatal("invalid scheduling policy", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zlog.Fatal("database not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        cfg.DB.MaxConnections,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	itemRepo := repository.NewItemRepository(pool)
	logRepo := repository.NewReviewLogRepository(pool)

	digestService := service.NewDigestService(itemRepo, logRepo, policy, cfg.Digest.Spec, zlog)
	if cfg.Digest.Enabled {
		go digestService.Start(ctx)
	}

	zlog.Info("flashdeck started",
		zap.String("env", cfg.Env),
		zap.String("anchor_timezone", cfg.Scheduler.AnchorTimezone),
	)

	<-ctx.Done()
	zlog.Info("shutdown signal received")
}
