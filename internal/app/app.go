// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/internal/bootstrap"
	"github.com/typegamer/rhythm-core/internal/config"
	"github.com/typegamer/rhythm-core/internal/server"
	"github.com/typegamer/rhythm-core/pkg/stats"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance. Components are
// initialized in dependency order: Redis, content catalogs, the session
// coordinator, servers, telemetry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	client, err := stats.Connect(ctx, cfg.RedisAddr(), cfg.RedisPassword, uint64(cfg.RedisMaxRetries))
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	app.redisClient = client

	wordCatalog := bootstrap.InitWordCatalog(cfg.WordListDir)

	musicCatalog, err := bootstrap.InitMusicCatalog(cfg.MusicConfigPath)
	if err != nil {
		return nil, err
	}

	coordinator := bootstrap.InitCoordinator(cfg.GameConfig(), wordCatalog, stats.NewStore(client), musicCatalog)

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, coordinator, wordCatalog, stats.NewHealthChecker(client), cfg.WordVariance)
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, cfg.ZipkinEndpoint, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}
