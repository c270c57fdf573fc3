package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/social-graph-api/config"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/bootstrap"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/logging"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	graph, err := bootstrap.OpenGraph(ctx, cfg.Neo4j)
	if err != nil {
		return err
	}
	defer func() {
		if err := graph.Close(context.Background()); err != nil {
			logger.Warn("close neo4j driver", zap.Error(err))
		}
	}()
	logger.Info("connected to neo4j", zap.String("uri", cfg.Neo4j.URI))

	if cfg.Neo4j.EnsureSchema {
		if err := graphdb.EnsureSchema(ctx, graph); err != nil {
			return err
		}
		logger.Info("graph schema ensured")
	}

	readCache, redisClient, err := bootstrap.OpenCache(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}

	authMW, err := bootstrap.AuthMiddleware(ctx, cfg.Auth)
	if err != nil {
		return err
	}

	scheduler := stats.NewScheduler(stats.NewCollector(graph), logger)
	if err := scheduler.Start(cfg.Stats.Schedule); err != nil {
		return err
	}

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		Logger:         logger,
		Graph:          graph,
		Cache:          readCache,
		Stats:          scheduler,
		Auth:           authMW,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("auth_mode", cfg.Auth.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	scheduler.Stop(shutdownCtx)
	return nil
}
