package bootstrap

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/social-graph-api/config"
	httpapi "github.com/GoSim-25-26J-441/social-graph-api/internal/api/http"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/api/http/docs"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/stats"
)

// Graph is the Neo4j access the router needs. *graphdb.Client implements it.
type Graph interface {
	graphdb.Runner
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	ServiceName    string
	Version        string
	Logger         *zap.Logger
	Graph          Graph
	Cache          *cache.RedisCache // nil disables caching
	Stats          *stats.Scheduler
	Auth           gin.HandlerFunc // nil leaves the social routes open
	AllowedOrigins []string
	RateLimit      config.RateLimitConfig
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	if dep.Logger == nil {
		dep.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))
	r.Use(middleware.RateLimitMiddleware(dep.RateLimit.RPS, dep.RateLimit.Burst))

	var (
		readCache  cache.Cache = cache.Noop{}
		cacheProbe httpapi.Pinger
	)
	if dep.Cache != nil {
		readCache = dep.Cache
		cacheProbe = dep.Cache
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Graph, cacheProbe)
	healthHandler.RegisterRoutes(r)

	docsHandler, err := docs.New()
	if err != nil {
		return nil, fmt.Errorf("load api docs: %w", err)
	}
	docsHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if dep.Stats != nil {
		stats.NewHandler(dep.Stats).RegisterRoutes(r)
	}

	routes.RegisterSocial(r, routes.SocialDeps{
		Graph: dep.Graph,
		Cache: readCache,
		Auth:  dep.Auth,
	})

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
