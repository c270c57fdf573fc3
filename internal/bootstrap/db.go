package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/social-graph-api/config"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/cache"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
)

// OpenGraph connects to Neo4j and fails when it is unreachable.
func OpenGraph(ctx context.Context, cfg config.Neo4jConfig) (*graphdb.Client, error) {
	return graphdb.Open(ctx, graphdb.Options{
		URI:            cfg.URI,
		User:           cfg.User,
		Password:       cfg.Password,
		Database:       cfg.Database,
		MaxPoolSize:    cfg.MaxPoolSize,
		AcquireTimeout: cfg.AcquireTimeout,
		ConnectTimeout: cfg.ConnectTimeout,
	})
}

const cachePingTimeout = 2 * time.Second

// OpenCache connects to Redis. It returns a nil cache when no address is
// configured; callers treat that as caching disabled.
func OpenCache(ctx context.Context, cfg config.RedisConfig) (*cache.RedisCache, *redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return cache.NewRedisCache(client, cfg.TTL), client, nil
}
