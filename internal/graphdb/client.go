package graphdb

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "graph_query_duration_seconds",
	Help:    "Neo4j transaction duration in seconds by access mode and outcome",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
}, []string{"mode", "outcome"})

// Runner runs a single Cypher statement inside a managed transaction and
// returns every record it produced.
type Runner interface {
	Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	Write(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

type Options struct {
	URI            string
	User           string
	Password       string
	Database       string
	MaxPoolSize    int
	AcquireTimeout time.Duration
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// Client wraps a Neo4j driver. It is safe for concurrent use; each call
// opens its own session.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// Open creates the driver and fails fast when the database is unreachable.
func Open(ctx context.Context, opt Options) (*Client, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("NEO4J_URI is not set")
	}
	if opt.ConnectTimeout == 0 {
		opt.ConnectTimeout = 5 * time.Second
	}
	if opt.PingTimeout == 0 {
		opt.PingTimeout = 5 * time.Second
	}

	driver, err := neo4j.NewDriverWithContext(
		opt.URI,
		neo4j.BasicAuth(opt.User, opt.Password, ""),
		func(c *config.Config) {
			if opt.MaxPoolSize > 0 {
				c.MaxConnectionPoolSize = opt.MaxPoolSize
			}
			if opt.AcquireTimeout > 0 {
				c.ConnectionAcquisitionTimeout = opt.AcquireTimeout
			}
			c.SocketConnectTimeout = opt.ConnectTimeout
		},
	)
	if err != nil {
		return nil, fmt.Errorf("graph connect: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, opt.PingTimeout)
	defer cancel()

	if err := driver.VerifyConnectivity(pctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("graph ping: %w", err)
	}

	return &Client{driver: driver, database: opt.Database}, nil
}

func (c *Client) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return c.run(ctx, neo4j.AccessModeRead, cypher, params)
}

func (c *Client) Write(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return c.run(ctx, neo4j.AccessModeWrite, cypher, params)
}

// Ping verifies that a server is reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func (c *Client) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: c.database})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	}

	start := time.Now()
	var (
		out any
		err error
	)
	if mode == neo4j.AccessModeRead {
		out, err = session.ExecuteRead(ctx, work)
	} else {
		out, err = session.ExecuteWrite(ctx, work)
	}
	observe(mode, start, err)
	if err != nil {
		return nil, err
	}

	records, _ := out.([]*neo4j.Record)
	return records, nil
}

func observe(mode neo4j.AccessMode, start time.Time, err error) {
	modeLabel := "write"
	if mode == neo4j.AccessModeRead {
		modeLabel = "read"
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	queryDuration.WithLabelValues(modeLabel, outcome).Observe(time.Since(start).Seconds())
}
