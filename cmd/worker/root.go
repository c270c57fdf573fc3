package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/social-graph-api/config"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/bootstrap"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/logging"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/stats"
)

// connector opens the graph for one command. The returned func releases it.
type connector func(ctx context.Context) (graphdb.Runner, func(), error)

func connectGraph(ctx context.Context) (graphdb.Runner, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(logger)

	client, err := bootstrap.OpenGraph(ctx, cfg.Neo4j)
	if err != nil {
		return nil, nil, err
	}
	return client, func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("close neo4j driver", zap.Error(err))
		}
		_ = logger.Sync()
	}, nil
}

func newRootCmd(connect connector) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:          "worker",
		Short:        "Maintenance tasks for the social graph",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "abort the task after this long")

	withGraph := func(c *cobra.Command, fn func(ctx context.Context, db graphdb.Runner) error) error {
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()

		db, release, err := connect(ctx)
		if err != nil {
			return err
		}
		defer release()
		return fn(ctx, db)
	}

	cmd.AddCommand(newSchemaCmd(withGraph), newStatsCmd(withGraph))
	return cmd
}

type graphTask func(c *cobra.Command, fn func(ctx context.Context, db graphdb.Runner) error) error

func newSchemaCmd(withGraph graphTask) *cobra.Command {
	schema := &cobra.Command{
		Use:   "schema",
		Short: "Manage graph constraints",
	}
	schema.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create the uniqueness constraints if they are missing",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withGraph(c, func(ctx context.Context, db graphdb.Runner) error {
				if err := graphdb.EnsureSchema(ctx, db); err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "applied %d constraints\n", len(graphdb.Constraints))
				return nil
			})
		},
	})
	return schema
}

func newStatsCmd(withGraph graphTask) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print node and relationship counts as JSON",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withGraph(c, func(ctx context.Context, db graphdb.Runner) error {
				snap, err := stats.NewCollector(db).Collect(ctx)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(c.OutOrStdout())
				if !compact {
					enc.SetIndent("", "  ")
				}
				return enc.Encode(snap)
			})
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print on a single line")
	return cmd
}
