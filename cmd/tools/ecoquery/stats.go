package main

import (
	"context"
	"fmt"
	"time"

	"ecotourism-workers/internal/analytics"
	"ecotourism-workers/internal/common/database"

	"github.com/spf13/cobra"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show translation counters and the most recent translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Database.Redis.Address == "" {
				return fmt.Errorf("database.redis.address is not configured")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			client := database.NewRedis(cfg.Database.Redis)
			defer client.Close()
			if err := client.Ping(ctx); err != nil {
				return err
			}

			rec := analytics.NewRecorder(client.Client, cfg.Analytics.RecentLimit)
			stats, err := rec.Stats(ctx)
			if err != nil {
				return err
			}
			report := struct {
				*analytics.Stats
				Recent []analytics.Entry `json:"recent,omitempty"`
			}{Stats: stats}

			if recent > 0 {
				if report.Recent, err = rec.Recent(ctx, recent); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 0, "also list this many recent translations")
	return cmd
}
