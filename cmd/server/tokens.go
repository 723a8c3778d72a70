package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-seat-reservation/internal/config"
	"github.com/iliyamo/restaurant-seat-reservation/internal/repository"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain staff refresh tokens",
	}
	cmd.AddCommand(newTokensPruneCmd())
	return cmd
}

func newTokensPruneCmd() *cobra.Command {
	var grace time.Duration

	c := &cobra.Command{
		Use:   "prune",
		Short: "Delete refresh tokens that expired before now minus --grace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx := context.Background()
			db, err := openDB(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := repository.NewTokenRepo(db).DeleteExpired(ctx, time.Now().UTC().Add(-grace))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d refresh tokens\n", n)
			return nil
		},
	}
	c.Flags().DurationVar(&grace, "grace", 0, "keep tokens that expired less than this long ago")
	return c
}
