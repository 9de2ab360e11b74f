package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/formalbridge/waterfall/internal/cli"
	"github.com/formalbridge/waterfall/internal/config"
	"github.com/formalbridge/waterfall/internal/storage"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved audit runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := storage.NewAuditStore(config.DatabasePath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return err
			}

			summaries, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			cli.RenderRunList(os.Stdout, summaries)
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}
