package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/docspace/docspace/pkg/logger"
)

// NewSweepCommand creates the sweep command
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:           "sweep",
		Short:         "Expire overdue invitations and purge old expired ones",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			log := logger.NewLoggerWithLevel(cfg.LogLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db, err := rootOpts.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := rootOpts.NewSweeper(cfg, db, log).ExpireSweep(ctx, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired: %d\npurged: %d\n", result.Expired, result.Purged)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
