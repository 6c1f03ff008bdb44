package cli

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/docspace/docspace/config"
	"github.com/docspace/docspace/internal/database"
	"github.com/docspace/docspace/internal/repository"
	"github.com/docspace/docspace/internal/service"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/mailer"
)

// RootOptions holds global flags and the dependencies commands are built from.
// Tests replace the functions.
type RootOptions struct {
	EnvFile string

	LoadConfig func(opts config.LoadOptions) (*config.Config, error)
	Connect    func(ctx context.Context, cfg *config.Config) (*sql.DB, error)
	NewSweeper func(cfg *config.Config, db *sql.DB, log logger.Logger) service.ExpirySweeper
}

// NewRootCommand creates the root command for docspacectl
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{
		LoadConfig: config.LoadWithOptions,
		Connect:    connect,
		NewSweeper: newSweeper,
	})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docspacectl",
		Short: "Administer a docspace deployment",
		Long:  "Administrative tasks for docspace: schema migrations, invitation sweeps and development tokens.",
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "environment file to load before reading the process environment")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	return o.LoadConfig(config.LoadOptions{EnvFile: o.EnvFile})
}

func connect(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return database.Connect(ctx, "postgres", &cfg.Database)
}

// newSweeper builds an invitation service that is only used for sweeping
func newSweeper(cfg *config.Config, db *sql.DB, log logger.Logger) service.ExpirySweeper {
	return service.NewInvitationService(
		repository.NewInvitationRepository(db),
		repository.NewWorkspaceRepository(db),
		repository.NewCollaboratorRepository(db),
		repository.NewUserRepository(db),
		repository.NewActivityRepository(db),
		nil,
		mailer.NewConsoleMailer(log),
		nil,
		&cfg.Workspace,
		log,
	)
}
