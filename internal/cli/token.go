package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/http/middleware"
)

// TokenOptions holds flags for the token command
type TokenOptions struct {
	*RootOptions
	UserID string
	Email  string
	Name   string
	TTL    time.Duration
}

// NewTokenCommand creates the token command
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for local development",
		Long: `Sign an HS256 bearer token with the configured JWT secret, shaped like the
tokens the identity provider issues.

Example:
  docspacectl token --user alice --email alice@example.com`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return issueToken(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "", "subject claim (user id)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email claim")
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name claim")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 12*time.Hour, "token lifetime")

	return cmd
}

func issueToken(opts *TokenOptions, cmd *cobra.Command) error {
	if opts.UserID == "" {
		return fmt.Errorf("--user is required")
	}
	email, err := domain.ValidateEmail(opts.Email)
	if err != nil {
		return err
	}
	if opts.TTL <= 0 {
		return fmt.Errorf("--ttl must be positive")
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not configured")
	}

	token, err := middleware.IssueToken(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, opts.UserID, email, opts.Name, opts.TTL)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
