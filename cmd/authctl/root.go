package main

import (
	"context"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/app"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

const defaultTimeout = 30 * time.Second

// rootFlags holds flags shared by every subcommand.
type rootFlags struct {
	envFile string
	timeout time.Duration
}

// NewRootCmd creates the root command for the admin CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "authctl",
		Short: "Administer gatekeep accounts and the auth database",
		Long: `authctl migrates the auth database and manages accounts without going
through the HTTP API. It reads the same AUTH_* environment variables as the
service, optionally from a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if flags.envFile == "" {
				_ = godotenv.Load() // load .env if present
				return nil
			}
			if err := godotenv.Load(flags.envFile); err != nil {
				return oops.Code("CONFIG_INVALID").With("env_file", flags.envFile).Wrap(err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", defaultTimeout, "timeout for database operations (e.g., 30s, 1m)")

	cmd.AddCommand(NewMigrateCmd(flags))
	cmd.AddCommand(NewSeedAdminCmd(flags))
	cmd.AddCommand(NewCreateAccountCmd(flags))
	cmd.AddCommand(NewChangeRoleCmd(flags))

	return cmd
}

// openAdmin loads the configuration and connects to the database. The
// returned context carries the command timeout.
func openAdmin(cmd *cobra.Command, flags *rootFlags) (context.Context, *app.Admin, func(), error) {
	cfg, err := app.LoadAdminConfig()
	if err != nil {
		return nil, nil, nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, flags.timeout)

	admin, err := app.OpenAdmin(ctx, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.DatabaseDriver).Wrap(err)
	}

	return ctx, admin, func() {
		_ = admin.Close()
		cancel()
	}, nil
}
