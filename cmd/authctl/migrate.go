package main

import (
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations to the configured sqlite or PostgreSQL database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("Connecting to database...")
			_, _, done, err := openAdmin(cmd, flags)
			if err != nil {
				return err
			}
			defer done()

			cmd.Println("Migrations completed successfully")
			return nil
		},
	}
}
