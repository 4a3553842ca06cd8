package main

import (
	"fmt"

	"github.com/programme-lv/writing/migrate"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	pgURL := func(cmd *cobra.Command) (string, error) {
		cfg, err := loadConfig()
		if err != nil {
			return "", err
		}
		return cfg.Postgres.PgURL(cmd.Context(), cfg.AwsRegion)
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := pgURL(cmd)
				if err != nil {
					return err
				}
				return migrate.Up(u)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := pgURL(cmd)
				if err != nil {
					return err
				}
				return migrate.Down(u)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := pgURL(cmd)
				if err != nil {
					return err
				}
				v, dirty, err := migrate.Version(u)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
				return nil
			},
		},
	)
	return migrateCmd
}
