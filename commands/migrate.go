package commands

import (
	"fmt"

	"yatube/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := loadConfig()
				db, err := openDB(cfg)
				if err != nil {
					return err
				}
				if err := database.Migrate(db, cfg.DBDriver); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withGoose(database.Rollback)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withGoose(database.Status)
			},
		},
	)

	return cmd
}

// withGoose runs fn against a postgres connection. sqlite databases are
// managed by auto-migrate and have no migration history.
func withGoose(fn func(*gorm.DB) error) error {
	cfg := loadConfig()
	if cfg.DBDriver != "postgres" {
		return fmt.Errorf("migration history is only tracked for postgres, DB_DRIVER is %q", cfg.DBDriver)
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	return fn(db)
}
