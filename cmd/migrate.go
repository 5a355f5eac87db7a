package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/haptic-api/internal/database"
	"github.com/killallgit/haptic-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for the Haptic API.

Migrations use GORM auto migration and are additive: new tables and
columns are created, existing data is left untouched.

Available subcommands:
  up      - Apply all pending migrations
  status  - Show current migration status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

This creates or updates the schema for all application models,
bringing the database up to date.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  `Display the current status of the database schema.`,
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

// openDatabase connects using the configured database path
func openDatabase() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database path is not configured")
	}

	return database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if db.Migrator().HasTable("timelines") {
		var count int64
		if err := db.DB.Table("timelines").Count(&count).Error; err != nil {
			return err
		}
		fmt.Fprintf(out, "timelines: present (%d cached)\n", count)
	} else {
		fmt.Fprintln(out, "timelines: missing (run 'haptic-api migrate up')")
	}

	return nil
}
