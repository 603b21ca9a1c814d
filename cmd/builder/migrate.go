package main

import (
	"database/sql"
	"fmt"

	"github.com/hairizuan-noorazman/scenario-builder/database"
	"github.com/spf13/cobra"
)

var (
	migrationsPath string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *sql.DB, driver string) error {
			if err := database.RunMigrations(db, driver, migrationsPath); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *sql.DB, driver string) error {
			if err := database.RollbackMigration(db, driver, migrationsPath); err != nil {
				return fmt.Errorf("failed to rollback migration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration rolled back successfully")
			return nil
		})
	},
}

// withDatabase loads the config, connects and runs fn with the raw handle.
func withDatabase(fn func(db *sql.DB, driver string) error) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg.Database.connection())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	return fn(sqlDB, cfg.Database.Driver)
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	migrateCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	migrateCmd.PersistentFlags().StringVarP(&migrationsPath, "path", "p", "", "migrations directory (defaults to the embedded migrations)")

	rootCmd.AddCommand(migrateCmd)
}
