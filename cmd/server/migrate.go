package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"apkraft/internal/config"
	"apkraft/internal/infrastructure/database"
	"apkraft/internal/infrastructure/database/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database schema migrations",
	Long:  `Apply, roll back or inspect the embedded catalog schema migrations.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSQLDB(func(db *sql.DB) error {
			if err := migrations.MigrateUp(db); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := cmd.Flags().GetInt("steps")
		if err != nil {
			return err
		}
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		return withSQLDB(func(db *sql.DB) error {
			if err := migrations.MigrateDown(db, steps); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSQLDB(func(db *sql.DB) error {
			return printVersion(cmd, db)
		})
	},
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

func withSQLDB(fn func(db *sql.DB) error) error {
	loadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gormDB, err := database.Connect(newDatabaseConfig(cfg))
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(sqlDB)
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	current, dirty, err := migrations.Version(db)
	if err != nil {
		return err
	}
	latest, err := migrations.LatestVersion()
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (latest %d, dirty %t)\n", current, latest, dirty)
	return nil
}
