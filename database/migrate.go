package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationFS embed.FS

// RunMigrations applies all pending migrations. An empty path uses the
// migrations embedded in the binary.
func RunMigrations(db *sql.DB, driver, path string) error {
	m, err := newMigrate(db, driver, path)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(db *sql.DB, driver, path string) error {
	m, err := newMigrate(db, driver, path)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

func newMigrate(db *sql.DB, driver, path string) (*migrate.Migrate, error) {
	var (
		instance migratedb.Driver
		dbName   string
		err      error
	)

	cfg := Config{Driver: driver}
	switch cfg.driver() {
	case "mysql":
		dbName = "mysql"
		instance, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case "sqlite":
		dbName = "sqlite3"
		instance, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	if path != "" {
		m, err := migrate.NewWithDatabaseInstance("file://"+path, dbName, instance)
		if err != nil {
			return nil, fmt.Errorf("failed to load migrations from %s: %w", path, err)
		}
		return m, nil
	}

	sub, err := fs.Sub(migrationFS, "migrations/"+cfg.driver())
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	return m, nil
}
