// Package migrations applies the SQL schema in migrations/ at startup.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Up applies every pending "up" migration found at sourceURL (e.g. "file://migrations").
// It reports whether anything was applied.
func Up(databaseURL, sourceURL string, logger *slog.Logger) (bool, error) {
	// A short-lived database/sql handle on the pgx stdlib driver, separate from the app pool.
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("open migration connection: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := db.Ping(); err != nil {
		return false, fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("create postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return false, fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return false, fmt.Errorf("migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database: %w", dbErr)
	}
	return upErr == nil, nil
}
