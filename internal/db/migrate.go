package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"budgeteer-go/internal/config"
	"budgeteer-go/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration.
func Migrate(cfg config.DBConfig, log logger.Logger) error {
	return withMigrator(cfg, log, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(cfg config.DBConfig, log logger.Logger) error {
	return withMigrator(cfg, log, func(m *migrate.Migrate) error {
		return m.Steps(-1)
	})
}

func withMigrator(cfg config.DBConfig, log logger.Logger, run func(*migrate.Migrate) error) error {
	// golang-migrate closes the *sql.DB it was handed, so it gets its own
	// connection instead of the application's pool.
	sqlDB, err := sql.Open("pgx", cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create pgx migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := run(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("db: migrations already up to date")
			return nil
		}
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.Info("db: migrations applied", "version", version, "dirty", dirty)
	return nil
}
