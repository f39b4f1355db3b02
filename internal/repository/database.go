package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/acharjeesuvo/EvalMind/migrations"
)

// PoolOptions bounds the connection pool shared by all repositories.
type PoolOptions struct {
	MaxOpenConns int
	MaxIdleConns int
}

// NewPostgresDB establishes a new connection to the PostgreSQL database.
func NewPostgresDB(ctx context.Context, dataSourceName string, pool PoolOptions, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}

	logger.Info("Successfully connected to the database!")
	return db, nil
}

// CheckConnection opens a one-off connection, pings it and closes it again.
func CheckConnection(ctx context.Context, dataSourceName string) error {
	db, err := sqlx.Open("postgres", dataSourceName)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.PingContext(ctx)
}

// MigrateDB runs the embedded database migrations against PostgreSQL.
func MigrateDB(db *sqlx.DB, logger *zap.Logger) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("couldn't get database instance for running migrations: %w", err)
	}

	m, err := NewMigrator("postgres", driver)
	if err != nil {
		return err
	}
	return ApplyMigrations(m, logger)
}

// NewMigrator binds the embedded migrations to a database driver. Closing the
// returned instance also closes the driver's connection pool.
func NewMigrator(databaseName string, driver database.Driver) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("couldn't open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return nil, fmt.Errorf("couldn't create migrate instance: %w", err)
	}
	return m, nil
}

// ApplyMigrations migrates up to the latest version. An up-to-date schema is not an error.
func ApplyMigrations(m *migrate.Migrate, logger *zap.Logger) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("couldn't run database migration: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("couldn't read migration version: %w", err)
	}

	logger.Info("Database migration was run successfully", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// orderByteWise returns an ORDER BY expression that compares column bytes, so
// item order does not depend on the server's locale.
func orderByteWise(db *sqlx.DB, column string) string {
	if db.DriverName() == "postgres" {
		return column + ` COLLATE "C"`
	}
	return column
}
