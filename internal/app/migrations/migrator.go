package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/yigit/creditbridge/internal/pkg/logger"
)

//go:embed sql/*.sql
var migrationFS embed.FS

// migrationDir is the directory inside migrationFS holding the goose files
const migrationDir = "sql"

// Migrator manages database migrations
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a migrator sharing the pool's connection settings
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// goose works on *sql.DB; this wraps the pool rather than dialing again.
	return &Migrator{db: stdlib.OpenDBFromPool(pool)}, nil
}

// Up applies every pending migration
func (m *Migrator) Up(ctx context.Context) error {
	logger.Info().Msg("Applying database migrations...")

	if err := goose.UpContext(ctx, m.db, migrationDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}

	logger.Info().Int64("version", version).Msg("Database migrations applied")
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return version, nil
}

// Close releases the sql.DB wrapper; the pool itself stays open
func (m *Migrator) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
