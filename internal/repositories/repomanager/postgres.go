// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stormarket/stormarket/internal/dbx"
	"github.com/stormarket/stormarket/internal/migrations"
	"github.com/stormarket/stormarket/internal/repositories/backups"
	"github.com/stormarket/stormarket/internal/repositories/deals"
	"github.com/stormarket/stormarket/internal/repositories/providers"
	"github.com/stormarket/stormarket/internal/repositories/retrievals"
	"github.com/stormarket/stormarket/internal/repositories/stats"
	"github.com/stormarket/stormarket/internal/repositories/wallets"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Deals returns a deals.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Deals(db dbx.DBTX) deals.Repository {
	return deals.NewPostgresRepository(db)
}

// Wallets returns a wallets.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Wallets(db dbx.DBTX) wallets.Repository {
	return wallets.NewPostgresRepository(db)
}

// Providers returns a providers.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Providers(db dbx.DBTX) providers.Repository {
	return providers.NewPostgresRepository(db)
}

// Stats returns a stats.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewPostgresRepository(db)
}

// Retrievals returns a retrievals.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Retrievals(db dbx.DBTX) retrievals.Repository {
	return retrievals.NewPostgresRepository(db)
}

// Backups returns a backups.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Backups(db dbx.DBTX) backups.Repository {
	return backups.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
