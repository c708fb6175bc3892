package repomanager

import (
	"context"
	"database/sql"

	"github.com/stormarket/stormarket/internal/dbx"
	"github.com/stormarket/stormarket/internal/repositories/backups"
	"github.com/stormarket/stormarket/internal/repositories/deals"
	"github.com/stormarket/stormarket/internal/repositories/providers"
	"github.com/stormarket/stormarket/internal/repositories/retrievals"
	"github.com/stormarket/stormarket/internal/repositories/stats"
	"github.com/stormarket/stormarket/internal/repositories/wallets"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Deals(db dbx.DBTX) deals.Repository
	Wallets(db dbx.DBTX) wallets.Repository
	Providers(db dbx.DBTX) providers.Repository
	Stats(db dbx.DBTX) stats.Repository
	Retrievals(db dbx.DBTX) retrievals.Repository
	Backups(db dbx.DBTX) backups.Repository
}
