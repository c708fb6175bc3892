package services

import (
	"context"
	"database/sql"

	"github.com/stormarket/stormarket/internal/logging"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/repositories/repomanager"
)

// NetworkService serves the read-only network surfaces: the provider
// directory, the latest stats snapshot, and the server-side status refresh.
type NetworkService struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	log logging.Logger
}

func NewNetworkService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *NetworkService {
	return &NetworkService{db: db, rm: rm, log: log}
}

// Providers lists all providers, best reputation first.
func (s *NetworkService) Providers(ctx context.Context) ([]*models.StorageProvider, error) {
	return s.rm.Providers(s.db).SelectAll(ctx)
}

// Stats returns the newest network snapshot.
func (s *NetworkService) Stats(ctx context.Context) (*models.NetworkStats, error) {
	return s.rm.Stats(s.db).Latest(ctx)
}

// RefreshDealStatuses invokes the server-side bulk transition and returns
// (activated, expired) counts. The transition logic lives in the database;
// this is a passthrough.
func (s *NetworkService) RefreshDealStatuses(ctx context.Context) (int64, int64, error) {
	activated, expired, err := s.rm.Deals(s.db).RefreshStatuses(ctx)
	if err != nil {
		return 0, 0, err
	}
	s.log.Info(ctx, "deal statuses refreshed", "activated", activated, "expired", expired)
	return activated, expired, nil
}
