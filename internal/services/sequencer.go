package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/stormarket/stormarket/internal/config"
	"github.com/stormarket/stormarket/internal/logging"
	"github.com/stormarket/stormarket/internal/metrics"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/repositories/repomanager"
	"github.com/stormarket/stormarket/internal/settlement"
)

// Sequencer hands a freshly created deal to the activation pipeline.
type Sequencer interface {
	Activate(ctx context.Context, deal *models.StorageDeal)
}

// ActivationSequencer drives a pending deal to "active": it asks the
// settlement backend to seal the deal, then flips the stored status.
//
// A settlement failure does NOT block activation. The deal is marked active
// anyway; the failure is logged and counted. The stored status can therefore
// claim an activation the network never confirmed.
type ActivationSequencer struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	backend settlement.Backend
	config  *config.Config
	log     logging.Logger
}

func NewActivationSequencer(db *sql.DB, rm repomanager.RepositoryManager, backend settlement.Backend, cfg *config.Config, log logging.Logger) *ActivationSequencer {
	return &ActivationSequencer{db: db, rm: rm, backend: backend, config: cfg, log: log}
}

// Activate runs the activation pipeline on a detached context so it survives
// the originating request.
func (s *ActivationSequencer) Activate(ctx context.Context, deal *models.StorageDeal) {
	go func() {
		if err := s.ActivateSync(context.WithoutCancel(ctx), deal); err != nil {
			s.log.Error(ctx, "deal activation failed", "deal_id", deal.ID, "error", err)
		}
	}()
}

// ActivateSync is the synchronous pipeline body, separated out for tests.
func (s *ActivationSequencer) ActivateSync(ctx context.Context, deal *models.StorageDeal) error {
	req := settlement.DealRequest{
		CID:               deal.FileCID,
		Size:              deal.FileSize,
		Duration:          time.Until(deal.ExpiresAt),
		ProviderID:        deal.ProviderID,
		ReplicationFactor: s.config.ReplicationFactor,
		Cost:              deal.TotalCost,
	}

	result, err := s.backend.CreateDeal(ctx, req)
	if err != nil {
		metrics.SettlementFailures.Inc()
		s.log.Warn(ctx, "settlement failed, activating deal anyway",
			"deal_id", deal.ID, "error", err)
	} else {
		s.log.Info(ctx, "deal sealed on network",
			"deal_id", deal.ID, "network_deal_id", result.DealID, "verified", result.Verified)
	}

	return s.rm.Deals(s.db).MarkActive(ctx, deal.ID)
}
