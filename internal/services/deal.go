// Package services implements the marketplace operations on top of the
// repository layer: deal lifecycle, wallet reads, provider and stats
// passthrough, share links, and backup policies.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/stormarket/stormarket/internal/auth"
	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/config"
	"github.com/stormarket/stormarket/internal/dbx"
	"github.com/stormarket/stormarket/internal/logging"
	"github.com/stormarket/stormarket/internal/metrics"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/repositories/repomanager"
)

const bytesPerGB = 1 << 30

// ContentURLProvider presigns upload and download URLs for stored content.
type ContentURLProvider interface {
	PresignedGetURL(ctx context.Context, key string) (string, error)
	PresignedPutURL(ctx context.Context) (key string, url string, err error)
}

// CreateDealRequest carries the file metadata a deal is created over.
type CreateDealRequest struct {
	FileName   string
	FileSize   int64
	FileType   string
	ProviderID string
}

// RetrievalResult is what a successful retrieve returns.
type RetrievalResult struct {
	Retrieval   *models.FileRetrieval
	DownloadURL string
}

// DealService owns the storage deal lifecycle.
type DealService struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	sequencer Sequencer
	urls      ContentURLProvider
	limiter   *rate.Limiter
	config    *config.Config
	log       logging.Logger
}

func NewDealService(db *sql.DB, rm repomanager.RepositoryManager, sequencer Sequencer,
	urls ContentURLProvider, cfg *config.Config, log logging.Logger) *DealService {
	return &DealService{
		db:        db,
		rm:        rm,
		sequencer: sequencer,
		urls:      urls,
		limiter:   rate.NewLimiter(rate.Every(cfg.BatchPacing), 1),
		config:    cfg,
		log:       log,
	}
}

// List returns the user's deals, newest first.
func (s *DealService) List(ctx context.Context) ([]*models.StorageDeal, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.rm.Deals(s.db).SelectByUser(ctx, userID)
}

// Create stores one file as a pending deal, debits its cost, and hands the
// deal to the activation sequencer. The insert and the debit share one
// transaction: a failed debit leaves no deal behind.
func (s *DealService) Create(ctx context.Context, req CreateDealRequest) (*models.StorageDeal, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.FileName == "" || req.FileSize <= 0 {
		return nil, fmt.Errorf("%w: file name and a positive size are required", common.ErrValidation)
	}

	cost, err := s.resolveCost(ctx, req)
	if err != nil {
		return nil, err
	}

	deal := &models.StorageDeal{
		UserID:     userID,
		FileCID:    common.MakeMockCID(),
		FileName:   req.FileName,
		FileSize:   req.FileSize,
		FileType:   req.FileType,
		TotalCost:  cost,
		ExpiresAt:  time.Now().Add(s.config.DealDuration),
		ProviderID: req.ProviderID,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if deal, err = s.rm.Deals(tx).Insert(ctx, deal); err != nil {
			return err
		}
		wallets := s.rm.Wallets(tx)
		if err := wallets.Ensure(ctx, userID); err != nil {
			return err
		}
		_, err := wallets.Debit(ctx, userID, cost)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.DealsCreated.Inc()
	metrics.WalletDebits.Inc()
	s.log.Info(ctx, "deal created", "deal_id", deal.ID, "file", deal.FileName, "cost", cost)

	s.sequencer.Activate(ctx, deal)
	return deal, nil
}

// CreateBatch creates one deal per file, sequentially and in input order,
// pacing creations with the configured limiter. It stops at the first
// failure and returns the deals created so far along with the error.
func (s *DealService) CreateBatch(ctx context.Context, reqs []CreateDealRequest) ([]*models.StorageDeal, error) {
	created := make([]*models.StorageDeal, 0, len(reqs))
	for _, req := range reqs {
		if err := s.limiter.Wait(ctx); err != nil {
			return created, err
		}
		deal, err := s.Create(ctx, req)
		if err != nil {
			return created, err
		}
		created = append(created, deal)
	}
	return created, nil
}

// Delete removes a deal unconditionally. No state check, no refund, no
// settlement cancellation; active deals go too.
func (s *DealService) Delete(ctx context.Context, id string) error {
	deal, err := s.ownedDeal(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rm.Deals(s.db).Delete(ctx, deal.ID); err != nil {
		return err
	}
	s.log.Info(ctx, "deal deleted", "deal_id", deal.ID)
	return nil
}

// Retrieve charges the retrieval fee, records the retrieval, and returns a
// presigned download URL. The deal's derived status gates access: pending,
// failed, and expired deals are refused.
func (s *DealService) Retrieve(ctx context.Context, id string) (*RetrievalResult, error) {
	deal, err := s.ownedDeal(ctx, id)
	if err != nil {
		return nil, err
	}

	switch deal.DerivedStatus(time.Now()) {
	case models.DealStatusExpired:
		return nil, common.ErrDealExpired
	case models.DealStatusFailed:
		return nil, common.ErrDealFailed
	case models.DealStatusPending:
		return nil, common.ErrDealPending
	}

	retrieval := &models.FileRetrieval{
		UserID:        deal.UserID,
		DealID:        deal.ID,
		RetrievalCost: s.config.RetrievalFee,
		Status:        "completed",
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if retrieval, err = s.rm.Retrievals(tx).Insert(ctx, retrieval); err != nil {
			return err
		}
		_, err := s.rm.Wallets(tx).Debit(ctx, deal.UserID, s.config.RetrievalFee)
		return err
	})
	if err != nil {
		return nil, err
	}

	url, err := s.urls.PresignedGetURL(ctx, deal.FileCID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteReadFailure, err)
	}

	metrics.RetrievalsServed.Inc()
	metrics.WalletDebits.Inc()
	s.log.Info(ctx, "file retrieved", "deal_id", deal.ID, "fee", s.config.RetrievalFee)

	return &RetrievalResult{Retrieval: retrieval, DownloadURL: url}, nil
}

// PrepareUpload hands out a fresh content key and a presigned upload URL so
// the client can push bytes to the store before sealing a deal over them.
func (s *DealService) PrepareUpload(ctx context.Context) (string, string, error) {
	if _, err := auth.UserIDFromContext(ctx); err != nil {
		return "", "", err
	}
	key, url, err := s.urls.PresignedPutURL(ctx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", common.ErrRemoteWriteFailure, err)
	}
	return key, url, nil
}

// Retrievals returns the user's retrieval history, newest first.
func (s *DealService) Retrievals(ctx context.Context) ([]*models.FileRetrieval, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.rm.Retrievals(s.db).SelectByUser(ctx, userID)
}

// resolveCost prices the deal: provider price when a known provider is
// selected, the configured default otherwise.
func (s *DealService) resolveCost(ctx context.Context, req CreateDealRequest) (float64, error) {
	price := s.config.DefaultPricePerGB
	if req.ProviderID != "" {
		provider, err := s.rm.Providers(s.db).GetByID(ctx, req.ProviderID)
		switch {
		case err == nil:
			price = provider.PricePerGB
		case errors.Is(err, common.ErrNotFound):
			// unknown provider falls back to the default price
		default:
			return 0, err
		}
	}
	sizeGB := float64(req.FileSize) / bytesPerGB
	return sizeGB * price, nil
}

func (s *DealService) ownedDeal(ctx context.Context, id string) (*models.StorageDeal, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	deal, err := s.rm.Deals(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deal.UserID != userID {
		return nil, common.ErrNotFound
	}
	return deal, nil
}
