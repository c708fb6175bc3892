package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/dbx"
	"github.com/stormarket/stormarket/internal/logging"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/repositories/backups"
	"github.com/stormarket/stormarket/internal/repositories/deals"
	"github.com/stormarket/stormarket/internal/repositories/providers"
	"github.com/stormarket/stormarket/internal/repositories/retrievals"
	"github.com/stormarket/stormarket/internal/repositories/stats"
	"github.com/stormarket/stormarket/internal/repositories/wallets"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeDeals struct {
	byID       map[string]*models.StorageDeal
	inserted   []*models.StorageDeal
	insertErr  error
	markedIDs  []string
	deletedIDs []string
	activated  int64
	expired    int64
	refreshErr error
}

func newFakeDeals() *fakeDeals {
	return &fakeDeals{byID: make(map[string]*models.StorageDeal)}
}

func (f *fakeDeals) Insert(_ context.Context, deal *models.StorageDeal) (*models.StorageDeal, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	deal.ID = fmt.Sprintf("d%d", len(f.inserted)+1)
	deal.Status = models.DealStatusPending
	deal.CreatedAt = time.Now()
	f.inserted = append(f.inserted, deal)
	f.byID[deal.ID] = deal
	return deal, nil
}

func (f *fakeDeals) SelectByUser(_ context.Context, userID string) ([]*models.StorageDeal, error) {
	var result []*models.StorageDeal
	for i := len(f.inserted) - 1; i >= 0; i-- {
		if f.inserted[i].UserID == userID {
			result = append(result, f.inserted[i])
		}
	}
	return result, nil
}

func (f *fakeDeals) GetByID(_ context.Context, id string) (*models.StorageDeal, error) {
	deal, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return deal, nil
}

func (f *fakeDeals) MarkActive(_ context.Context, id string) error {
	f.markedIDs = append(f.markedIDs, id)
	if deal, ok := f.byID[id]; ok {
		deal.Status = models.DealStatusActive
	}
	return nil
}

func (f *fakeDeals) Delete(_ context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.byID, id)
	return nil
}

func (f *fakeDeals) RefreshStatuses(_ context.Context) (int64, int64, error) {
	return f.activated, f.expired, f.refreshErr
}

type debit struct {
	userID string
	amount float64
}

type fakeWallets struct {
	wallet   models.UserWallet
	ensured  []string
	debits   []debit
	debitErr error
}

func (f *fakeWallets) Ensure(_ context.Context, userID string) error {
	f.ensured = append(f.ensured, userID)
	return nil
}

func (f *fakeWallets) GetByUser(_ context.Context, userID string) (*models.UserWallet, error) {
	w := f.wallet
	w.UserID = userID
	return &w, nil
}

func (f *fakeWallets) Debit(_ context.Context, userID string, amount float64) (*models.UserWallet, error) {
	if f.debitErr != nil {
		return nil, f.debitErr
	}
	f.debits = append(f.debits, debit{userID: userID, amount: amount})
	f.wallet.Balance -= amount
	f.wallet.TotalSpent += amount
	w := f.wallet
	w.UserID = userID
	return &w, nil
}

func (f *fakeWallets) Credit(_ context.Context, userID string, amount float64) (*models.UserWallet, error) {
	f.wallet.Balance += amount
	f.wallet.TotalEarned += amount
	w := f.wallet
	w.UserID = userID
	return &w, nil
}

type fakeProviders struct {
	byID map[string]*models.StorageProvider
	all  []*models.StorageProvider
}

func (f *fakeProviders) SelectAll(_ context.Context) ([]*models.StorageProvider, error) {
	return f.all, nil
}

func (f *fakeProviders) GetByID(_ context.Context, id string) (*models.StorageProvider, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

type fakeStats struct {
	snapshot *models.NetworkStats
}

func (f *fakeStats) Latest(_ context.Context) (*models.NetworkStats, error) {
	if f.snapshot == nil {
		return nil, common.ErrNotFound
	}
	return f.snapshot, nil
}

type fakeRetrievals struct {
	inserted  []*models.FileRetrieval
	insertErr error
}

func (f *fakeRetrievals) Insert(_ context.Context, item *models.FileRetrieval) (*models.FileRetrieval, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	item.ID = fmt.Sprintf("r%d", len(f.inserted)+1)
	item.StartedAt = time.Now()
	item.CompletedAt = time.Now()
	f.inserted = append(f.inserted, item)
	return item, nil
}

func (f *fakeRetrievals) SelectByUser(_ context.Context, userID string) ([]*models.FileRetrieval, error) {
	var result []*models.FileRetrieval
	for i := len(f.inserted) - 1; i >= 0; i-- {
		if f.inserted[i].UserID == userID {
			result = append(result, f.inserted[i])
		}
	}
	return result, nil
}

type fakeBackups struct {
	stored *models.BackupPolicy
}

func (f *fakeBackups) Get(_ context.Context, userID string) (*models.BackupPolicy, error) {
	if f.stored == nil || f.stored.UserID != userID {
		return nil, common.ErrNotFound
	}
	return f.stored, nil
}

func (f *fakeBackups) Upsert(_ context.Context, policy *models.BackupPolicy) (*models.BackupPolicy, error) {
	policy.UpdatedAt = time.Now()
	f.stored = policy
	return policy, nil
}

// fakeRM hands out the same fake repositories regardless of the DBTX, so
// transactional code paths exercise the fakes directly.
type fakeRM struct {
	deals      *fakeDeals
	wallets    *fakeWallets
	providers  *fakeProviders
	stats      *fakeStats
	retrievals *fakeRetrievals
	backups    *fakeBackups
}

func newFakeRM() *fakeRM {
	return &fakeRM{
		deals:      newFakeDeals(),
		wallets:    &fakeWallets{},
		providers:  &fakeProviders{byID: make(map[string]*models.StorageProvider)},
		stats:      &fakeStats{},
		retrievals: &fakeRetrievals{},
		backups:    &fakeBackups{},
	}
}

func (f *fakeRM) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRM) Deals(dbx.DBTX) deals.Repository              { return f.deals }
func (f *fakeRM) Wallets(dbx.DBTX) wallets.Repository          { return f.wallets }
func (f *fakeRM) Providers(dbx.DBTX) providers.Repository      { return f.providers }
func (f *fakeRM) Stats(dbx.DBTX) stats.Repository              { return f.stats }
func (f *fakeRM) Retrievals(dbx.DBTX) retrievals.Repository    { return f.retrievals }
func (f *fakeRM) Backups(dbx.DBTX) backups.Repository          { return f.backups }

type fakeSequencer struct {
	activated []*models.StorageDeal
}

func (f *fakeSequencer) Activate(_ context.Context, deal *models.StorageDeal) {
	f.activated = append(f.activated, deal)
}

type fakeURLs struct {
	url string
	err error
}

func (f *fakeURLs) PresignedGetURL(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url + "?key=" + key, nil
}

func (f *fakeURLs) PresignedPutURL(_ context.Context) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "content/new-key", f.url + "?put=1", nil
}
