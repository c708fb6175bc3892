package services

import (
	"context"
	"database/sql"

	"github.com/stormarket/stormarket/internal/auth"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/repositories/repomanager"
)

// WalletService exposes the user's balance view. All balance changes happen
// inside deal and retrieval transactions; the service itself only reads.
type WalletService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewWalletService(db *sql.DB, rm repomanager.RepositoryManager) *WalletService {
	return &WalletService{db: db, rm: rm}
}

// Get returns the user's wallet, creating the row on first access.
func (s *WalletService) Get(ctx context.Context) (*models.UserWallet, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	wallets := s.rm.Wallets(s.db)
	if err := wallets.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	return wallets.GetByUser(ctx, userID)
}
