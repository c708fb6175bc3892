package wallets

import (
	"context"

	"github.com/stormarket/stormarket/internal/models"
)

// Repository is the persistence surface for per-user wallet rows.
type Repository interface {
	// Ensure creates the wallet row for userID if it does not exist yet.
	Ensure(ctx context.Context, userID string) error
	GetByUser(ctx context.Context, userID string) (*models.UserWallet, error)
	// Debit subtracts amount from the balance and adds it to total_spent in a
	// single statement, returning the updated wallet. The balance has no lower
	// bound and may go negative.
	Debit(ctx context.Context, userID string, amount float64) (*models.UserWallet, error)
	// Credit adds amount to the balance and to total_earned.
	Credit(ctx context.Context, userID string, amount float64) (*models.UserWallet, error)
}
