// Package wallets provides the PostgreSQL-backed wallet ledger. Balance
// arithmetic happens inside the database so concurrent debits cannot lose
// updates; callers never read-modify-write the balance in application code.
package wallets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/dbx"
	"github.com/stormarket/stormarket/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ensure creates the wallet row for userID if it does not exist yet.
func (r *PostgresRepository) Ensure(ctx context.Context, userID string) error {
	query := `INSERT INTO user_wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByUser returns the wallet for userID or common.ErrNotFound.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*models.UserWallet, error) {
	query := `
		SELECT id, user_id, balance, total_earned, total_spent
		FROM user_wallets
		WHERE user_id = $1
	`
	var item models.UserWallet
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&item.ID, &item.UserID, &item.Balance, &item.TotalEarned, &item.TotalSpent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

// Debit subtracts amount from the balance and adds it to total_spent. The
// arithmetic runs in the database; there is no lower bound on the balance.
func (r *PostgresRepository) Debit(ctx context.Context, userID string, amount float64) (*models.UserWallet, error) {
	query := `
		UPDATE user_wallets
		SET balance = balance - $1, total_spent = total_spent + $1
		WHERE user_id = $2
		RETURNING id, user_id, balance, total_earned, total_spent
	`
	return r.applyDelta(ctx, query, userID, amount)
}

// Credit adds amount to the balance and to total_earned.
func (r *PostgresRepository) Credit(ctx context.Context, userID string, amount float64) (*models.UserWallet, error) {
	query := `
		UPDATE user_wallets
		SET balance = balance + $1, total_earned = total_earned + $1
		WHERE user_id = $2
		RETURNING id, user_id, balance, total_earned, total_spent
	`
	return r.applyDelta(ctx, query, userID, amount)
}

func (r *PostgresRepository) applyDelta(ctx context.Context, query, userID string, amount float64) (*models.UserWallet, error) {
	var item models.UserWallet
	err := r.db.QueryRowContext(ctx, query, amount, userID).Scan(
		&item.ID, &item.UserID, &item.Balance, &item.TotalEarned, &item.TotalSpent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}
