// Package deals provides the PostgreSQL-backed repository for storage deal
// persistence and the pass-through call to the server-side status refresh
// procedure.
package deals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/dbx"
	"github.com/stormarket/stormarket/internal/models"
)

// PostgresRepository implements deal storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new deal in "pending" state and fills in the generated
// identifier and creation timestamp.
func (r *PostgresRepository) Insert(ctx context.Context, deal *models.StorageDeal) (*models.StorageDeal, error) {
	query := `
		INSERT INTO storage_deals (user_id, file_cid, file_name, file_size, file_type, total_cost, expires_at, storage_provider_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		deal.UserID, deal.FileCID, deal.FileName, deal.FileSize, nullString(deal.FileType),
		deal.TotalCost, deal.ExpiresAt, nullString(deal.ProviderID),
	).Scan(&deal.ID, &deal.Status, &deal.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return deal, nil
}

// SelectByUser returns all deals for userID ordered newest-first.
func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]*models.StorageDeal, error) {
	query := `
		SELECT id, user_id, file_cid, file_name, file_size, file_type, total_cost, status, created_at, expires_at, storage_provider_id
		FROM storage_deals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select deals: %w", err)
	}
	defer rows.Close()

	var result []*models.StorageDeal
	for rows.Next() {
		item, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one deal or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.StorageDeal, error) {
	query := `
		SELECT id, user_id, file_cid, file_name, file_size, file_type, total_cost, status, created_at, expires_at, storage_provider_id
		FROM storage_deals
		WHERE id = $1
	`
	var (
		item     models.StorageDeal
		fileType sql.NullString
		provider sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.UserID, &item.FileCID, &item.FileName, &item.FileSize, &fileType,
		&item.TotalCost, &item.Status, &item.CreatedAt, &item.ExpiresAt, &provider,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.FileType = fileType.String
	item.ProviderID = provider.String
	return &item, nil
}

// MarkActive flips a deal to "active". Missing rows return common.ErrNotFound.
func (r *PostgresRepository) MarkActive(ctx context.Context, id string) error {
	query := `UPDATE storage_deals SET status = 'active' WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes a deal regardless of its state.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM storage_deals WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RefreshStatuses invokes the server-side bulk transition procedure and
// returns its counts. The transition logic itself lives in the database.
func (r *PostgresRepository) RefreshStatuses(ctx context.Context) (int64, int64, error) {
	query := `SELECT deals_activated, deals_expired FROM refresh_deal_statuses()`
	var activated, expired int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&activated, &expired); err != nil {
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	return activated, expired, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(rows rowScanner) (*models.StorageDeal, error) {
	var (
		item     models.StorageDeal
		fileType sql.NullString
		provider sql.NullString
	)
	if err := rows.Scan(
		&item.ID, &item.UserID, &item.FileCID, &item.FileName, &item.FileSize, &fileType,
		&item.TotalCost, &item.Status, &item.CreatedAt, &item.ExpiresAt, &provider,
	); err != nil {
		return nil, err
	}
	item.FileType = fileType.String
	item.ProviderID = provider.String
	return &item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
