// Package retrievals records paid fetches of stored content.
package retrievals

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stormarket/stormarket/internal/dbx"
	"github.com/stormarket/stormarket/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a completed retrieval record and fills in the generated
// identifier and timestamps.
func (r *PostgresRepository) Insert(ctx context.Context, item *models.FileRetrieval) (*models.FileRetrieval, error) {
	query := `
		INSERT INTO file_retrievals (user_id, deal_id, retrieval_cost, status, completed_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, started_at, completed_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.DealID, item.RetrievalCost, item.Status,
	).Scan(&item.ID, &item.StartedAt, &item.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// SelectByUser returns the user's retrieval history, newest first.
func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]*models.FileRetrieval, error) {
	query := `
		SELECT id, user_id, deal_id, retrieval_cost, status, started_at, completed_at
		FROM file_retrievals
		WHERE user_id = $1
		ORDER BY started_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select retrievals: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRetrieval
	for rows.Next() {
		var (
			item      models.FileRetrieval
			completed sql.NullTime
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.DealID, &item.RetrievalCost,
			&item.Status, &item.StartedAt, &completed,
		); err != nil {
			return nil, err
		}
		item.CompletedAt = completed.Time
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
