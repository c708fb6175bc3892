// Package providers provides the PostgreSQL-backed read-only provider
// directory. No mutation surface exists here; capacity figures are
// informational and never decremented by deal creation.
package providers

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

// SelectAll returns all providers ordered by descending reputation.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.StorageProvider, error) {
	query := `
		SELECT id, name, location, reputation_score, total_storage_gb, available_storage_gb, price_per_gb, uptime_percentage
		FROM storage_providers
		ORDER BY reputation_score DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select providers: %w", err)
	}
	defer rows.Close()

	var result []*models.StorageProvider
	for rows.Next() {
		var item models.StorageProvider
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Location, &item.ReputationScore,
			&item.TotalStorageGB, &item.AvailableStorageGB, &item.PricePerGB, &item.UptimePercentage,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one provider or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.StorageProvider, error) {
	query := `
		SELECT id, name, location, reputation_score, total_storage_gb, available_storage_gb, price_per_gb, uptime_percentage
		FROM storage_providers
		WHERE id = $1
	`
	var item models.StorageProvider
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Location, &item.ReputationScore,
		&item.TotalStorageGB, &item.AvailableStorageGB, &item.PricePerGB, &item.UptimePercentage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}
