// Package stats reads network-wide health snapshots. Snapshots are written by
// an external collector; this side only ever fetches the newest row.
package stats

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

// Latest returns the newest snapshot or common.ErrNotFound when none exists.
func (r *PostgresRepository) Latest(ctx context.Context) (*models.NetworkStats, error) {
	query := `
		SELECT id, total_nodes, active_deals, total_storage_used_gb, network_health_score, avg_response_time_ms, recorded_at
		FROM network_stats
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	var item models.NetworkStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&item.ID, &item.TotalNodes, &item.ActiveDeals, &item.TotalStorageUsedGB,
		&item.NetworkHealthScore, &item.AvgResponseTimeMs, &item.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}
