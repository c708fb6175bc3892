// Package backups stores per-user backup policy records.
package backups

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

// Get returns the policy for userID or common.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.BackupPolicy, error) {
	query := `
		SELECT user_id, auto_backup, frequency, replication_factor, retention_period, updated_at
		FROM backup_policies
		WHERE user_id = $1
	`
	var item models.BackupPolicy
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&item.UserID, &item.AutoBackup, &item.Frequency,
		&item.ReplicationFactor, &item.RetentionPeriod, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

// Upsert creates or replaces the user's policy and returns the stored row.
func (r *PostgresRepository) Upsert(ctx context.Context, policy *models.BackupPolicy) (*models.BackupPolicy, error) {
	query := `
		INSERT INTO backup_policies (user_id, auto_backup, frequency, replication_factor, retention_period, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			auto_backup = EXCLUDED.auto_backup,
			frequency = EXCLUDED.frequency,
			replication_factor = EXCLUDED.replication_factor,
			retention_period = EXCLUDED.retention_period,
			updated_at = NOW()
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		policy.UserID, policy.AutoBackup, policy.Frequency,
		policy.ReplicationFactor, policy.RetentionPeriod,
	).Scan(&policy.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return policy, nil
}
