package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stormarket/stormarket/internal/auth"
	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/repositories/repomanager"
)

var validFrequencies = map[string]bool{
	"hourly": true, "daily": true, "weekly": true, "monthly": true,
}

// BackupService stores per-user backup policies.
type BackupService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewBackupService(db *sql.DB, rm repomanager.RepositoryManager) *BackupService {
	return &BackupService{db: db, rm: rm}
}

// Get returns the user's policy, or the defaults when none was ever saved.
func (s *BackupService) Get(ctx context.Context) (*models.BackupPolicy, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	policy, err := s.rm.Backups(s.db).Get(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return &models.BackupPolicy{
			UserID:            userID,
			AutoBackup:        true,
			Frequency:         "daily",
			ReplicationFactor: 3,
			RetentionPeriod:   "1year",
		}, nil
	}
	return policy, err
}

// Save validates and upserts the user's policy.
func (s *BackupService) Save(ctx context.Context, policy *models.BackupPolicy) (*models.BackupPolicy, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !validFrequencies[policy.Frequency] {
		return nil, fmt.Errorf("%w: unknown backup frequency %q", common.ErrValidation, policy.Frequency)
	}
	if policy.ReplicationFactor < 1 {
		return nil, fmt.Errorf("%w: replication factor must be at least 1", common.ErrValidation)
	}
	policy.UserID = userID
	return s.rm.Backups(s.db).Upsert(ctx, policy)
}
