package backups

import (
	"context"

	"github.com/stormarket/stormarket/internal/models"
)

// Repository is the persistence surface for per-user backup policies.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.BackupPolicy, error)
	Upsert(ctx context.Context, policy *models.BackupPolicy) (*models.BackupPolicy, error)
}
