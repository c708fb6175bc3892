package stats

import (
	"context"

	"github.com/stormarket/stormarket/internal/models"
)

// Repository exposes the most recent network statistics snapshot.
type Repository interface {
	Latest(ctx context.Context) (*models.NetworkStats, error)
}
