package deals

import (
	"context"

	"github.com/stormarket/stormarket/internal/models"
)

// Repository is the persistence surface for storage deals.
type Repository interface {
	Insert(ctx context.Context, deal *models.StorageDeal) (*models.StorageDeal, error)
	SelectByUser(ctx context.Context, userID string) ([]*models.StorageDeal, error)
	GetByID(ctx context.Context, id string) (*models.StorageDeal, error)
	MarkActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	RefreshStatuses(ctx context.Context) (activated, expired int64, err error)
}
