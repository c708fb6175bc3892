package retrievals

import (
	"context"

	"github.com/stormarket/stormarket/internal/models"
)

// Repository is the persistence surface for retrieval records.
type Repository interface {
	Insert(ctx context.Context, item *models.FileRetrieval) (*models.FileRetrieval, error)
	SelectByUser(ctx context.Context, userID string) ([]*models.FileRetrieval, error)
}
