package providers

import (
	"context"

	"github.com/stormarket/stormarket/internal/models"
)

// Repository is the read-only persistence surface for the provider directory.
type Repository interface {
	SelectAll(ctx context.Context) ([]*models.StorageProvider, error)
	GetByID(ctx context.Context, id string) (*models.StorageProvider, error)
}
