package tours

import (
	"context"

	"github.com/dmitrijs2005/toursite/internal/models"
)

type Repository interface {
	ListOrdered(ctx context.Context, publishedOnly bool) ([]*models.Tour, error)
	Get(ctx context.Context, id string) (*models.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tour, error)
	Create(ctx context.Context, tour *models.Tour) error
	Update(ctx context.Context, tour *models.Tour) error
	Delete(ctx context.Context, id string) error
	SortOrders(ctx context.Context, idA, idB string) (map[string]int, error)
	SetSortOrder(ctx context.Context, id string, order int) error
	Normalize(ctx context.Context) error
}
