package promotions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/toursite/internal/models"
)

type Repository interface {
	ListOrdered(ctx context.Context, activeOnly bool) ([]*models.Promotion, error)
	Get(ctx context.Context, id string) (*models.Promotion, error)
	Create(ctx context.Context, p *models.Promotion) error
	Update(ctx context.Context, p *models.Promotion) error
	Delete(ctx context.Context, id string) error
	SortOrders(ctx context.Context, idA, idB string) (map[string]int, error)
	SetSortOrder(ctx context.Context, id string, order int) error
	Normalize(ctx context.Context) error
	ExpireEnded(ctx context.Context, now time.Time) (int64, error)
}
