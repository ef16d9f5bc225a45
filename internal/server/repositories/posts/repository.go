package posts

import (
	"context"

	"github.com/dmitrijs2005/toursite/internal/models"
)

type Repository interface {
	List(ctx context.Context, publishedOnly bool) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) error
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id string) error
}
