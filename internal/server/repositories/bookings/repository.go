package bookings

import (
	"context"

	"github.com/dmitrijs2005/toursite/internal/models"
)

type Repository interface {
	Create(ctx context.Context, b *models.BookingInquiry) error
	List(ctx context.Context) ([]*models.BookingInquiry, error)
}
