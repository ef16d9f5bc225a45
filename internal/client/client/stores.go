package client

import (
	"context"

	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/reorder"
)

type tourAPI interface {
	Tours(ctx context.Context) ([]*models.Tour, error)
	SwapTours(ctx context.Context, idA, idB string) error
}

type promotionAPI interface {
	Promotions(ctx context.Context) ([]*models.Promotion, error)
	SwapPromotions(ctx context.Context, idA, idB string) error
}

// NewTourStore exposes the admin tour endpoints as a reorder.Store.
func NewTourStore(api tourAPI) reorder.Store[*models.Tour] {
	return reorder.StoreFuncs[*models.Tour]{Load: api.Tours, Swap: api.SwapTours}
}

// NewPromotionStore exposes the admin promotion endpoints as a reorder.Store.
func NewPromotionStore(api promotionAPI) reorder.Store[*models.Promotion] {
	return reorder.StoreFuncs[*models.Promotion]{Load: api.Promotions, Swap: api.SwapPromotions}
}
