package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/repomanager"
)

// PromotionService manages time-limited offers and their manual order.
type PromotionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewPromotionService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *PromotionService {
	return &PromotionService{
		db:          db,
		repomanager: m,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Running returns the promotions visible on the public site right now, in
// display order.
func (s *PromotionService) Running(ctx context.Context) ([]*models.Promotion, error) {
	all, err := s.repomanager.Promotions(s.db).ListOrdered(ctx, true)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*models.Promotion, 0, len(all))
	for _, p := range all {
		if p.Running(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

// All returns every promotion in display order.
func (s *PromotionService) All(ctx context.Context) ([]*models.Promotion, error) {
	return s.repomanager.Promotions(s.db).ListOrdered(ctx, false)
}

func (s *PromotionService) Get(ctx context.Context, id string) (*models.Promotion, error) {
	return s.repomanager.Promotions(s.db).Get(ctx, id)
}

func (s *PromotionService) Create(ctx context.Context, in *models.Promotion) (*models.Promotion, error) {
	if err := validatePromotion(in); err != nil {
		return nil, err
	}
	p := *in
	p.ID = uuid.NewString()
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	p.StartsAt, p.EndsAt = p.StartsAt.UTC(), p.EndsAt.UTC()

	if err := s.repomanager.Promotions(s.db).Create(ctx, &p); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "promotion created", "id", p.ID, "ends_at", p.EndsAt, "sort_order", p.SortOrder)
	return &p, nil
}

func (s *PromotionService) Update(ctx context.Context, in *models.Promotion) (*models.Promotion, error) {
	if err := validatePromotion(in); err != nil {
		return nil, err
	}
	var out *models.Promotion
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Promotions(tx)
		cur, err := repo.Get(ctx, in.ID)
		if err != nil {
			return err
		}
		p := *in
		p.StartsAt, p.EndsAt = p.StartsAt.UTC(), p.EndsAt.UTC()
		p.SortOrder = cur.SortOrder
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = s.now()
		if err := repo.Update(ctx, &p); err != nil {
			return err
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PromotionService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Promotions(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "promotion deleted", "id", id)
	return nil
}

// Swap exchanges the display positions of two promotions in one transaction.
func (s *PromotionService) Swap(ctx context.Context, idA, idB string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return swapPositions(ctx, s.repomanager.Promotions(tx), idA, idB)
	})
	if err != nil {
		s.log.Warn(ctx, "promotion swap failed", "id_a", idA, "id_b", idB, "error", err)
		return err
	}
	s.log.Info(ctx, "promotions swapped", "id_a", idA, "id_b", idB)
	return nil
}

// SweepExpired deactivates promotions whose end time has passed.
func (s *PromotionService) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Promotions(s.db).ExpireEnded(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info(ctx, "expired promotions deactivated", "count", n)
	}
	return n, nil
}

func validatePromotion(p *models.Promotion) error {
	if err := requireText("title", p.Title); err != nil {
		return err
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return invalid("discount_percent must be between 0 and 100")
	}
	if p.EndsAt.IsZero() {
		return invalid("ends_at is required")
	}
	if !p.StartsAt.IsZero() && !p.EndsAt.After(p.StartsAt) {
		return invalid("ends_at must be after starts_at")
	}
	return nil
}
