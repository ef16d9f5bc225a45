package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/server/config"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/tours"
)

// TourService manages tour packages and their manual order.
type TourService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	pageSize    int
	maxPageSize int
	now         func() time.Time
}

func NewTourService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *TourService {
	return &TourService{
		db:          db,
		repomanager: m,
		log:         log,
		pageSize:    cfg.DefaultPageSize,
		maxPageSize: cfg.MaxPageSize,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of tours in display order, filtered by q.Search
// across all languages.
func (s *TourService) List(ctx context.Context, q models.ListQuery, publishedOnly bool) (models.Page[*models.Tour], error) {
	all, err := s.repomanager.Tours(s.db).ListOrdered(ctx, publishedOnly)
	if err != nil {
		return models.Page[*models.Tour]{}, err
	}
	var matched []*models.Tour
	for _, t := range all {
		if t.Name.Contains(q.Search) || t.Summary.Contains(q.Search) || t.Slug == q.Search {
			matched = append(matched, t)
		}
	}
	return models.Paginate(matched, q.Clamp(s.pageSize, s.maxPageSize)), nil
}

// All returns every tour in display order. Reordering clients need the
// complete order, so this is never paginated.
func (s *TourService) All(ctx context.Context) ([]*models.Tour, error) {
	return s.repomanager.Tours(s.db).ListOrdered(ctx, false)
}

func (s *TourService) Get(ctx context.Context, id string) (*models.Tour, error) {
	return s.repomanager.Tours(s.db).Get(ctx, id)
}

// GetPublished looks a tour up by slug, hiding drafts.
func (s *TourService) GetPublished(ctx context.Context, slug string) (*models.Tour, error) {
	t, err := s.repomanager.Tours(s.db).GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.Published {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

// Create validates and stores a new tour at the end of the list.
func (s *TourService) Create(ctx context.Context, in *models.Tour) (*models.Tour, error) {
	if err := validateTour(in); err != nil {
		return nil, err
	}
	t := *in
	t.ID = uuid.NewString()
	t.Slug = slugFor(in.Slug, in.Name.Primary)
	now := s.now()
	t.CreatedAt, t.UpdatedAt = now, now

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tours(tx)
		if err := ensureSlugFree(ctx, repo, t.Slug, ""); err != nil {
			return err
		}
		return repo.Create(ctx, &t)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "tour created", "id", t.ID, "slug", t.Slug, "sort_order", t.SortOrder)
	return &t, nil
}

// Update replaces the editable fields of an existing tour. Position and
// creation time are kept.
func (s *TourService) Update(ctx context.Context, in *models.Tour) (*models.Tour, error) {
	if err := validateTour(in); err != nil {
		return nil, err
	}
	var out *models.Tour
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tours(tx)
		cur, err := repo.Get(ctx, in.ID)
		if err != nil {
			return err
		}
		t := *in
		t.Slug = slugFor(in.Slug, in.Name.Primary)
		t.SortOrder = cur.SortOrder
		t.CreatedAt = cur.CreatedAt
		t.UpdatedAt = s.now()
		if t.Slug != cur.Slug {
			if err := ensureSlugFree(ctx, repo, t.Slug, t.ID); err != nil {
				return err
			}
		}
		if err := repo.Update(ctx, &t); err != nil {
			return err
		}
		out = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Tours(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "tour deleted", "id", id)
	return nil
}

// Swap exchanges the display positions of two tours in one transaction.
func (s *TourService) Swap(ctx context.Context, idA, idB string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return swapPositions(ctx, s.repomanager.Tours(tx), idA, idB)
	})
	if err != nil {
		s.log.Warn(ctx, "tour swap failed", "id_a", idA, "id_b", idB, "error", err)
		return err
	}
	s.log.Info(ctx, "tours swapped", "id_a", idA, "id_b", idB)
	return nil
}

func validateTour(t *models.Tour) error {
	if err := requireText("name", t.Name); err != nil {
		return err
	}
	if t.DurationDays < 0 {
		return invalid("duration_days must not be negative")
	}
	if err := t.Price.Validate(); err != nil {
		return invalid("price: %v", err)
	}
	for i, d := range t.Itinerary {
		if err := requireText(fmt.Sprintf("itinerary[%d].title", i), d.Title); err != nil {
			return err
		}
	}
	return nil
}

func ensureSlugFree(ctx context.Context, repo tours.Repository, slug, selfID string) error {
	other, err := repo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil
	case err != nil:
		return err
	case other.ID == selfID:
		return nil
	default:
		return fmt.Errorf("%w: %q", common.ErrorSlugTaken, slug)
	}
}
