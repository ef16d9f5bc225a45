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
	"github.com/dmitrijs2005/toursite/internal/server/repositories/posts"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/repomanager"
)

// PostService manages blog posts.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	pageSize    int
	maxPageSize int
	now         func() time.Time
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		log:         log,
		pageSize:    cfg.DefaultPageSize,
		maxPageSize: cfg.MaxPageSize,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostService) List(ctx context.Context, q models.ListQuery, publishedOnly bool) (models.Page[*models.Post], error) {
	all, err := s.repomanager.Posts(s.db).List(ctx, publishedOnly)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	var matched []*models.Post
	for _, p := range all {
		if p.Title.Contains(q.Search) || p.Excerpt.Contains(q.Search) {
			matched = append(matched, p)
		}
	}
	return models.Paginate(matched, q.Clamp(s.pageSize, s.maxPageSize)), nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.repomanager.Posts(s.db).Get(ctx, id)
}

func (s *PostService) GetPublished(ctx context.Context, slug string) (*models.Post, error) {
	p, err := s.repomanager.Posts(s.db).GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (s *PostService) Create(ctx context.Context, in *models.Post) (*models.Post, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	p := *in
	p.ID = uuid.NewString()
	p.Slug = slugFor(in.Slug, in.Title.Primary)
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	p.PublishedAt = publishedAt(p.Published, nil, now)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		if err := ensurePostSlugFree(ctx, repo, p.Slug, ""); err != nil {
			return err
		}
		return repo.Create(ctx, &p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "post created", "id", p.ID, "slug", p.Slug)
	return &p, nil
}

// Update replaces a post. The publication time is set the first time a post
// is published and cleared when it goes back to draft.
func (s *PostService) Update(ctx context.Context, in *models.Post) (*models.Post, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	var out *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		cur, err := repo.Get(ctx, in.ID)
		if err != nil {
			return err
		}
		p := *in
		p.Slug = slugFor(in.Slug, in.Title.Primary)
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = s.now()
		p.PublishedAt = publishedAt(p.Published, cur.PublishedAt, p.UpdatedAt)
		if p.Slug != cur.Slug {
			if err := ensurePostSlugFree(ctx, repo, p.Slug, p.ID); err != nil {
				return err
			}
		}
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

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Posts(s.db).Delete(ctx, id)
}

func publishedAt(published bool, prev *time.Time, now time.Time) *time.Time {
	if !published {
		return nil
	}
	if prev != nil {
		return prev
	}
	return &now
}

func ensurePostSlugFree(ctx context.Context, repo posts.Repository, slug, selfID string) error {
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
