// Package posts provides the SQL repository for blog posts.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/models"
)

const selectColumns = `SELECT id, slug, title, excerpt, body, cover_url, published, published_at,
		created_at, updated_at FROM posts`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	var (
		p           models.Post
		publishedAt sql.NullTime
	)
	if err := s.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.CoverURL, &p.Published, &publishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	return &p, nil
}

// List returns posts newest first.
func (r *SQLRepository) List(ctx context.Context, publishedOnly bool) ([]*models.Post, error) {
	query := selectColumns
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY COALESCE(published_at, created_at) DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (r *SQLRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, selectColumns+` WHERE slug = $1`, slug)
}

func (r *SQLRepository) getOne(ctx context.Context, query, arg string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select post: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) Create(ctx context.Context, p *models.Post) error {
	query := `INSERT INTO posts (id, slug, title, excerpt, body, cover_url, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Slug, p.Title, p.Excerpt, p.Body, p.CoverURL, p.Published, nullTime(p), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, p *models.Post) error {
	query := `UPDATE posts SET slug = $1, title = $2, excerpt = $3, body = $4, cover_url = $5,
		published = $6, published_at = $7, updated_at = $8
		WHERE id = $9`

	res, err := r.db.ExecContext(ctx, query,
		p.Slug, p.Title, p.Excerpt, p.Body, p.CoverURL, p.Published, nullTime(p), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func nullTime(p *models.Post) sql.NullTime {
	if p.PublishedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p.PublishedAt, Valid: true}
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
