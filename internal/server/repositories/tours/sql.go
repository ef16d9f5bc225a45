// Package tours provides the SQL repository for tour packages. Queries are
// written to run unchanged on PostgreSQL and SQLite.
package tours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/ordering"
)

const table = "tours"

const selectColumns = `SELECT id, slug, name, summary, description, image_url, price, duration_days,
		itinerary, published, sort_order, created_at, updated_at FROM tours`

// SQLRepository implements tour storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db  dbx.DBTX
	pos ordering.Positions
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, pos: ordering.New(db, table)}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTour(s scanner) (*models.Tour, error) {
	var t models.Tour
	if err := s.Scan(
		&t.ID, &t.Slug, &t.Name, &t.Summary, &t.Description, &t.ImageURL, &t.Price, &t.DurationDays,
		&t.Itinerary, &t.Published, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListOrdered returns tours by ascending sort_order.
func (r *SQLRepository) ListOrdered(ctx context.Context, publishedOnly bool) ([]*models.Tour, error) {
	query := selectColumns
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY sort_order, created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select tours: %w", err)
	}
	defer rows.Close()

	var result []*models.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Tour, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (r *SQLRepository) GetBySlug(ctx context.Context, slug string) (*models.Tour, error) {
	return r.getOne(ctx, selectColumns+` WHERE slug = $1`, slug)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg string) (*models.Tour, error) {
	t, err := scanTour(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select tour: %w", err)
	}
	return t, nil
}

// Create inserts tour at the end of the list and stores the assigned
// position back into tour.SortOrder.
func (r *SQLRepository) Create(ctx context.Context, tour *models.Tour) error {
	query := `INSERT INTO tours (id, slug, name, summary, description, image_url, price, duration_days,
		itinerary, published, created_at, updated_at, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, ` + ordering.NextExpr(table) + `)
		RETURNING sort_order`

	err := r.db.QueryRowContext(ctx, query,
		tour.ID, tour.Slug, tour.Name, tour.Summary, tour.Description, tour.ImageURL, tour.Price,
		tour.DurationDays, tour.Itinerary, tour.Published, tour.CreatedAt, tour.UpdatedAt,
	).Scan(&tour.SortOrder)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update overwrites the editable fields. The position is left alone.
func (r *SQLRepository) Update(ctx context.Context, tour *models.Tour) error {
	query := `UPDATE tours SET slug = $1, name = $2, summary = $3, description = $4, image_url = $5,
		price = $6, duration_days = $7, itinerary = $8, published = $9, updated_at = $10
		WHERE id = $11`

	res, err := r.db.ExecContext(ctx, query,
		tour.Slug, tour.Name, tour.Summary, tour.Description, tour.ImageURL, tour.Price,
		tour.DurationDays, tour.Itinerary, tour.Published, tour.UpdatedAt, tour.ID,
	)
	return affectedOne(res, err)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, id)
	return affectedOne(res, err)
}

func (r *SQLRepository) SortOrders(ctx context.Context, idA, idB string) (map[string]int, error) {
	return r.pos.Of(ctx, idA, idB)
}

func (r *SQLRepository) SetSortOrder(ctx context.Context, id string, order int) error {
	return r.pos.Set(ctx, id, order)
}

func (r *SQLRepository) Normalize(ctx context.Context) error {
	return r.pos.Normalize(ctx)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
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
