// Package promotions provides the SQL repository for promotional offers.
package promotions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/ordering"
)

const table = "promotions"

const selectColumns = `SELECT id, title, description, image_url, discount_percent, starts_at, ends_at,
		active, sort_order, created_at, updated_at FROM promotions`

// SQLRepository implements promotion storage over a dbx.DBTX.
type SQLRepository struct {
	db  dbx.DBTX
	pos ordering.Positions
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, pos: ordering.New(db, table)}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPromotion(s scanner) (*models.Promotion, error) {
	var p models.Promotion
	if err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.DiscountPercent, &p.StartsAt, &p.EndsAt,
		&p.Active, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLRepository) ListOrdered(ctx context.Context, activeOnly bool) ([]*models.Promotion, error) {
	query := selectColumns
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order, created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select promotions: %w", err)
	}
	defer rows.Close()

	var result []*models.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
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

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select promotion: %w", err)
	}
	return p, nil
}

// Create inserts p at the end of the list and stores the assigned position
// back into p.SortOrder.
func (r *SQLRepository) Create(ctx context.Context, p *models.Promotion) error {
	query := `INSERT INTO promotions (id, title, description, image_url, discount_percent, starts_at, ends_at,
		active, created_at, updated_at, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, ` + ordering.NextExpr(table) + `)
		RETURNING sort_order`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Description, p.ImageURL, p.DiscountPercent, p.StartsAt, p.EndsAt,
		p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.SortOrder)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, p *models.Promotion) error {
	query := `UPDATE promotions SET title = $1, description = $2, image_url = $3, discount_percent = $4,
		starts_at = $5, ends_at = $6, active = $7, updated_at = $8
		WHERE id = $9`

	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.ImageURL, p.DiscountPercent, p.StartsAt, p.EndsAt, p.Active, p.UpdatedAt, p.ID,
	)
	return affectedOne(res, err)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
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

// ExpireEnded deactivates active promotions whose end time is not after now
// and returns how many were changed.
func (r *SQLRepository) ExpireEnded(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE promotions SET active = FALSE, updated_at = $1 WHERE active = TRUE AND ends_at <= $2`,
		now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
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
