// Package bookings provides the SQL repository for booking inquiries.
package bookings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/toursite/internal/dbx"
	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, b *models.BookingInquiry) error {
	query := `INSERT INTO bookings (id, tour_id, name, email, phone, travelers, travel_date, message, language, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var travelDate sql.NullTime
	if b.TravelDate != nil {
		travelDate = sql.NullTime{Time: *b.TravelDate, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.TourID, b.Name, b.Email, b.Phone, b.Travelers, travelDate, b.Message, string(b.Language), b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// List returns inquiries newest first.
func (r *SQLRepository) List(ctx context.Context) ([]*models.BookingInquiry, error) {
	query := `SELECT id, tour_id, name, email, phone, travelers, travel_date, message, language, created_at
		FROM bookings ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookings: %w", err)
	}
	defer rows.Close()

	var result []*models.BookingInquiry
	for rows.Next() {
		var (
			b          models.BookingInquiry
			travelDate sql.NullTime
			lang       string
		)
		if err := rows.Scan(
			&b.ID, &b.TourID, &b.Name, &b.Email, &b.Phone, &b.Travelers, &travelDate, &b.Message, &lang, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		if travelDate.Valid {
			t := travelDate.Time
			b.TravelDate = &t
		}
		b.Language = locale.Normalize(lang)
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
