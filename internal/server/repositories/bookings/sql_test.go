package bookings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/models"
)

var ts = time.Date(2025, 7, 7, 9, 30, 0, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	travel := ts.AddDate(0, 1, 0)
	mock.ExpectExec(`INSERT INTO bookings \(id, tour_id, .*\)\s+VALUES \(\$1, .* \$10\)`).
		WithArgs("bk1", "t1", "Ana", "ana@example.com", "", 2, travel, "", "ru", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.BookingInquiry{
		ID: "bk1", TourID: "t1", Name: "Ana", Email: "ana@example.com", Travelers: 2,
		TravelDate: &travel, Language: locale.Russian, CreatedAt: ts,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO bookings`).WillReturnError(errors.New("fk violation"))

	err := repo.Create(context.Background(), &models.BookingInquiry{ID: "bk1"})
	assert.ErrorContains(t, err, "db error: fk violation")
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "tour_id", "name", "email", "phone", "travelers", "travel_date", "message", "language", "created_at"}).
		AddRow("bk2", "t1", "Budi", "budi@example.com", "+62", 4, nil, "hi", "id", ts).
		AddRow("bk1", "t2", "Ana", "ana@example.com", "", 1, ts, "", "xx", ts)

	mock.ExpectQuery(`FROM bookings ORDER BY created_at DESC, id`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, locale.Indonesian, got[0].Language)
	assert.Nil(t, got[0].TravelDate)
	assert.Equal(t, locale.English, got[1].Language)
	require.NotNil(t, got[1].TravelDate)
}
