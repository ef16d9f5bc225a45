package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
)

type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) NotifyBooking(ctx context.Context, b *models.BookingInquiry, tour *models.Tour) error {
	f.calls = append(f.calls, b.ID+"/"+tour.ID)
	return f.err
}

func newBookingService(t *testing.T, n BookingNotifier) (*BookingService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	m := newFakeRepoManager()
	seedTours(m, "bromo", "draft")
	m.t.items[1].Published = false
	s := NewBookingService(db, m, n, logging.Nop())
	s.now = func() time.Time { return fixedNow }
	return s, m
}

func TestBookingService_Create(t *testing.T) {
	n := &fakeNotifier{}
	s, m := newBookingService(t, n)

	got, err := s.Create(context.Background(), &models.BookingInquiry{
		TourID:   "bromo",
		Name:     "  Ayu ",
		Email:    " ayu@example.com ",
		Language: "ID",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Ayu", got.Name)
	assert.Equal(t, "ayu@example.com", got.Email)
	assert.Equal(t, 1, got.Travelers)
	assert.Equal(t, locale.Indonesian, got.Language)
	assert.Equal(t, fixedNow, got.CreatedAt)
	require.Len(t, m.k.created, 1)
	assert.Equal(t, []string{got.ID + "/bromo"}, n.calls)
}

func TestBookingService_Create_UnsupportedLanguageFallsBack(t *testing.T) {
	s, _ := newBookingService(t, nil)

	got, err := s.Create(context.Background(), &models.BookingInquiry{TourID: "bromo", Name: "A", Email: "a@b.co", Language: "fr"})
	require.NoError(t, err)
	assert.Equal(t, locale.English, got.Language)
}

func TestBookingService_Create_NotifierFailureIsNotFatal(t *testing.T) {
	n := &fakeNotifier{err: errBoom}
	s, m := newBookingService(t, n)

	_, err := s.Create(context.Background(), &models.BookingInquiry{TourID: "bromo", Name: "A", Email: "a@b.co", Travelers: 2})
	require.NoError(t, err)
	assert.Len(t, m.k.created, 1)
	assert.Len(t, n.calls, 1)
}

func TestBookingService_Create_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   models.BookingInquiry
	}{
		{"no tour", models.BookingInquiry{Name: "A", Email: "a@b.co"}},
		{"no name", models.BookingInquiry{TourID: "bromo", Name: "  ", Email: "a@b.co"}},
		{"bad email", models.BookingInquiry{TourID: "bromo", Name: "A", Email: "not-an-email"}},
		{"display-name email", models.BookingInquiry{TourID: "bromo", Name: "A", Email: "A <a@b.co>"}},
		{"too many travelers", models.BookingInquiry{TourID: "bromo", Name: "A", Email: "a@b.co", Travelers: 51}},
		{"negative travelers", models.BookingInquiry{TourID: "bromo", Name: "A", Email: "a@b.co", Travelers: -1}},
		{"unknown tour", models.BookingInquiry{TourID: "nope", Name: "A", Email: "a@b.co"}},
		{"unpublished tour", models.BookingInquiry{TourID: "draft", Name: "A", Email: "a@b.co"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{}
			s, m := newBookingService(t, n)
			in := tt.in
			_, err := s.Create(context.Background(), &in)
			assert.ErrorIs(t, err, common.ErrorValidation)
			assert.Empty(t, m.k.created)
			assert.Empty(t, n.calls)
		})
	}
}

func TestBookingService_Create_StoreError(t *testing.T) {
	n := &fakeNotifier{}
	s, m := newBookingService(t, n)
	m.k.createErr = errBoom

	_, err := s.Create(context.Background(), &models.BookingInquiry{TourID: "bromo", Name: "A", Email: "a@b.co"})
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, n.calls)
}
