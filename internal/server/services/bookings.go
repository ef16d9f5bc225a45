package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/server/repositories/repomanager"
)

const maxTravelers = 50

// BookingNotifier tells staff about a new inquiry.
type BookingNotifier interface {
	NotifyBooking(ctx context.Context, b *models.BookingInquiry, tour *models.Tour) error
}

// BookingService records booking inquiries and forwards them to staff.
type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    BookingNotifier
	log         logging.Logger
	now         func() time.Time
}

func NewBookingService(db *sql.DB, m repomanager.RepositoryManager, n BookingNotifier, log logging.Logger) *BookingService {
	return &BookingService{
		db:          db,
		repomanager: m,
		notifier:    n,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and stores an inquiry for a published tour, then sends
// the staff notification. A failed notification is logged and does not fail
// the inquiry.
func (s *BookingService) Create(ctx context.Context, in *models.BookingInquiry) (*models.BookingInquiry, error) {
	b := *in
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	if b.Travelers == 0 {
		b.Travelers = 1
	}
	if err := validateBooking(&b); err != nil {
		return nil, err
	}

	tour, err := s.repomanager.Tours(s.db).Get(ctx, b.TourID)
	if errors.Is(err, common.ErrorNotFound) || (err == nil && !tour.Published) {
		return nil, invalid("unknown tour %q", b.TourID)
	}
	if err != nil {
		return nil, err
	}

	b.ID = uuid.NewString()
	b.Language = locale.Normalize(string(b.Language))
	b.CreatedAt = s.now()

	if err := s.repomanager.Bookings(s.db).Create(ctx, &b); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "booking inquiry received", "id", b.ID, "tour_id", b.TourID, "language", b.Language)

	if s.notifier != nil {
		if err := s.notifier.NotifyBooking(ctx, &b, tour); err != nil {
			s.log.Error(ctx, "booking notification failed", "id", b.ID, "error", err)
		}
	}
	return &b, nil
}

func (s *BookingService) List(ctx context.Context) ([]*models.BookingInquiry, error) {
	return s.repomanager.Bookings(s.db).List(ctx)
}

func validateBooking(b *models.BookingInquiry) error {
	switch {
	case b.TourID == "":
		return invalid("tour_id is required")
	case b.Name == "":
		return invalid("name is required")
	case !validEmail(b.Email):
		return invalid("email %q is not valid", b.Email)
	case b.Travelers < 1 || b.Travelers > maxTravelers:
		return invalid("travelers must be between 1 and %d", maxTravelers)
	}
	return nil
}
