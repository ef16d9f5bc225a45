package models

import (
	"time"

	"github.com/dmitrijs2005/toursite/internal/locale"
)

// BookingInquiry is a visitor's request for a tour. It is not a confirmed
// reservation; staff follow up by email or phone.
type BookingInquiry struct {
	ID         string          `json:"id"`
	TourID     string          `json:"tour_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone,omitempty"`
	Travelers  int             `json:"travelers"`
	TravelDate *time.Time      `json:"travel_date,omitempty"`
	Message    string          `json:"message,omitempty"`
	Language   locale.Language `json:"language"`
	CreatedAt  time.Time       `json:"created_at"`
}
