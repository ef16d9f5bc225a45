package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/toursite/internal/locale"
)

type Tour struct {
	ID           string               `json:"id"`
	Slug         string               `json:"slug"`
	Name         locale.LocalizedText `json:"name"`
	Summary      locale.LocalizedText `json:"summary"`
	Description  locale.LocalizedText `json:"description"`
	ImageURL     string               `json:"image_url,omitempty"`
	Price        Price                `json:"price"`
	DurationDays int                  `json:"duration_days"`
	Itinerary    Itinerary            `json:"itinerary,omitempty"`
	Published    bool                 `json:"published"`
	SortOrder    int                  `json:"sort_order"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (t Tour) ItemID() string { return t.ID }

// ItineraryDay describes one day of a tour program. Details may contain HTML.
type ItineraryDay struct {
	Day     int                  `json:"day"`
	Title   locale.LocalizedText `json:"title"`
	Details locale.LocalizedText `json:"details"`
}

// Itinerary is stored as a single JSON column.
type Itinerary []ItineraryDay

func (it Itinerary) Value() (driver.Value, error) {
	if it == nil {
		it = Itinerary{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(it); err != nil {
		return nil, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (it *Itinerary) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*it = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into Itinerary", src)
	}
	if len(b) == 0 {
		*it = nil
		return nil
	}
	var out Itinerary
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("models: decode itinerary: %w", err)
	}
	*it = out
	return nil
}

// TourView is a tour with its text resolved for one language.
type TourView struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Summary      string          `json:"summary"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url,omitempty"`
	Price        Price           `json:"price"`
	DurationDays int             `json:"duration_days"`
	Itinerary    []DayView       `json:"itinerary,omitempty"`
	Language     locale.Language `json:"language"`
}

type DayView struct {
	Day     int    `json:"day"`
	Title   string `json:"title"`
	Details string `json:"details"`
}

// View resolves every localized field of t for lang.
func (t Tour) View(lang locale.Language) TourView {
	v := TourView{
		ID:           t.ID,
		Slug:         t.Slug,
		Name:         t.Name.In(lang),
		Summary:      t.Summary.In(lang),
		Description:  t.Description.In(lang),
		ImageURL:     t.ImageURL,
		Price:        t.Price,
		DurationDays: t.DurationDays,
		Language:     lang,
	}
	for _, d := range t.Itinerary {
		v.Itinerary = append(v.Itinerary, DayView{Day: d.Day, Title: d.Title.In(lang), Details: d.Details.In(lang)})
	}
	return v
}
