package models

import (
	"time"

	"github.com/dmitrijs2005/toursite/internal/locale"
)

type Promotion struct {
	ID              string               `json:"id"`
	Title           locale.LocalizedText `json:"title"`
	Description     locale.LocalizedText `json:"description"`
	ImageURL        string               `json:"image_url,omitempty"`
	DiscountPercent int                  `json:"discount_percent"`
	StartsAt        time.Time            `json:"starts_at"`
	EndsAt          time.Time            `json:"ends_at"`
	Active          bool                 `json:"active"`
	SortOrder       int                  `json:"sort_order"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (p Promotion) ItemID() string { return p.ID }

// Running reports whether the promotion is active and now lies within
// [StartsAt, EndsAt).
func (p Promotion) Running(now time.Time) bool {
	return p.Active && !now.Before(p.StartsAt) && now.Before(p.EndsAt)
}

// Countdown is the time left until a promotion ends.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// Countdown computes the remaining time from the fixed end timestamp. It is
// recomputed on every call rather than decremented, so it never drifts.
func (p Promotion) Countdown(now time.Time) Countdown {
	left := p.EndsAt.Sub(now)
	if left <= 0 {
		return Countdown{Expired: true}
	}
	secs := int(left / time.Second)
	return Countdown{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

// Format renders the countdown in lang.
func (c Countdown) Format(lang locale.Language) string {
	if c.Expired {
		return locale.Message(lang, locale.MsgPromotionOver)
	}
	return locale.Message(lang, locale.MsgPromotionEnds, c.Days, c.Hours, c.Minutes, c.Seconds)
}

// PromotionView is a promotion with its text resolved for one language.
type PromotionView struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url,omitempty"`
	DiscountPercent int             `json:"discount_percent"`
	EndsAt          time.Time       `json:"ends_at"`
	Countdown       Countdown       `json:"countdown"`
	Language        locale.Language `json:"language"`
}

func (p Promotion) View(lang locale.Language, now time.Time) PromotionView {
	return PromotionView{
		ID:              p.ID,
		Title:           p.Title.In(lang),
		Description:     p.Description.In(lang),
		ImageURL:        p.ImageURL,
		DiscountPercent: p.DiscountPercent,
		EndsAt:          p.EndsAt,
		Countdown:       p.Countdown(now),
		Language:        lang,
	}
}
