package models

import (
	"time"

	"github.com/dmitrijs2005/toursite/internal/locale"
)

// Post is a blog article.
type Post struct {
	ID          string               `json:"id"`
	Slug        string               `json:"slug"`
	Title       locale.LocalizedText `json:"title"`
	Excerpt     locale.LocalizedText `json:"excerpt"`
	Body        locale.LocalizedText `json:"body"`
	CoverURL    string               `json:"cover_url,omitempty"`
	Published   bool                 `json:"published"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type PostView struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Excerpt     string          `json:"excerpt"`
	Body        string          `json:"body"`
	CoverURL    string          `json:"cover_url,omitempty"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	Language    locale.Language `json:"language"`
}

func (p Post) View(lang locale.Language) PostView {
	return PostView{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title.In(lang),
		Excerpt:     p.Excerpt.In(lang),
		Body:        p.Body.In(lang),
		CoverURL:    p.CoverURL,
		PublishedAt: p.PublishedAt,
		Language:    lang,
	}
}
