package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/models"
)

// List kinds accepted by the REPL.
const (
	kindTours    = "tours"
	kindPromos   = "promos"
	kindPosts    = "posts"
	kindBookings = "bookings"
)

var errUnknownList = errors.New("unknown list")

// List prints the named list in the session language.
func (a *App) List(ctx context.Context, kind string) error {
	lang := a.language()
	now := a.now()

	switch kind {
	case kindTours:
		items := a.tours.Items()
		if len(items) == 0 {
			a.say("No tours.")
		}
		for i, t := range items {
			a.say(tourLine(i, t, lang))
		}

	case kindPromos:
		items := a.promos.Items()
		if len(items) == 0 {
			a.say("No promotions.")
		}
		for i, p := range items {
			a.say(promotionLine(i, p, lang, now))
		}

	case kindPosts:
		if err := a.loadPosts(ctx); err != nil {
			a.say("Error:", err)
			return err
		}
		a.mu.Lock()
		page, q := a.page, a.posts
		a.mu.Unlock()
		if len(page.Items) == 0 {
			a.say("No posts.")
		}
		for i, p := range page.Items {
			a.say(postLine(i, p, lang, now))
		}
		header := fmt.Sprintf("page %d/%d, %d post(s)", page.Page, page.Pages(), page.Total)
		if q.Search != "" {
			header += fmt.Sprintf(", filter %q", q.Search)
		}
		a.say(header)

	case kindBookings:
		items, err := a.api.Bookings(ctx)
		if err != nil {
			a.say("Error:", err)
			return err
		}
		if len(items) == 0 {
			a.say("No booking inquiries.")
		}
		for i, b := range items {
			a.say(bookingLine(i, b, now))
		}

	default:
		a.say("Unknown list:", kind)
		return errUnknownList
	}
	return nil
}

func (a *App) loadPosts(ctx context.Context) error {
	a.mu.Lock()
	q := a.posts
	a.mu.Unlock()

	page, err := a.api.Posts(ctx, q)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.page = page
	a.mu.Unlock()
	return nil
}

// Reload refreshes tours and promotions from the server.
func (a *App) Reload(ctx context.Context) error {
	err := errors.Join(a.tours.Load(ctx), a.promos.Load(ctx))
	if err != nil {
		a.say("Error:", err)
	}
	return err
}

// SetLanguage switches the session language.
func (a *App) SetLanguage(code string) error {
	l, ok := locale.Parse(code)
	if !ok {
		a.sayf("Unsupported language %q, use one of: %s", code, joinLanguages(locale.Supported()))
		return fmt.Errorf("unsupported language %q", code)
	}
	a.mu.Lock()
	a.lang = l
	a.mu.Unlock()
	a.say("Language:", l)
	return nil
}

// SetPage moves the posts view to page n.
func (a *App) SetPage(n int) error {
	if n < 1 {
		a.say("Page numbers start at 1")
		return fmt.Errorf("invalid page %d", n)
	}
	a.mu.Lock()
	a.posts.Page = n
	a.mu.Unlock()
	return nil
}

// SetFilter sets the posts search text and returns to the first page.
// An empty text clears the filter.
func (a *App) SetFilter(text string) {
	a.mu.Lock()
	a.posts = models.ListQuery{Page: 1, PageSize: a.posts.PageSize, Search: strings.TrimSpace(text)}
	a.mu.Unlock()
}
