package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/toursite/internal/locale"
)

// Show prints the n-th item (1-based) of a list with every localized field
// resolved in the session language.
func (a *App) Show(ctx context.Context, kind string, n int) error {
	lang := a.language()

	switch kind {
	case kindTours:
		items := a.tours.Items()
		if n < 1 || n > len(items) {
			return a.noSuchItem(n)
		}
		t := items[n-1]
		v := t.View(lang)
		a.say(v.Name)
		a.sayf("slug: %s  price: %s  duration: %d day(s)", v.Slug, formatPrice(v.Price), v.DurationDays)
		a.say(v.Summary)
		a.say(v.Description)
		for _, d := range v.Itinerary {
			a.sayf("  day %d: %s", d.Day, d.Title)
			if d.Details != "" {
				a.say("    " + d.Details)
			}
		}
		a.fallbackNote(lang, locale.ResolveMeta(t.Name, lang))

	case kindPromos:
		items := a.promos.Items()
		if n < 1 || n > len(items) {
			return a.noSuchItem(n)
		}
		p := items[n-1]
		v := p.View(lang, a.now())
		a.sayf("%s  -%d%%", v.Title, v.DiscountPercent)
		a.say(v.Description)
		a.sayf("%s - %s", p.StartsAt.Local().Format("2006-01-02 15:04"), p.EndsAt.Local().Format("2006-01-02 15:04"))
		a.say(v.Countdown.Format(lang))
		a.fallbackNote(lang, locale.ResolveMeta(p.Title, lang))

	case kindPosts:
		a.mu.Lock()
		items := a.page.Items
		a.mu.Unlock()
		if n < 1 || n > len(items) {
			return a.noSuchItem(n)
		}
		p := items[n-1]
		v := p.View(lang)
		a.say(v.Title)
		if v.PublishedAt != nil {
			a.say("published", humanize.Time(*v.PublishedAt))
		}
		a.say(v.Excerpt)
		a.say(strings.TrimSpace(v.Body))
		a.fallbackNote(lang, locale.ResolveMeta(p.Title, lang))

	default:
		a.say("Unknown list:", kind)
		return errUnknownList
	}
	return nil
}

func (a *App) noSuchItem(n int) error {
	a.sayf("No item #%d", n)
	return fmt.Errorf("no item #%d", n)
}

func (a *App) fallbackNote(lang locale.Language, r locale.Resolution) {
	if r.FallbackUsed {
		a.sayf("(no %s translation, showing %s)", lang, r.Resolved)
	}
}
