package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/models"
)

func formatPrice(p models.Price) string {
	s := humanize.Commaf(p.Amount)
	if p.Currency != "" {
		s = p.Currency + " " + s
	}
	if p.Unit != "" {
		s += " / " + p.Unit
	}
	return s
}

// gaps lists the languages missing from any of texts, in catalog order.
// Texts empty in every language are optional fields left blank, not gaps.
func gaps(texts ...locale.LocalizedText) []locale.Language {
	seen := map[locale.Language]bool{}
	for _, t := range texts {
		if t.IsZero() {
			continue
		}
		for _, l := range t.Missing() {
			seen[l] = true
		}
	}
	var out []locale.Language
	for _, l := range locale.Supported() {
		if seen[l] {
			out = append(out, l)
		}
	}
	return out
}

func joinLanguages(ls []locale.Language) string {
	s := make([]string, len(ls))
	for i, l := range ls {
		s[i] = string(l)
	}
	return strings.Join(s, ", ")
}

func tourLine(i int, t *models.Tour, lang locale.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%2d. %s  %s  %dd", i+1, t.Name.In(lang), formatPrice(t.Price), t.DurationDays)
	if !t.Published {
		b.WriteString("  [draft]")
	}
	if g := gaps(t.Name, t.Summary, t.Description); len(g) > 0 {
		b.WriteString("  (" + locale.Message(lang, locale.MsgTranslationGaps, joinLanguages(g)) + ")")
	}
	return b.String()
}

func promotionLine(i int, p *models.Promotion, lang locale.Language, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%2d. %s  -%d%%  %s", i+1, p.Title.In(lang), p.DiscountPercent, p.Countdown(now).Format(lang))
	if !p.Active {
		b.WriteString("  [inactive]")
	}
	if g := gaps(p.Title, p.Description); len(g) > 0 {
		b.WriteString("  (" + locale.Message(lang, locale.MsgTranslationGaps, joinLanguages(g)) + ")")
	}
	return b.String()
}

func postLine(i int, p *models.Post, lang locale.Language, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%2d. %s", i+1, p.Title.In(lang))
	if p.PublishedAt != nil {
		b.WriteString("  " + humanize.RelTime(*p.PublishedAt, now, "ago", "from now"))
	} else {
		b.WriteString("  [draft]")
	}
	if g := gaps(p.Title, p.Excerpt, p.Body); len(g) > 0 {
		b.WriteString("  (" + locale.Message(lang, locale.MsgTranslationGaps, joinLanguages(g)) + ")")
	}
	return b.String()
}

func bookingLine(i int, b *models.BookingInquiry, now time.Time) string {
	s := fmt.Sprintf("%2d. %s <%s>  tour %s  %d traveler(s)", i+1, b.Name, b.Email, b.TourID, b.Travelers)
	if b.TravelDate != nil {
		s += "  on " + b.TravelDate.Format(time.DateOnly)
	}
	return s + "  " + humanize.RelTime(b.CreatedAt, now, "ago", "from now")
}
