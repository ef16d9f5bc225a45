package services

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLen = 80

// Slugify turns a title into a lower-case ASCII URL segment: accents are
// folded ("Kawah Ijén" -> "kawah-ijen"), runs of other characters become a
// single dash. Titles with no usable characters yield "".
func Slugify(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}

// slugFor returns the explicit slug when given, otherwise one derived from
// title. Titles without Latin characters get a random slug.
func slugFor(explicit, title string) string {
	if s := Slugify(explicit); s != "" {
		return s
	}
	if s := Slugify(title); s != "" {
		return s
	}
	return uuid.NewString()[:8]
}
