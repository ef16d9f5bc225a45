// Package locale resolves display strings for the three site languages and
// negotiates the visitor's language.
//
// English is the primary language: every persisted record carries an English
// value and every lookup that finds nothing else falls back to it directly.
// Indonesian and Russian are optional.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported display language code.
type Language string

const (
	English    Language = "en"
	Indonesian Language = "id"
	Russian    Language = "ru"
)

// Primary is the language whose value is always present and used as the
// universal fallback.
const Primary = English

var supported = []Language{English, Indonesian, Russian}

var supportedTags = []language.Tag{language.English, language.Indonesian, language.Russian}

var matcher = language.NewMatcher(supportedTags)

// Supported returns the supported languages, primary first.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether l is one of the supported codes.
func (l Language) IsSupported() bool {
	for _, s := range supported {
		if s == l {
			return true
		}
	}
	return false
}

// Tag returns the x/text tag for l, or the primary tag for unknown codes.
func (l Language) Tag() language.Tag {
	for i, s := range supported {
		if s == l {
			return supportedTags[i]
		}
	}
	return supportedTags[0]
}

func (l Language) String() string { return string(l) }

// Parse maps a BCP 47 code ("ru", "ru-RU", "id_ID", "en-GB") to a supported
// language. The bool is false when the base language is not supported.
func Parse(code string) (Language, bool) {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return Primary, false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Primary, false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return Primary, false
	}
	l := Language(base.String())
	if !l.IsSupported() {
		return Primary, false
	}
	return l, true
}

// Normalize is Parse without the ok flag: unknown codes become Primary.
func Normalize(code string) Language {
	l, _ := Parse(code)
	return l
}

// Negotiate picks the best supported language for an Accept-Language
// header value. Empty or malformed headers yield Primary.
func Negotiate(acceptLanguage string) Language {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return Primary
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Primary
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return Primary
	}
	return supported[idx]
}
