package locale

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPrimaryMissing reports a LocalizedText without its English value.
var ErrPrimaryMissing = errors.New("primary language value is required")

// LocalizedText carries one display string per supported language.
// Primary (English) is mandatory for persisted records; Secondary
// (Indonesian) and Tertiary (Russian) may be empty, which means absent.
type LocalizedText struct {
	Primary   string `json:"en"`
	Secondary string `json:"id,omitempty"`
	Tertiary  string `json:"ru,omitempty"`
}

// Text builds a LocalizedText from the English value alone.
func Text(en string) LocalizedText {
	return LocalizedText{Primary: en}
}

// Resolution describes how a display string was selected.
type Resolution struct {
	Value        string
	Requested    Language
	Resolved     Language
	FallbackUsed bool
}

// Resolve returns the string to display for lang. Anything other than a
// non-empty value for the requested language falls back straight to the
// primary value; fallback never passes through a third language. Resolve
// does not sanitize markup.
func Resolve(content LocalizedText, lang Language) string {
	return ResolveMeta(content, lang).Value
}

// ResolveMeta is Resolve plus the language actually used.
func ResolveMeta(content LocalizedText, lang Language) Resolution {
	r := Resolution{Requested: lang, Resolved: Primary, Value: content.Primary}
	if lang == Primary {
		return r
	}
	if v := content.field(lang); v != "" {
		r.Resolved = lang
		r.Value = v
		return r
	}
	r.FallbackUsed = true
	return r
}

// In is the method form of Resolve.
func (t LocalizedText) In(lang Language) string {
	return Resolve(t, lang)
}

func (t LocalizedText) field(lang Language) string {
	switch lang {
	case English:
		return t.Primary
	case Indonesian:
		return t.Secondary
	case Russian:
		return t.Tertiary
	default:
		return ""
	}
}

// With returns a copy of t with the value for lang replaced.
// Unsupported languages leave t unchanged.
func (t LocalizedText) With(lang Language, value string) LocalizedText {
	switch lang {
	case English:
		t.Primary = value
	case Indonesian:
		t.Secondary = value
	case Russian:
		t.Tertiary = value
	}
	return t
}

// Missing lists the optional languages that have no value.
func (t LocalizedText) Missing() []Language {
	var out []Language
	for _, l := range supported[1:] {
		if strings.TrimSpace(t.field(l)) == "" {
			out = append(out, l)
		}
	}
	return out
}

// IsZero reports whether no language has a value.
func (t LocalizedText) IsZero() bool {
	return t.Primary == "" && t.Secondary == "" && t.Tertiary == ""
}

// Contains reports whether any language value contains needle, ignoring case.
func (t LocalizedText) Contains(needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, v := range []string{t.Primary, t.Secondary, t.Tertiary} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// Validate enforces the persisted-record invariant: a non-blank primary value.
func (t LocalizedText) Validate() error {
	if strings.TrimSpace(t.Primary) == "" {
		return ErrPrimaryMissing
	}
	return nil
}

// Value stores the text as a JSON document. Markup is kept as written.
func (t LocalizedText) Value() (driver.Value, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Scan reads a JSON document produced by Value.
func (t *LocalizedText) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("locale: cannot scan %T into LocalizedText", src)
	}
	if len(b) == 0 {
		*t = LocalizedText{}
		return nil
	}
	var out LocalizedText
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("locale: decode localized text: %w", err)
	}
	*t = out
	return nil
}
