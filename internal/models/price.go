package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultCurrency is assumed when a price arrives without one.
const DefaultCurrency = "IDR"

// ErrInvalidPrice is returned for price payloads that cannot be normalized.
var ErrInvalidPrice = errors.New("invalid price")

// Price is a tour price. Legacy records store it in several shapes; they are
// all normalized here when decoded so consumers only ever see this struct.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit,omitempty"`
}

type priceObject struct {
	Amount   json.RawMessage `json:"amount"`
	Currency string          `json:"currency"`
	Unit     string          `json:"unit"`
}

// UnmarshalJSON accepts an object, a JSON string holding an object, a bare
// number, a numeric string or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}

	switch data[0] {
	case '{':
		return p.fromObject(data)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPrice, err)
		}
		return p.fromString(s)
	default:
		amount, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPrice, data)
		}
		*p = Price{Amount: amount, Currency: DefaultCurrency}
		return nil
	}
}

func (p *Price) fromString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*p = Price{}
		return nil
	}
	if strings.HasPrefix(s, "{") {
		return p.fromObject([]byte(s))
	}
	amount, err := parseAmount(s)
	if err != nil {
		return err
	}
	*p = Price{Amount: amount, Currency: DefaultCurrency}
	return nil
}

func (p *Price) fromObject(data []byte) error {
	var obj priceObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	var amount float64
	raw := bytes.TrimSpace(obj.Amount)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPrice, err)
		}
		a, err := parseAmount(s)
		if err != nil {
			return err
		}
		amount = a
	default:
		a, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return fmt.Errorf("%w: amount %s", ErrInvalidPrice, raw)
		}
		amount = a
	}
	cur := strings.ToUpper(strings.TrimSpace(obj.Currency))
	if cur == "" {
		cur = DefaultCurrency
	}
	*p = Price{Amount: amount, Currency: cur, Unit: strings.TrimSpace(obj.Unit)}
	return nil
}

// parseAmount accepts "1500000", "1,500,000" and "1500000.50".
func parseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	a, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return a, nil
}

// Validate rejects negative and non-finite amounts.
func (p Price) Validate() error {
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return fmt.Errorf("%w: amount is not a number", ErrInvalidPrice)
	}
	if p.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidPrice)
	}
	return nil
}

// String renders the price as "1500000 IDR / person".
func (p Price) String() string {
	s := strconv.FormatFloat(p.Amount, 'f', -1, 64)
	if p.Currency != "" {
		s += " " + p.Currency
	}
	if p.Unit != "" {
		s += " / " + p.Unit
	}
	return s
}

func (p Price) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads any of the shapes UnmarshalJSON accepts.
func (p *Price) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Price{}
		return nil
	case []byte:
		return p.UnmarshalJSON(v)
	case string:
		return p.UnmarshalJSON([]byte(v))
	case float64:
		*p = Price{Amount: v, Currency: DefaultCurrency}
		return nil
	case int64:
		*p = Price{Amount: float64(v), Currency: DefaultCurrency}
		return nil
	default:
		return fmt.Errorf("models: cannot scan %T into Price", src)
	}
}
