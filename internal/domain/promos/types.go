package promos

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("promo not found")

type Type string

const (
	TypePercent Type = "percent"
	TypeFixed   Type = "fixed"
)

// Promo is a discount code. Value is percentage points for TypePercent and a
// currency amount for TypeFixed.
type Promo struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      Type       `json:"type"`
	Value     float64    `json:"value"`
	MinAmount float64    `json:"minAmount"`
	Enabled   bool       `json:"enabled"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CanonicalCode is the stored form of a code: trimmed and upper-cased.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Public strips the bookkeeping fields the storefront has no use for.
func (p Promo) Public() Promo {
	return Promo{
		ID:        p.ID,
		Code:      p.Code,
		Type:      p.Type,
		Value:     p.Value,
		MinAmount: p.MinAmount,
		Enabled:   p.Enabled,
	}
}
