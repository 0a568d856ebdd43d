package events

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("event theme not found")

// Theme is a time-boxed visual override for the storefront (Christmas,
// Halloween, ...). Config is opaque to the server.
type Theme struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Enabled   bool           `json:"enabled"`
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Priority  int            `json:"priority"`
	Config    map[string]any `json:"config,omitempty"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

// ActiveAt reports whether the theme is enabled and now falls inside its
// inclusive window.
func (t Theme) ActiveAt(now time.Time) bool {
	return t.Enabled && !now.Before(t.StartDate) && !now.After(t.EndDate)
}
