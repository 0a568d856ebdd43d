package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// URL: /products?page=2&limit=30
// → ParsePagination() → Pagination{Limit:30, Page:2, Offset:30}
// → Window(list) → items 30..59
// → ComputeMeta(len(list)) → fills TotalPages, HasNext, etc.
// → totals go out as X-Total-Count / X-Total-Pages, the body stays a plain array
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination parses ?limit=...&page=... safely. ok is false when the
// request asked for neither, in which case the caller returns everything.
func ParsePagination(q url.Values) (p Pagination, ok bool) {
	p = Pagination{
		Limit: DefaultLimit,
		Page:  1,
	}

	limitStr := strings.TrimSpace(q.Get("limit"))
	pageStr := strings.TrimSpace(q.Get("page"))
	if limitStr == "" && pageStr == "" {
		return p, false
	}

	if limit, err := strconv.Atoi(limitStr); err == nil {
		switch {
		case limit <= 0:
			p.Limit = DefaultLimit
		case limit > MaxLimit:
			p.Limit = MaxLimit
		default:
			p.Limit = limit
		}
	}

	if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
		p.Page = page
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p, true
}

// ComputeMeta updates pagination once the total count is known.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}

// Window returns the page of items p selects and fills in p's metadata.
// Pages past the end are empty, never nil.
func Window[T any](items []T, p *Pagination) []T {
	p.ComputeMeta(len(items))
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
