package params

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidLimit = errors.New("limit must be a number")

// URL: /v1/admin/contact?page=2&limit=20
// → ParsePagination(q, 20, 50) → Pagination{Limit:20, Page:2, Offset:20}
// → SQL: SELECT ... LIMIT 20 OFFSET 20
// → ComputeMeta(total) fills TotalPages, HasNext, HasPrev
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination parses ?limit=...&page=... leniently. Keys are case sensitive.
func ParsePagination(q url.Values, defaultLimit, maxLimit int) Pagination {
	p := Pagination{
		Limit: defaultLimit,
		Page:  1,
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = defaultLimit
			case maxLimit > 0 && limit > maxLimit:
				p.Limit = maxLimit
			default:
				p.Limit = limit
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	// keep OFFSET inside a Postgres int
	if p.Limit > 0 && p.Page > math.MaxInt32/p.Limit {
		p.Page = math.MaxInt32 / p.Limit
	}
	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}

// ParseLimit reads ?limit=. A missing value returns 0 so the caller's default
// applies; anything else is clamped into [1, max].
func ParseLimit(q url.Values, max int) (int, error) {
	s := strings.TrimSpace(q.Get("limit"))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidLimit
	}
	if n < 1 {
		n = 1
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}

// ParseBool reads a boolean flag such as ?unread=true; malformed values are false.
func ParseBool(q url.Values, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(q.Get(key)))
	return err == nil && v
}
