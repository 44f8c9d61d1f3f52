// Package readmodel shapes raw query results into response documents:
// page envelopes, grouped counts and joined or nested views.
package readmodel

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is a 1-indexed page of Limit items.
type PageRequest struct {
	Page  int
	Limit int
}

// Clamp bounds the request to page >= 1 and 1 <= limit <= maxLimit. Pages
// past math.MaxInt/limit are pulled back so Offset cannot overflow; they are
// empty either way.
func (r PageRequest) Clamp(maxLimit int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 1
	}
	if maxLimit > 0 && r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	if r.Page > math.MaxInt/r.Limit {
		r.Page = math.MaxInt / r.Limit
	}
	return r
}

// Offset is the number of rows skipped before the page starts.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Page is the pagination envelope.
type Page[T any] struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int64 `json:"total_pages"`
	Items      []T   `json:"items"`
}

// NewPage wraps one page of items. req must already be clamped.
func NewPage[T any](req PageRequest, total int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalCount: total,
		TotalPages: TotalPages(total, req.Limit),
		Items:      items,
	}
}

// TotalPages is ceil(total / limit).
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
