// Package listing unifies deferred store queries and already materialized
// slices behind one paginated read API.
package listing

import "math"

// Pagination is a zero-based page index plus a page size.
// Callers normalize it before handing it over; listing trusts what it gets.
type Pagination struct {
	Page int `json:"page" form:"page" binding:"gte=0"`
	Size int `json:"size" form:"size" binding:"gte=0"`
}

// Offset is the number of records preceding the page. It saturates at
// math.MaxInt instead of wrapping, so a huge page always lands past the end.
func (p Pagination) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Limit is the maximum number of records on the page.
func (p Pagination) Limit() int { return p.Size }

// PageDetail is derived paging metadata for one page of a larger result set.
type PageDetail struct {
	Page        int  `json:"page"`
	Size        int  `json:"size"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPageDetail computes paging metadata from the requested page and the total
// number of matching records. A non-positive size yields zero pages.
func NewPageDetail(p Pagination, total int) PageDetail {
	if total < 0 {
		total = 0
	}
	pages := 0
	if p.Size > 0 {
		pages = (total + p.Size - 1) / p.Size
	}
	return PageDetail{
		Page:        p.Page,
		Size:        p.Size,
		Total:       total,
		TotalPages:  pages,
		HasNext:     pages > 0 && p.Page < pages-1,
		HasPrevious: p.Page > 0,
	}
}
