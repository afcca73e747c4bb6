package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/maxviazov/listresult/internal/listing"
)

var seasonPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Paging bounds the page sizes the list use cases accept.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// DefaultPaging is used when a service is built with a zero Paging.
var DefaultPaging = Paging{DefaultSize: 20, MaxSize: 100}

// MaxPage is the largest page index accepted. Beyond it page*size could
// overflow for the biggest allowed size.
func (pg Paging) MaxPage() int {
	if pg.DefaultSize <= 0 || pg.MaxSize <= 0 {
		pg = DefaultPaging
	}
	return math.MaxInt / pg.MaxSize
}

// normalizePage clamps p into a valid window. A negative page becomes the
// first page; a missing size gets the default and an oversized one is capped.
// Pages past MaxPage are rejected as invalid input.
func normalizePage(p listing.Pagination, pg Paging) (listing.Pagination, error) {
	if pg.DefaultSize <= 0 || pg.MaxSize <= 0 {
		pg = DefaultPaging
	}
	if p.Page < 0 {
		p.Page = 0
	}
	if limit := pg.MaxPage(); p.Page > limit {
		return listing.Pagination{}, NewInvalidInputError([]FieldError{{Field: "page", Message: fmt.Sprintf("must be <= %d", limit)}})
	}
	switch {
	case p.Size <= 0:
		p.Size = pg.DefaultSize
	case p.Size > pg.MaxSize:
		p.Size = pg.MaxSize
	}
	return p, nil
}

// IsValidSeason reports whether s looks like "2023-24" once trimmed.
func IsValidSeason(s string) bool {
	return seasonPattern.MatchString(strings.TrimSpace(s))
}

func normalizePosition(pos string) string {
	return strings.ToUpper(strings.TrimSpace(pos))
}

func isValidPosition(pos string) bool {
	switch pos {
	case "PG", "SG", "SF", "PF", "C":
		return true
	default:
		return false
	}
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func isValidGameStatus(status string) bool {
	switch status {
	case "scheduled", "in_progress", "finished":
		return true
	default:
		return false
	}
}
