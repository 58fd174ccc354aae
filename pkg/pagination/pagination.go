// Package pagination converts page/limit into offset/limit and summarizes a
// fetched page against its total count.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	ErrInvalidPage    = errors.New("page must be an integer")
	ErrInvalidLimit   = errors.New("limit must be between 1 and 100")
	ErrPageOutOfRange = errors.New("page is too large")
)

// Params is a 1-based page and a positive page size.
type Params struct {
	Page  int
	Limit int
}

// Summary is the pagination block returned next to a page of rows.
type Summary struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	HasMore    bool  `json:"hasMore"`
	TotalPages int   `json:"totalPages"`
}

// New clamps page to at least 1 and rejects a limit outside 1..MaxLimit.
// A page whose offset would not fit in an int is rejected as well.
func New(page, limit int) (Params, error) {
	if limit < 1 || limit > MaxLimit {
		return Params{}, ErrInvalidLimit
	}
	if page < 1 {
		page = 1
	}
	if page > math.MaxInt/limit {
		return Params{}, ErrPageOutOfRange
	}
	return Params{Page: page, Limit: limit}, nil
}

// Parse reads raw query-string values. A missing page means 1 and a missing
// limit means DefaultLimit.
func Parse(pageStr, limitStr string) (Params, error) {
	page := 1
	if s := strings.TrimSpace(pageStr); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Params{}, ErrInvalidPage
		}
		page = v
	}

	limit := DefaultLimit
	if s := strings.TrimSpace(limitStr); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Params{}, ErrInvalidLimit
		}
		limit = v
	}

	return New(page, limit)
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Summarize derives hasMore and totalPages from the rows actually returned at
// this offset and the total matching the same predicate.
func Summarize(p Params, returned int, total int64) Summary {
	limit := int64(p.Limit)
	return Summary{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: total,
		HasMore:    int64(p.Offset()+returned) < total,
		TotalPages: int((total + limit - 1) / limit),
	}
}
