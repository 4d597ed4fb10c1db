package pagination

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds the normalized offset pagination inputs for a list query.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Sort holds the normalized ordering of a list query.
type Sort struct {
	Field string
	Desc  bool
}

// Envelope is the derived pagination metadata returned beside every page.
type Envelope struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// ParseParams normalizes page/limit query parameters. Page clamps to a
// minimum of 1, limit clamps into [1, maxLimit] and falls back to
// defaultLimit when absent or non-numeric. Out-of-range values are clamped,
// never rejected.
func ParseParams(query url.Values, defaultLimit, maxLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	page, err := strconv.Atoi(strings.TrimSpace(query.Get("page")))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(strings.TrimSpace(query.Get("limit")))
	if err != nil {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// ParseSort normalizes sortBy/sortOrder query parameters. The requested field
// must be one of the caller's allowed columns; anything else falls back to
// defaultField. Direction is descending unless sortOrder is exactly "asc".
func ParseSort(query url.Values, defaultField string, allowed ...string) Sort {
	field := strings.TrimSpace(query.Get("sortBy"))
	if field == "" || !contains(allowed, field) {
		field = defaultField
	}
	return Sort{
		Field: field,
		Desc:  strings.TrimSpace(query.Get("sortOrder")) != "asc",
	}
}

// NewEnvelope derives pagination metadata from the total row count. An empty
// result set yields zero total pages with hasPrevPage still reflecting the
// requested page.
func NewEnvelope(page int, totalItems int64, limit int) Envelope {
	totalPages := 0
	if limit > 0 {
		totalPages = int((totalItems + int64(limit) - 1) / int64(limit))
	}
	return Envelope{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// Search builds a scope matching the trimmed term as a case-insensitive
// substring across any of the given columns. An empty term is a no-op.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	term = strings.TrimSpace(term)
	return func(tx *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return tx
		}
		pattern := "%" + term + "%"
		conds := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, "LOWER("+col+") LIKE LOWER(?)")
			args = append(args, pattern)
		}
		return tx.Where(strings.Join(conds, " OR "), args...)
	}
}

// Run executes the count-then-fetch sequence for a prepared query. The two
// statements are sequential, not transactional: a concurrent write between
// them can leave the envelope total and the returned slice mutually stale.
func Run[T any](ctx context.Context, tx *gorm.DB, params Params, sort Sort) ([]T, Envelope, error) {
	var total int64
	if err := tx.WithContext(ctx).Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Envelope{}, err
	}

	rows := make([]T, 0, params.Limit)
	err := tx.WithContext(ctx).
		Session(&gorm.Session{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Field}, Desc: sort.Desc}).
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, Envelope{}, err
	}

	return rows, NewEnvelope(params.Page, total, params.Limit), nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
