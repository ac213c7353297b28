package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and validation limits.
const (
	DefaultPage      = 1
	MinPage          = 1
	DefaultPageSize  = 25
	MinPageSize      = 1
	MaxPageSize      = 500
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'severity:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds CLI pagination flags (--page, --page-size, --sort) and
// provides validation. Pages are 1-based, matching the backend's
// page/per_page list contract.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of results per page.
	PageSize int

	// SortField is the field name to sort by (e.g., "severity", "createdAt").
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks the pagination parameters (value receiver).
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// Offset returns the 0-based item offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages calculates the number of pages for a total result count.
// Returns 0 when there are no results.
func (p Params) TotalPages(totalResults int) int {
	if totalResults <= 0 || p.PageSize <= 0 {
		return 0
	}
	pages := totalResults / p.PageSize
	if totalResults%p.PageSize > 0 {
		pages++
	}
	return pages
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "severity", "createdAt:desc", "title:asc"
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
