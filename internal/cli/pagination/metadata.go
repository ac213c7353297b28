package pagination

import (
	"math"
)

// Meta contains metadata about paginated results. It mirrors the shape
// of the backend's list envelope meta object.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates pagination metadata from parameters and a total count.
func NewMeta(params Params, totalCount int) Meta {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	currentPage := params.Page
	if currentPage <= 0 {
		currentPage = DefaultPage
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))

	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
