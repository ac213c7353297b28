package tui

import (
	"strconv"
	"strings"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
)

// PaginationControl renders a windowed page selector and forwards page
// changes to its callback. It holds no state of its own: the parent
// model owns the current page and re-renders the control with fresh
// values after every change.
type PaginationControl struct {
	// CurrentPage and TotalPages describe the paged data set.
	CurrentPage int
	TotalPages  int

	// SiblingCount is the number of page buttons on each side of the
	// current page.
	SiblingCount int

	// ShowFirstLast renders the jump-to-first/last affordances.
	ShowFirstLast bool

	// Disabled suppresses all page-change callbacks.
	Disabled bool

	// OnPageChange receives the requested page. Only in-range values
	// are ever delivered.
	OnPageChange func(page int)
}

// NewPaginationControl creates a control with the standard defaults.
func NewPaginationControl(onPageChange func(int)) PaginationControl {
	return PaginationControl{
		CurrentPage:   1,
		TotalPages:    1,
		SiblingCount:  pagination.DefaultSiblingCount,
		ShowFirstLast: true,
		OnPageChange:  onPageChange,
	}
}

// Select requests a jump to the given page. Out-of-range pages and
// selections on a disabled control are dropped without invoking the
// callback.
func (c PaginationControl) Select(page int) {
	if c.Disabled || c.OnPageChange == nil {
		return
	}
	if page < 1 || page > c.TotalPages {
		return
	}
	c.OnPageChange(page)
}

// Next advances one page; at the last page it is a no-op.
func (c PaginationControl) Next() {
	c.Select(c.CurrentPage + 1)
}

// Prev goes back one page; at the first page it is a no-op.
func (c PaginationControl) Prev() {
	c.Select(c.CurrentPage - 1)
}

// First jumps to page 1.
func (c PaginationControl) First() {
	c.Select(1)
}

// Last jumps to the final page.
func (c PaginationControl) Last() {
	c.Select(c.TotalPages)
}

// View renders the control, e.g. "« ‹ 1 … 8 [9] 10 … 20 › »".
func (c PaginationControl) View() string {
	if c.TotalPages <= 0 {
		return ""
	}

	var parts []string

	prevEnabled := c.CurrentPage > 1 && !c.Disabled
	nextEnabled := c.CurrentPage < c.TotalPages && !c.Disabled

	if c.ShowFirstLast {
		parts = append(parts, navSymbol("«", prevEnabled))
	}
	parts = append(parts, navSymbol("‹", prevEnabled))

	for _, item := range pagination.Window(c.CurrentPage, c.TotalPages, c.SiblingCount) {
		switch {
		case item.Ellipsis:
			parts = append(parts, mutedStyle.Render("…"))
		case item.Page == c.CurrentPage:
			parts = append(parts, activePageStyle.Render("["+strconv.Itoa(item.Page)+"]"))
		default:
			parts = append(parts, strconv.Itoa(item.Page))
		}
	}

	parts = append(parts, navSymbol("›", nextEnabled))
	if c.ShowFirstLast {
		parts = append(parts, navSymbol("»", nextEnabled))
	}

	return strings.Join(parts, " ")
}

func navSymbol(symbol string, enabled bool) string {
	if !enabled {
		return disabledPageStyle.Render(symbol)
	}
	return symbol
}
