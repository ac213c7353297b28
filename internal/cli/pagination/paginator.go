package pagination

// Paginator pages through an in-memory slice. It owns the current page
// and page size and derives the visible slice on demand.
//
// Invariant: the current page never points past the last page. Shrinking
// the item set or changing the page size re-clamps the current page.
type Paginator[T any] struct {
	items       []T
	currentPage int
	pageSize    int
}

// NewPaginator creates a paginator over items. initialPageSize values
// below 1 fall back to DefaultPageSize; initialPage is clamped to the
// valid range.
func NewPaginator[T any](items []T, initialPageSize, initialPage int) *Paginator[T] {
	if initialPageSize < 1 {
		initialPageSize = DefaultPageSize
	}
	p := &Paginator[T]{
		items:       items,
		pageSize:    initialPageSize,
		currentPage: 1,
	}
	p.SetPage(initialPage)
	return p
}

// TotalItems returns the number of items across all pages.
func (p *Paginator[T]) TotalItems() int {
	return len(p.items)
}

// TotalPages returns ceil(len(items)/pageSize), at least 1 so an empty
// list still has a current page to stand on.
func (p *Paginator[T]) TotalPages() int {
	if len(p.items) == 0 {
		return 1
	}
	pages := len(p.items) / p.pageSize
	if len(p.items)%p.pageSize > 0 {
		pages++
	}
	return pages
}

// Page returns the current 1-based page number.
func (p *Paginator[T]) Page() int {
	return p.currentPage
}

// PageSize returns the current page size.
func (p *Paginator[T]) PageSize() int {
	return p.pageSize
}

// Items returns the slice of items visible on the current page.
func (p *Paginator[T]) Items() []T {
	start := (p.currentPage - 1) * p.pageSize
	if start >= len(p.items) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// SetPage moves to the given page, clamping to [1, TotalPages].
func (p *Paginator[T]) SetPage(page int) {
	switch {
	case page < 1:
		p.currentPage = 1
	case page > p.TotalPages():
		p.currentPage = p.TotalPages()
	default:
		p.currentPage = page
	}
}

// SetPageSize changes the page size and resets to the first page.
// Sizes below 1 are ignored.
func (p *Paginator[T]) SetPageSize(size int) {
	if size < 1 {
		return
	}
	p.pageSize = size
	p.currentPage = 1
}

// SetItems replaces the backing slice, re-clamping the current page.
func (p *Paginator[T]) SetItems(items []T) {
	p.items = items
	p.SetPage(p.currentPage)
}

// First moves to the first page.
func (p *Paginator[T]) First() {
	p.currentPage = 1
}

// Last moves to the last page.
func (p *Paginator[T]) Last() {
	p.currentPage = p.TotalPages()
}

// Next advances one page if one exists.
func (p *Paginator[T]) Next() {
	if p.HasNext() {
		p.currentPage++
	}
}

// Prev moves back one page if one exists.
func (p *Paginator[T]) Prev() {
	if p.HasPrevious() {
		p.currentPage--
	}
}

// HasNext reports whether a page follows the current one.
func (p *Paginator[T]) HasNext() bool {
	return p.currentPage < p.TotalPages()
}

// HasPrevious reports whether a page precedes the current one.
func (p *Paginator[T]) HasPrevious() bool {
	return p.currentPage > 1
}

// Meta returns page metadata for the current state.
func (p *Paginator[T]) Meta() Meta {
	return NewMeta(Params{Page: p.currentPage, PageSize: p.pageSize}, len(p.items))
}
