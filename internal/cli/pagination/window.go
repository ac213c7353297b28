package pagination

// DefaultSiblingCount is the number of page buttons shown on each side
// of the current page in the windowed pagination control.
const DefaultSiblingCount = 1

// windowOverhead is the number of fixed slots around the sibling window:
// first page, last page, current page, and one ellipsis per side. When
// the page count fits within 2*siblings+windowOverhead slots there is
// nothing to elide and every page is shown.
const windowOverhead = 5

// PageItem is one element of a pagination window: either a concrete page
// number or an ellipsis marker standing in for an elided run of pages.
type PageItem struct {
	// Page is the 1-based page number. Zero when Ellipsis is set.
	Page int

	// Ellipsis marks a gap between the boundary page and the window.
	Ellipsis bool
}

// ellipsis is the gap marker inserted between anchors and the window.
var ellipsis = PageItem{Ellipsis: true}

// Window computes the sequence of page numbers and ellipsis markers to
// render for a pagination control.
//
// When totalPages fits within 2*siblingCount+5 slots, every page is
// returned in order. Otherwise the result always contains the first and
// last page, a contiguous window around currentPage clamped to bounds,
// and an ellipsis on each side that is elided when the window already
// touches that boundary.
//
// totalPages <= 0 yields an empty sequence. currentPage is expected to
// be within [1, totalPages]; out-of-range values are clamped by callers,
// not here.
func Window(currentPage, totalPages, siblingCount int) []PageItem {
	if totalPages <= 0 {
		return nil
	}
	if siblingCount < 0 {
		siblingCount = 0
	}

	if totalPages <= 2*siblingCount+windowOverhead {
		return pageRange(1, totalPages)
	}

	// Contiguous window around the current page. The extra slot on each
	// side keeps the rendered width constant as the window slides.
	start := currentPage - siblingCount - 1
	end := currentPage + siblingCount + 1

	// Clamp to bounds, preserving window width.
	if start < 1 {
		end += 1 - start
		start = 1
	}
	if end > totalPages {
		start -= end - totalPages
		end = totalPages
		if start < 1 {
			start = 1
		}
	}

	showLeftEllipsis := start > 2
	showRightEllipsis := end < totalPages-1

	// A window touching a boundary absorbs the anchor run on that side.
	if !showLeftEllipsis {
		start = 1
	}
	if !showRightEllipsis {
		end = totalPages
	}

	items := make([]PageItem, 0, end-start+4)
	if showLeftEllipsis {
		items = append(items, PageItem{Page: 1}, ellipsis)
	}
	items = append(items, pageRange(start, end)...)
	if showRightEllipsis {
		items = append(items, ellipsis, PageItem{Page: totalPages})
	}

	return items
}

// pageRange returns PageItems for pages from..to inclusive.
func pageRange(from, to int) []PageItem {
	items := make([]PageItem, 0, to-from+1)
	for p := from; p <= to; p++ {
		items = append(items, PageItem{Page: p})
	}
	return items
}
