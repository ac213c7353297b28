package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intRange returns [0, n).
func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginator_Basics(t *testing.T) {
	p := NewPaginator(intRange(100), 20, 1)

	assert.Equal(t, 5, p.TotalPages())
	assert.Equal(t, 100, p.TotalItems())
	assert.Len(t, p.Items(), 20)
	assert.False(t, p.HasPrevious())
	assert.True(t, p.HasNext())
}

func TestPaginator_InitialPageOffset(t *testing.T) {
	p := NewPaginator(intRange(100), 10, 2)

	items := p.Items()
	require.Len(t, items, 10)
	assert.Equal(t, 10, items[0])
	assert.Equal(t, 19, items[9])
}

func TestPaginator_SetPageSizeResetsPage(t *testing.T) {
	p := NewPaginator(intRange(100), 10, 7)
	require.Equal(t, 7, p.Page())

	for _, size := range []int{3, 25, 100, 7} {
		p.SetPage(4)
		p.SetPageSize(size)

		assert.Equal(t, 1, p.Page(), "size=%d", size)
		assert.LessOrEqual(t, len(p.Items()), size, "size=%d", size)
	}
}

func TestPaginator_SetPageClamps(t *testing.T) {
	p := NewPaginator(intRange(45), 10, 1)
	require.Equal(t, 5, p.TotalPages())

	p.SetPage(99)
	assert.Equal(t, 5, p.Page())
	assert.Len(t, p.Items(), 5) // last partial page

	p.SetPage(-3)
	assert.Equal(t, 1, p.Page())
}

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(intRange(30), 10, 1)

	p.Next()
	assert.Equal(t, 2, p.Page())
	p.Next()
	assert.Equal(t, 3, p.Page())
	p.Next() // already on last page
	assert.Equal(t, 3, p.Page())
	assert.False(t, p.HasNext())

	p.Prev()
	assert.Equal(t, 2, p.Page())
	p.First()
	assert.Equal(t, 1, p.Page())
	p.Prev() // already on first page
	assert.Equal(t, 1, p.Page())
	p.Last()
	assert.Equal(t, 3, p.Page())
}

func TestPaginator_Empty(t *testing.T) {
	p := NewPaginator([]int{}, 10, 1)

	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 1, p.Page())
	assert.Empty(t, p.Items())
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrevious())
}

func TestPaginator_SetItemsReclamps(t *testing.T) {
	p := NewPaginator(intRange(100), 10, 10)
	require.Equal(t, 10, p.Page())

	p.SetItems(intRange(25))
	assert.Equal(t, 3, p.Page())
	assert.Len(t, p.Items(), 5)
}

func TestPaginator_Meta(t *testing.T) {
	p := NewPaginator(intRange(42), 10, 3)

	meta := p.Meta()
	assert.Equal(t, 3, meta.CurrentPage)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 5, meta.TotalPages)
	assert.Equal(t, 42, meta.TotalItems)
	assert.True(t, meta.HasPrevious)
	assert.True(t, meta.HasNext)
}
