package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures page-change callbacks.
type recorder struct {
	calls []int
}

func (r *recorder) onChange(page int) {
	r.calls = append(r.calls, page)
}

func newControl(current, total int, rec *recorder) PaginationControl {
	c := NewPaginationControl(rec.onChange)
	c.CurrentPage = current
	c.TotalPages = total
	return c
}

func TestPaginationControl_SelectInRange(t *testing.T) {
	rec := &recorder{}
	c := newControl(5, 10, rec)

	c.Select(7)
	c.Select(1)
	c.Select(10)

	assert.Equal(t, []int{7, 1, 10}, rec.calls)
}

func TestPaginationControl_SelectOutOfRangeDropped(t *testing.T) {
	rec := &recorder{}
	c := newControl(5, 10, rec)

	c.Select(0)
	c.Select(-1)
	c.Select(11)

	assert.Empty(t, rec.calls)
}

func TestPaginationControl_PrevAtFirstPageNoCallback(t *testing.T) {
	rec := &recorder{}
	c := newControl(1, 10, rec)

	c.Prev()
	c.First()

	// First still targets page 1 which is in range, but Prev must not
	// fire below it.
	assert.Equal(t, []int{1}, rec.calls)
}

func TestPaginationControl_NextAtLastPageNoCallback(t *testing.T) {
	rec := &recorder{}
	c := newControl(10, 10, rec)

	c.Next()
	assert.Empty(t, rec.calls)

	c.Last()
	assert.Equal(t, []int{10}, rec.calls)
}

func TestPaginationControl_DisabledNeverFires(t *testing.T) {
	rec := &recorder{}
	c := newControl(5, 10, rec)
	c.Disabled = true

	c.Select(7)
	c.Next()
	c.Prev()
	c.First()
	c.Last()

	assert.Empty(t, rec.calls)
}

func TestPaginationControl_NilCallbackSafe(t *testing.T) {
	c := NewPaginationControl(nil)
	c.CurrentPage = 2
	c.TotalPages = 5

	assert.NotPanics(t, func() {
		c.Select(3)
		c.Next()
	})
}

func TestPaginationControl_View(t *testing.T) {
	rec := &recorder{}
	c := newControl(10, 20, rec)

	view := c.View()
	require.NotEmpty(t, view)

	// Anchors, current page marker, and both ellipses are present.
	assert.Contains(t, view, "[10]")
	assert.Contains(t, view, "1")
	assert.Contains(t, view, "20")
	assert.Contains(t, view, "…")
	assert.Contains(t, view, "‹")
	assert.Contains(t, view, "›")
}

func TestPaginationControl_ViewEmptyWhenNoPages(t *testing.T) {
	c := NewPaginationControl(nil)
	c.TotalPages = 0

	assert.Empty(t, c.View())
}

func TestPaginationControl_ViewWithoutFirstLast(t *testing.T) {
	rec := &recorder{}
	c := newControl(2, 3, rec)
	c.ShowFirstLast = false

	view := c.View()
	assert.NotContains(t, view, "«")
	assert.NotContains(t, view, "»")
}
