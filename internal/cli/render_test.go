package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebstarmalala/securion-console/internal/api"
	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []string{"ID", "NAME"}, [][]string{
		{"p1", "Acme External"},
		{"p2", "Internal"},
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "ID")
	assert.Contains(t, string(lines[0]), "NAME")
	assert.Contains(t, string(lines[1]), "--")
	assert.Contains(t, string(lines[2]), "Acme External")

	// Columns align: every cell is padded to its column width.
	assert.Equal(t, string(lines[2][:4]), "p1  ")
}

func TestRenderListFooter(t *testing.T) {
	params := pagination.Params{Page: 2, PageSize: 25}

	t.Run("empty result", func(t *testing.T) {
		var buf bytes.Buffer
		renderListFooter(&buf, params, &api.ListMeta{})
		assert.Equal(t, "No results.\n", buf.String())
	})

	t.Run("uses backend last page", func(t *testing.T) {
		var buf bytes.Buffer
		renderListFooter(&buf, params, &api.ListMeta{Total: 120, LastPage: 5})
		assert.Equal(t, "Page 2 of 5 (120 total)\n", buf.String())
	})

	t.Run("derives last page when backend omits it", func(t *testing.T) {
		var buf bytes.Buffer
		renderListFooter(&buf, params, &api.ListMeta{Total: 60})
		assert.Equal(t, "Page 2 of 3 (60 total)\n", buf.String())
	})

	t.Run("large totals get separators", func(t *testing.T) {
		var buf bytes.Buffer
		renderListFooter(&buf, params, &api.ListMeta{Total: 12345, LastPage: 494})
		assert.Contains(t, buf.String(), "12,345 total")
	})
}

func TestFormatTime(t *testing.T) {
	assert.Empty(t, formatTime(time.Time{}))
	assert.Equal(t, "2026-03-14 09:30",
		formatTime(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)))
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "yes", formatBool(true))
	assert.Equal(t, "no", formatBool(false))
}
