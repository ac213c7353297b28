package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nebstarmalala/securion-console/internal/api"
	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English) //nolint:gochecknoglobals // Shared formatter, stateless after construction.

const (
	outputTable = "table"
	outputJSON  = "json"
)

// renderTable writes an aligned text table.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(headers)

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = strings.Repeat("-", widths[i])
	}
	writeRow(separators)

	for _, row := range rows {
		writeRow(row)
	}
}

// renderListFooter prints the pagination summary under a list table.
func renderListFooter(w io.Writer, params pagination.Params, meta *api.ListMeta) {
	if meta.Total == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	lastPage := meta.LastPage
	if lastPage == 0 {
		lastPage = params.TotalPages(meta.Total)
	}
	fmt.Fprintln(w, printer.Sprintf("Page %d of %d (%d total)", params.Page, lastPage, meta.Total))
}

// renderJSON writes indented JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// listPayload is the JSON shape for list command output.
type listPayload struct {
	Data any          `json:"data"`
	Meta api.ListMeta `json:"meta"`
}

// formatTime renders timestamps compactly, empty for zero times.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// formatBool renders booleans as yes/no for table cells.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
