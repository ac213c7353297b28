package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
)

// markerWidth is the width of the selection marker column.
const markerWidth = 2

// Column describes one data table column. Hidden columns keep their
// data but are not rendered; number keys toggle visibility at runtime.
type Column struct {
	Key    string
	Title  string
	Width  int
	Hidden bool
}

// Row is one data table row. Cells align with the full column set,
// hidden columns included. Ref carries the underlying entity value so
// bulk handlers receive full row objects rather than ids.
type Row struct {
	ID    string
	Cells []string
	Ref   any
}

// BulkHandlers are invoked with the currently selected rows. A nil
// handler removes the corresponding action from the bulk bar.
type BulkHandlers struct {
	Delete func(rows []Row) tea.Cmd
	Export func(rows []Row) tea.Cmd

	// Reload refetches the backing collection. It runs after a
	// successful bulk delete so the table stops showing rows that no
	// longer exist; it should deliver a RowsMsg with the fresh rows.
	Reload tea.Cmd
}

// BulkResultMsg reports a completed bulk action. On success the model
// clears the selection: leaving destructive actions pointed at rows
// that may no longer exist invites double fires.
type BulkResultMsg struct {
	Action string
	Err    error
}

// RowsMsg replaces the table's data set, e.g. after a refetch that
// followed a bulk delete.
type RowsMsg struct {
	Rows []Row
}

// Model is the interactive data table: search filter, column
// visibility, row selection with a bulk-action bar, and windowed
// pagination over the filtered rows.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	title   string
	columns []Column
	allRows []Row

	filtered  *pagination.Paginator[Row]
	table     table.Model
	search    textinput.Model
	searching bool

	selected map[string]struct{}
	bulk     BulkHandlers

	status string
	width  int
}

// NewModel builds a data table over rows. pageSize values below 1 fall
// back to the pagination default.
func NewModel(title string, columns []Column, rows []Row, pageSize int, bulk BulkHandlers) Model {
	search := textinput.New()
	search.Placeholder = "type to filter…"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		title:    title,
		columns:  columns,
		allRows:  rows,
		filtered: pagination.NewPaginator(rows, pageSize, 1),
		search:   search,
		selected: make(map[string]struct{}),
		bulk:     bulk,
	}

	m.table = table.New(
		table.WithColumns(m.visibleColumns()),
		table.WithFocused(true),
		table.WithHeight(m.filtered.PageSize()+1),
	)
	m.syncTable()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetWidth(msg.Width)
		return m, nil

	case RowsMsg:
		m.allRows = msg.Rows
		m.applyFilter()
		return m, nil

	case BulkResultMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.Action, msg.Err)
			return m, nil
		}
		m.status = fmt.Sprintf("%s done (%d rows)", msg.Action, len(m.selected))
		m.ClearSelection()
		if msg.Action == "delete" && m.bulk.Reload != nil {
			return m, m.bulk.Reload
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

//nolint:gocognit // Key dispatch inherently branches per binding.
func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
		}
		return m, nil

	case " ":
		m.toggleCurrentRow()
		return m, nil

	case "a":
		for _, row := range m.filtered.Items() {
			m.selected[row.ID] = struct{}{}
		}
		m.syncTable()
		return m, nil

	case "c":
		m.ClearSelection()
		return m, nil

	case "n", "right":
		m.setPage(m.filtered.Page() + 1)
		return m, nil

	case "p", "left":
		m.setPage(m.filtered.Page() - 1)
		return m, nil

	case "g":
		m.setPage(1)
		return m, nil

	case "G":
		m.setPage(m.filtered.TotalPages())
		return m, nil

	case "d":
		if m.bulk.Delete != nil && len(m.selected) > 0 {
			return m, m.bulk.Delete(m.SelectedRows())
		}
		return m, nil

	case "x":
		if m.bulk.Export != nil && len(m.selected) > 0 {
			return m, m.bulk.Export(m.SelectedRows())
		}
		return m, nil
	}

	// Number keys toggle column visibility.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		m.toggleColumn(int(key[0] - '1'))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render(m.title)
	if m.searching || m.search.Value() != "" {
		header += "  " + m.search.View()
	}
	b.WriteString(header + "\n")

	if m.filtered.TotalItems() == 0 {
		b.WriteString(m.emptyView())
	} else {
		b.WriteString(m.table.View() + "\n")
		b.WriteString(m.footerView())
	}

	if bar := m.bulkBarView(); bar != "" {
		b.WriteString("\n" + bar)
	}
	if m.status != "" {
		b.WriteString("\n" + mutedStyle.Render(m.status))
	}

	return b.String()
}

func (m Model) emptyView() string {
	msg := "No results."
	if m.search.Value() != "" {
		msg += "  Press esc to clear the search."
	}
	return emptyStyle.Render(msg) + "\n"
}

func (m Model) footerView() string {
	meta := m.filtered.Meta()
	from := (meta.CurrentPage-1)*meta.PageSize + 1
	to := from + len(m.filtered.Items()) - 1

	control := NewPaginationControl(nil)
	control.CurrentPage = meta.CurrentPage
	control.TotalPages = meta.TotalPages

	return fmt.Sprintf("%s  %s",
		control.View(),
		mutedStyle.Render(fmt.Sprintf("showing %d–%d of %d", from, to, meta.TotalItems)))
}

func (m Model) bulkBarView() string {
	if len(m.selected) == 0 {
		return ""
	}

	var actions []string
	if m.bulk.Delete != nil {
		actions = append(actions, "d delete")
	}
	if m.bulk.Export != nil {
		actions = append(actions, "x export")
	}
	actions = append(actions, "c clear")

	return bulkBarStyle.Render(
		fmt.Sprintf("%d selected — %s", len(m.selected), strings.Join(actions, " · ")))
}

// SelectedRows returns the full row objects for the current selection,
// in filtered order.
func (m Model) SelectedRows() []Row {
	var rows []Row
	for _, row := range m.filteredRows() {
		if _, ok := m.selected[row.ID]; ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// SelectionCount returns the number of selected rows.
func (m Model) SelectionCount() int {
	return len(m.selected)
}

// ClearSelection drops all row selections.
func (m *Model) ClearSelection() {
	m.selected = make(map[string]struct{})
	m.syncTable()
}

// Page returns the current 1-based page.
func (m Model) Page() int {
	return m.filtered.Page()
}

// FilteredCount returns the number of rows matching the search filter.
func (m Model) FilteredCount() int {
	return m.filtered.TotalItems()
}

func (m *Model) toggleCurrentRow() {
	items := m.filtered.Items()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(items) {
		return
	}

	id := items[cursor].ID
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
	} else {
		m.selected[id] = struct{}{}
	}
	m.syncTable()
}

func (m *Model) toggleColumn(i int) {
	if i < 0 || i >= len(m.columns) {
		return
	}
	m.columns[i].Hidden = !m.columns[i].Hidden
	m.table.SetColumns(m.visibleColumns())
	m.syncTable()
}

func (m *Model) setPage(page int) {
	m.filtered.SetPage(page)
	m.syncTable()
	m.table.GotoTop()
}

// applyFilter recomputes the filtered row set from the search query and
// re-clamps the paginator.
func (m *Model) applyFilter() {
	m.filtered.SetItems(m.filteredRows())
	m.syncTable()
	m.table.GotoTop()
}

func (m Model) filteredRows() []Row {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		return m.allRows
	}

	var matched []Row
	for _, row := range m.allRows {
		for i, cell := range row.Cells {
			if i < len(m.columns) && m.columns[i].Hidden {
				continue
			}
			if strings.Contains(strings.ToLower(cell), query) {
				matched = append(matched, row)
				break
			}
		}
	}
	return matched
}

func (m Model) visibleColumns() []table.Column {
	cols := []table.Column{{Title: "", Width: markerWidth}}
	for _, c := range m.columns {
		if c.Hidden {
			continue
		}
		cols = append(cols, table.Column{Title: c.Title, Width: c.Width})
	}
	return cols
}

// syncTable rebuilds the bubbles table rows for the current page,
// selection markers included.
func (m *Model) syncTable() {
	pageRows := m.filtered.Items()
	rows := make([]table.Row, 0, len(pageRows))
	for _, row := range pageRows {
		marker := " "
		if _, ok := m.selected[row.ID]; ok {
			marker = "✓"
		}
		cells := []string{marker}
		for i, cell := range row.Cells {
			if i < len(m.columns) && m.columns[i].Hidden {
				continue
			}
			cells = append(cells, cell)
		}
		rows = append(rows, cells)
	}
	m.table.SetRows(rows)
}
