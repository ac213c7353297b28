package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebstarmalala/securion-console/internal/api"
	"github.com/nebstarmalala/securion-console/internal/config"
	"github.com/nebstarmalala/securion-console/internal/entity"
	"github.com/nebstarmalala/securion-console/internal/querycache"
	"github.com/nebstarmalala/securion-console/internal/tui"
)

// findingsBackend serves a mutable findings collection so delete and
// refetch round-trips hit live state.
type findingsBackend struct {
	mu       sync.Mutex
	findings []entity.Finding
}

func (b *findingsBackend) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/findings":
			payload := map[string]any{
				"data": b.findings,
				"meta": api.ListMeta{Total: len(b.findings), Page: 1, PerPage: 100, LastPage: 1},
			}
			require.NoError(t, json.NewEncoder(w).Encode(payload))

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/findings/"):
			id := strings.TrimPrefix(r.URL.Path, "/findings/")
			kept := b.findings[:0]
			for _, f := range b.findings {
				if f.ID != id {
					kept = append(kept, f)
				}
			}
			b.findings = kept
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newBrowseTestApp(t *testing.T, backend http.Handler) *app {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL
	return &app{
		cfg:     cfg,
		deps:    entity.NewDeps(api.NewClient(cfg.API), querycache.NewStore()),
		version: "test",
		output:  "table",
	}
}

func driveModel(t *testing.T, m tui.Model, msgs ...tea.Msg) tui.Model {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	next, ok := model.(tui.Model)
	require.True(t, ok)
	return next
}

func TestBrowseModel_BulkDeleteRemovesRowsFromTable(t *testing.T) {
	backend := &findingsBackend{findings: []entity.Finding{
		{ID: "fnd_1", Title: "sqli in login", Severity: entity.SeverityHigh, Status: entity.StatusOpen},
		{ID: "fnd_2", Title: "xss in search", Severity: entity.SeverityMedium, Status: entity.StatusOpen},
		{ID: "fnd_3", Title: "weak tls config", Severity: entity.SeverityLow, Status: entity.StatusOpen},
	}}
	a := newBrowseTestApp(t, backend.handler(t))

	m, err := browseModel(context.Background(), a, entity.ResourceFindings)
	require.NoError(t, err)
	require.Equal(t, 3, m.FilteredCount())

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	m = driveModel(t, m, space, down, space)
	require.Equal(t, 2, m.SelectionCount())

	// d fires the delete command against the backend.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	var ok bool
	m, ok = next.(tui.Model)
	require.True(t, ok)
	require.NotNil(t, cmd)

	result := cmd()
	bulkMsg, ok := result.(tui.BulkResultMsg)
	require.True(t, ok)
	require.NoError(t, bulkMsg.Err)

	// Feeding the success back schedules a refetch of the collection.
	next, reload := m.Update(bulkMsg)
	m, ok = next.(tui.Model)
	require.True(t, ok)
	require.NotNil(t, reload)

	m = driveModel(t, m, reload())

	assert.Equal(t, 1, m.FilteredCount(), "deleted findings drop out of the table")
	assert.Zero(t, m.SelectionCount())
	assert.Contains(t, m.View(), "weak tls config")
	assert.NotContains(t, m.View(), "sqli in login")
}

func TestBrowseModel_UnknownEntity(t *testing.T) {
	a := newBrowseTestApp(t, http.NotFoundHandler())

	_, err := browseModel(context.Background(), a, "widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity")
}
