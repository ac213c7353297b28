package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebstarmalala/securion-console/internal/config"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

// executeCommand runs the securion root command with args and captures
// combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd("1.0.0")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// pointBackendAt isolates config to a temp dir and points the CLI at the
// given test server.
func pointBackendAt(t *testing.T, url string) {
	t.Helper()
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Setenv(config.EnvAPIBaseURL, url)
}

func TestRootCmdCommandTree(t *testing.T) {
	root := NewRootCmd("1.0.0")

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{
		"projects", "scopes", "findings", "cves",
		"webhooks", "notifications", "reports", "users",
		"browse", "overview", "config", "version",
	} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmdRejectsNegativeCacheTTL(t *testing.T) {
	pointBackendAt(t, "http://localhost:1")

	_, err := executeCommand(t, "--cache-ttl", "-5", "projects", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache-ttl")
}

func TestListCommandRequiresBaseURL(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Setenv(config.EnvAPIBaseURL, "")

	_, err := executeCommand(t, "projects", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingBaseURL)
}

func TestProjectsListTableOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("status"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "p1", "name": "Acme External", "status": "active"},
				{"id": "p2", "name": "Acme Internal", "status": "active"}
			],
			"meta": {"total": 2, "page": 1, "per_page": 25, "last_page": 1}
		}`))
	}))
	defer server.Close()
	pointBackendAt(t, server.URL)

	out, err := executeCommand(t, "projects", "list", "--status", "open")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme External")
	assert.Contains(t, out, "Acme Internal")
	assert.Contains(t, out, "Page 1 of 1 (2 total)")
}

func TestProjectsListJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{"id": "p1", "name": "Acme External", "status": "active"}],
			"meta": {"total": 1, "page": 1, "per_page": 25, "last_page": 1}
		}`))
	}))
	defer server.Close()
	pointBackendAt(t, server.URL)

	out, err := executeCommand(t, "projects", "list", "-o", "json")
	require.NoError(t, err)

	var payload struct {
		Data []entity.Project `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Data, 1)
	assert.Equal(t, "Acme External", payload.Data[0].Name)
	assert.Equal(t, 1, payload.Meta.Total)
}

func TestListCommandPaginationFlags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "meta": {"total": 0}}`))
	}))
	defer server.Close()
	pointBackendAt(t, server.URL)

	out, err := executeCommand(t, "findings", "list", "--page", "3", "--page-size", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "No results.")
}

func TestListCommandRejectsBadSort(t *testing.T) {
	pointBackendAt(t, "http://localhost:1")

	_, err := executeCommand(t, "findings", "list", "--sort", "severity:sideways")
	require.Error(t, err)
}

func TestFindingsStatusCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/findings/f1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "resolved", body["status"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": "f1", "title": "SQLi", "status": "resolved"}}`))
	}))
	defer server.Close()
	pointBackendAt(t, server.URL)

	out, err := executeCommand(t, "findings", "status", "f1", "resolved")
	require.NoError(t, err)
	assert.Contains(t, out, `"resolved"`)
}

func TestBearerTokenAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "meta": {"total": 0}}`))
	}))
	defer server.Close()
	pointBackendAt(t, server.URL)
	t.Setenv(config.EnvAPIToken, "sekrit")

	_, err := executeCommand(t, "users", "list")
	require.NoError(t, err)
}

func TestVersionCommandWithoutBackend(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Setenv(config.EnvAPIBaseURL, "")

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "securion 1.0.0")
}

func TestVersionCommandReportsBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/meta", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"version": "2.3.0", "min_client_version": "0.9.0"}}`))
	}))
	defer server.Close()
	pointBackendAt(t, server.URL)

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "securion 1.0.0")
	assert.Contains(t, out, "2.3.0")
}

func TestOverviewAggregatesCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		totals := map[string]int{
			"/projects":      4,
			"/scopes":        12,
			"/findings":      37,
			"/cves":          5,
			"/webhooks":      2,
			"/notifications": 9,
			"/reports":       1,
		}
		total := totals[r.URL.Path]
		if r.URL.Path == "/findings" && r.URL.Query().Get("severity") == "critical" {
			total = 3
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "meta": {"total": ` + strconv.Itoa(total) + `}}`))
	}))
	defer server.Close()
	pointBackendAt(t, server.URL)

	out, err := executeCommand(t, "overview", "-o", "json")
	require.NoError(t, err)

	var stats overviewStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 4, stats.Projects)
	assert.Equal(t, 37, stats.Findings)
	assert.Equal(t, 3, stats.OpenCritical)
	assert.Equal(t, 9, stats.UnreadNotifications)
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)
	t.Setenv(config.EnvAPIBaseURL, "")

	out, err := executeCommand(t, "config", "init", "--api-url", "https://api.securion.example")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	// Second init without --force refuses to clobber.
	_, err = executeCommand(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	out, err = executeCommand(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration OK")
}
