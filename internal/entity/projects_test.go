package entity

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_DeleteCrossInvalidates(t *testing.T) {
	b := newCountingBackend(t)
	b.respond("/projects", http.StatusOK, listEnvelope([]Project{{ID: "prj_1", Name: "acme"}}, 1))
	b.respond("/scopes", http.StatusOK, listEnvelope([]Scope{{ID: "sc_1", ProjectID: "prj_1"}}, 1))
	b.respond("/findings", http.StatusOK, listEnvelope([]Finding{{ID: "fnd_1", ProjectID: "prj_1"}}, 1))
	b.mux.HandleFunc("/projects/prj_1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	})

	deps := newTestDeps(t, b)
	projects := NewProjects(deps)
	scopes := NewScopes(deps)
	findings := NewFindings(deps)
	ctx := context.Background()

	// Warm all three list caches.
	_, err := projects.List(ctx, ProjectFilters{})
	require.NoError(t, err)
	_, err = scopes.List(ctx, ScopeFilters{ProjectID: "prj_1"})
	require.NoError(t, err)
	_, err = findings.List(ctx, FindingFilters{ProjectID: "prj_1"})
	require.NoError(t, err)

	require.NoError(t, projects.Delete(ctx, "prj_1"))

	// The project's dependents went stale too: all three lists refetch.
	_, err = projects.List(ctx, ProjectFilters{})
	require.NoError(t, err)
	_, err = scopes.List(ctx, ScopeFilters{ProjectID: "prj_1"})
	require.NoError(t, err)
	_, err = findings.List(ctx, FindingFilters{ProjectID: "prj_1"})
	require.NoError(t, err)

	assert.Equal(t, 2, b.Hits("GET /projects"))
	assert.Equal(t, 2, b.Hits("GET /scopes"))
	assert.Equal(t, 2, b.Hits("GET /findings"))
}

func TestProjects_ListFiltersReachBackend(t *testing.T) {
	b := newCountingBackend(t)
	b.mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "meta": {"total": 0}}`))
	})

	svc := NewProjects(newTestDeps(t, b))

	_, err := svc.List(context.Background(), ProjectFilters{Status: "active", Page: 2, PerPage: 10})
	require.NoError(t, err)
}

func TestNotifications_MarkAllReadStalesSubtree(t *testing.T) {
	b := newCountingBackend(t)
	b.respond("/notifications", http.StatusOK, listEnvelope([]Notification{{ID: "ntf_1"}}, 1))
	b.respond("/notifications/read-all", http.StatusOK, nil)

	svc := NewNotifications(newTestDeps(t, b))
	ctx := context.Background()

	unread := true
	_, err := svc.List(ctx, NotificationFilters{})
	require.NoError(t, err)
	_, err = svc.List(ctx, NotificationFilters{Unread: &unread})
	require.NoError(t, err)
	require.Equal(t, 2, b.Hits("GET /notifications"))

	require.NoError(t, svc.MarkAllRead(ctx))

	// Every cached notification page is stale now.
	_, err = svc.List(ctx, NotificationFilters{})
	require.NoError(t, err)
	_, err = svc.List(ctx, NotificationFilters{Unread: &unread})
	require.NoError(t, err)
	assert.Equal(t, 4, b.Hits("GET /notifications"))
}

func TestFindings_UpdateStatus(t *testing.T) {
	b := newCountingBackend(t)
	b.respond("/findings/fnd_1", http.StatusOK, detailEnvelope(Finding{
		ID: "fnd_1", Title: "SQLi in login", Status: StatusTriaged,
	}))

	svc := NewFindings(newTestDeps(t, b))

	finding, err := svc.UpdateStatus(context.Background(), "fnd_1", StatusTriaged)
	require.NoError(t, err)
	assert.Equal(t, StatusTriaged, finding.Status)
	assert.Equal(t, 1, b.Hits("PUT /findings/fnd_1"))
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityRank(SeverityCritical), SeverityRank(SeverityHigh))
	assert.Less(t, SeverityRank(SeverityHigh), SeverityRank(SeverityMedium))
	assert.Less(t, SeverityRank(SeverityMedium), SeverityRank(SeverityLow))
	assert.Less(t, SeverityRank(SeverityLow), SeverityRank(SeverityInfo))
	assert.Greater(t, SeverityRank("unknown"), SeverityRank(SeverityInfo))
}
