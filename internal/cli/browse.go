package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
	"github.com/nebstarmalala/securion-console/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <entity>",
		Short: "Browse an entity interactively",
		Long: `Browse opens a full-screen table over one entity collection with
search, column toggles, row selection, and bulk actions.

Supported entities: projects, scopes, findings, cves, webhooks,
notifications, reports, users.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: browsableEntities(),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}
			if !isTerminal(os.Stdout) {
				return fmt.Errorf("browse needs an interactive terminal; use '%s list' instead", args[0])
			}

			ctx := commandContext(cmd)
			model, err := browseModel(ctx, a, args[0])
			if err != nil {
				return err
			}

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = program.Run()
			return err
		},
	}
	return cmd
}

func browsableEntities() []string {
	return []string{
		entity.ResourceProjects, entity.ResourceScopes, entity.ResourceFindings,
		entity.ResourceCVEs, entity.ResourceWebhooks, entity.ResourceNotifications,
		entity.ResourceReports, entity.ResourceUsers,
	}
}

// browseView describes one entity's interactive table: its columns, a
// fetch producing the current rows, and an optional per-row delete. A
// nil remove disables bulk delete for collections that are read-only
// or soft-deleted only.
type browseView struct {
	title   string
	columns []tui.Column
	fetch   func() ([]tui.Row, error)
	remove  func(id string) error
}

// browseModel fetches one large page of the requested entity and builds
// the table model over it. Pagination inside the browser is client-side;
// MaxPageSize rows is plenty for an interactive session. The same fetch
// re-runs after bulk deletes so the table reflects the surviving rows.
func browseModel(ctx context.Context, a *app, name string) (tui.Model, error) {
	view, err := browseViewFor(ctx, a, name)
	if err != nil {
		return tui.Model{}, err
	}

	rows, err := view.fetch()
	if err != nil {
		return tui.Model{}, err
	}

	bulk := tui.BulkHandlers{
		Export: bulkExport(name),
		Reload: reloadCmd(view.fetch),
	}
	if view.remove != nil {
		bulk.Delete = bulkDelete(view.remove)
	}

	return tui.NewModel(view.title, view.columns, rows, a.cfg.Output.PageSize, bulk), nil
}

//nolint:gocognit // One case per browsable entity.
func browseViewFor(ctx context.Context, a *app, name string) (browseView, error) {
	fetchPage := pagination.MaxPageSize

	switch name {
	case entity.ResourceProjects:
		svc := entity.NewProjects(a.deps)
		return browseView{
			title: "Projects",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 12},
				{Key: "name", Title: "Name", Width: 32},
				{Key: "status", Title: "Status", Width: 10},
				{Key: "created", Title: "Created", Width: 16},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.ProjectFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, p := range result.Items {
					rows = append(rows, tui.Row{
						ID:    p.ID,
						Cells: []string{p.ID, p.Name, p.Status, formatTime(p.CreatedAt)},
						Ref:   p,
					})
				}
				return rows, nil
			},
			remove: func(id string) error { return svc.Delete(ctx, id) },
		}, nil

	case entity.ResourceScopes:
		svc := entity.NewScopes(a.deps)
		return browseView{
			title: "Scopes",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 12},
				{Key: "project", Title: "Project", Width: 12},
				{Key: "target", Title: "Target", Width: 32},
				{Key: "type", Title: "Type", Width: 8},
				{Key: "inScope", Title: "In Scope", Width: 8},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.ScopeFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, sc := range result.Items {
					rows = append(rows, tui.Row{
						ID:    sc.ID,
						Cells: []string{sc.ID, sc.ProjectID, sc.Target, sc.Type, formatBool(sc.InScope)},
						Ref:   sc,
					})
				}
				return rows, nil
			},
			remove: func(id string) error { return svc.Delete(ctx, id) },
		}, nil

	case entity.ResourceFindings:
		svc := entity.NewFindings(a.deps)
		return browseView{
			title: "Findings",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 12},
				{Key: "title", Title: "Title", Width: 40},
				{Key: "severity", Title: "Severity", Width: 9},
				{Key: "status", Title: "Status", Width: 14},
				{Key: "cvss", Title: "CVSS", Width: 5},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.FindingFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, f := range result.Items {
					rows = append(rows, tui.Row{
						ID: f.ID,
						Cells: []string{
							f.ID, f.Title, f.Severity, f.Status,
							printer.Sprintf("%.1f", f.CVSS),
						},
						Ref: f,
					})
				}
				return rows, nil
			},
			remove: func(id string) error { return svc.Delete(ctx, id) },
		}, nil

	case entity.ResourceCVEs:
		svc := entity.NewCVEs(a.deps)
		return browseView{
			title: "CVEs",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 16},
				{Key: "severity", Title: "Severity", Width: 9},
				{Key: "score", Title: "Score", Width: 6},
				{Key: "tracked", Title: "Tracked", Width: 7},
				{Key: "published", Title: "Published", Width: 16},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.CVEFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, c := range result.Items {
					rows = append(rows, tui.Row{
						ID: c.ID,
						Cells: []string{
							c.ID, c.Severity, printer.Sprintf("%.1f", c.Score),
							formatBool(c.Tracked), formatTime(c.Published),
						},
						Ref: c,
					})
				}
				return rows, nil
			},
			// CVEs are a read-only feed; only export makes sense in bulk.
		}, nil

	case entity.ResourceWebhooks:
		svc := entity.NewWebhooks(a.deps)
		return browseView{
			title: "Webhooks",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 12},
				{Key: "name", Title: "Name", Width: 24},
				{Key: "url", Title: "URL", Width: 36},
				{Key: "events", Title: "Events", Width: 24},
				{Key: "active", Title: "Active", Width: 6},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.WebhookFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, w := range result.Items {
					rows = append(rows, tui.Row{
						ID: w.ID,
						Cells: []string{
							w.ID, w.Name, w.URL,
							strings.Join(w.Events, ","), formatBool(w.IsActive),
						},
						Ref: w,
					})
				}
				return rows, nil
			},
			remove: func(id string) error { return svc.Delete(ctx, id) },
		}, nil

	case entity.ResourceNotifications:
		svc := entity.NewNotifications(a.deps)
		return browseView{
			title: "Notifications",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 12},
				{Key: "type", Title: "Type", Width: 16},
				{Key: "message", Title: "Message", Width: 48},
				{Key: "read", Title: "Read", Width: 5},
				{Key: "created", Title: "Created", Width: 16},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.NotificationFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, n := range result.Items {
					rows = append(rows, tui.Row{
						ID:    n.ID,
						Cells: []string{n.ID, n.Type, n.Message, formatBool(n.Read), formatTime(n.CreatedAt)},
						Ref:   n,
					})
				}
				return rows, nil
			},
			remove: func(id string) error { return svc.Delete(ctx, id) },
		}, nil

	case entity.ResourceReports:
		svc := entity.NewReports(a.deps)
		return browseView{
			title: "Reports",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 12},
				{Key: "project", Title: "Project", Width: 12},
				{Key: "title", Title: "Title", Width: 30},
				{Key: "format", Title: "Format", Width: 6},
				{Key: "status", Title: "Status", Width: 8},
				{Key: "generated", Title: "Generated", Width: 16},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.ReportFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, r := range result.Items {
					rows = append(rows, tui.Row{
						ID:    r.ID,
						Cells: []string{r.ID, r.ProjectID, r.Title, r.Format, r.Status, formatTime(r.GeneratedAt)},
						Ref:   r,
					})
				}
				return rows, nil
			},
			remove: func(id string) error { return svc.Delete(ctx, id) },
		}, nil

	case entity.ResourceUsers:
		svc := entity.NewUsers(a.deps)
		return browseView{
			title: "Users",
			columns: []tui.Column{
				{Key: "id", Title: "ID", Width: 12},
				{Key: "name", Title: "Name", Width: 24},
				{Key: "email", Title: "Email", Width: 30},
				{Key: "role", Title: "Role", Width: 10},
				{Key: "active", Title: "Active", Width: 6},
			},
			fetch: func() ([]tui.Row, error) {
				result, err := svc.List(ctx, entity.UserFilters{Page: 1, PerPage: fetchPage})
				if err != nil {
					return nil, err
				}
				rows := make([]tui.Row, 0, len(result.Items))
				for _, u := range result.Items {
					rows = append(rows, tui.Row{
						ID:    u.ID,
						Cells: []string{u.ID, u.Name, u.Email, u.Role, formatBool(u.Active)},
						Ref:   u,
					})
				}
				return rows, nil
			},
			// Accounts are deactivated, not bulk-deleted.
		}, nil

	default:
		return browseView{}, fmt.Errorf("unknown entity %q (expected one of %s)", name, strings.Join(browsableEntities(), ", "))
	}
}

// bulkDelete deletes every selected row, stopping at the first failure
// so a partial batch is visible rather than silently swallowed.
func bulkDelete(remove func(id string) error) func([]tui.Row) tea.Cmd {
	return func(rows []tui.Row) tea.Cmd {
		return func() tea.Msg {
			for _, row := range rows {
				if err := remove(row.ID); err != nil {
					return tui.BulkResultMsg{Action: "delete", Err: fmt.Errorf("delete %s: %w", row.ID, err)}
				}
			}
			return tui.BulkResultMsg{Action: "delete"}
		}
	}
}

// reloadCmd refetches the collection and replaces the table rows. The
// delete service calls have already staled the entity's cache subtree,
// so the fetch hits the backend, not the cache.
func reloadCmd(fetch func() ([]tui.Row, error)) tea.Cmd {
	return func() tea.Msg {
		rows, err := fetch()
		if err != nil {
			return tui.BulkResultMsg{Action: "reload", Err: err}
		}
		return tui.RowsMsg{Rows: rows}
	}
}

// bulkExport writes the selected rows' full entity objects as JSON to a
// timestamped file in the working directory.
func bulkExport(name string) func([]tui.Row) tea.Cmd {
	return func(rows []tui.Row) tea.Cmd {
		return func() tea.Msg {
			items := make([]any, 0, len(rows))
			for _, row := range rows {
				items = append(items, row.Ref)
			}
			data, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return tui.BulkResultMsg{Action: "export", Err: err}
			}
			path := fmt.Sprintf("securion-%s-%s.json", name, time.Now().Format("20060102-150405"))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return tui.BulkResultMsg{Action: "export", Err: err}
			}
			return tui.BulkResultMsg{Action: "export"}
		}
	}
}
