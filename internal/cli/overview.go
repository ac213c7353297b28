package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nebstarmalala/securion-console/internal/entity"
)

// overviewStats is the dashboard summary: entity totals plus the counts
// that need attention first.
type overviewStats struct {
	Projects            int `json:"projects"`
	Scopes              int `json:"scopes"`
	Findings            int `json:"findings"`
	OpenCritical        int `json:"open_critical_findings"`
	TrackedCVEs         int `json:"tracked_cves"`
	ActiveWebhooks      int `json:"active_webhooks"`
	UnreadNotifications int `json:"unread_notifications"`
	PendingReports      int `json:"pending_reports"`
}

func newOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show a summary across all entities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			stats, err := collectOverview(commandContext(cmd), a)
			if err != nil {
				return err
			}

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), stats)
			}

			rows := [][]string{
				{"Projects", printer.Sprintf("%d", stats.Projects)},
				{"Scope targets", printer.Sprintf("%d", stats.Scopes)},
				{"Findings", printer.Sprintf("%d", stats.Findings)},
				{"Open critical findings", printer.Sprintf("%d", stats.OpenCritical)},
				{"Tracked CVEs", printer.Sprintf("%d", stats.TrackedCVEs)},
				{"Active webhooks", printer.Sprintf("%d", stats.ActiveWebhooks)},
				{"Unread notifications", printer.Sprintf("%d", stats.UnreadNotifications)},
				{"Pending reports", printer.Sprintf("%d", stats.PendingReports)},
			}
			renderTable(cmd.OutOrStdout(), []string{"METRIC", "COUNT"}, rows)
			return nil
		},
	}
}

// collectOverview issues the count queries concurrently. Each query asks
// for a single row; the total comes from the list metadata.
func collectOverview(ctx context.Context, a *app) (*overviewStats, error) {
	var stats overviewStats
	boolPtr := func(b bool) *bool { return &b }

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := entity.NewProjects(a.deps).List(ctx, entity.ProjectFilters{Page: 1, PerPage: 1})
		if err != nil {
			return err
		}
		stats.Projects = result.Meta.Total
		return nil
	})
	g.Go(func() error {
		result, err := entity.NewScopes(a.deps).List(ctx, entity.ScopeFilters{Page: 1, PerPage: 1})
		if err != nil {
			return err
		}
		stats.Scopes = result.Meta.Total
		return nil
	})
	g.Go(func() error {
		result, err := entity.NewFindings(a.deps).List(ctx, entity.FindingFilters{Page: 1, PerPage: 1})
		if err != nil {
			return err
		}
		stats.Findings = result.Meta.Total
		return nil
	})
	g.Go(func() error {
		result, err := entity.NewFindings(a.deps).List(ctx, entity.FindingFilters{
			Severity: entity.SeverityCritical,
			Status:   entity.StatusOpen,
			Page:     1,
			PerPage:  1,
		})
		if err != nil {
			return err
		}
		stats.OpenCritical = result.Meta.Total
		return nil
	})
	g.Go(func() error {
		result, err := entity.NewCVEs(a.deps).List(ctx, entity.CVEFilters{
			Tracked: boolPtr(true),
			Page:    1,
			PerPage: 1,
		})
		if err != nil {
			return err
		}
		stats.TrackedCVEs = result.Meta.Total
		return nil
	})
	g.Go(func() error {
		result, err := entity.NewWebhooks(a.deps).List(ctx, entity.WebhookFilters{
			IsActive: boolPtr(true),
			Page:     1,
			PerPage:  1,
		})
		if err != nil {
			return err
		}
		stats.ActiveWebhooks = result.Meta.Total
		return nil
	})
	g.Go(func() error {
		result, err := entity.NewNotifications(a.deps).List(ctx, entity.NotificationFilters{
			Unread:  boolPtr(true),
			Page:    1,
			PerPage: 1,
		})
		if err != nil {
			return err
		}
		stats.UnreadNotifications = result.Meta.Total
		return nil
	})
	g.Go(func() error {
		result, err := entity.NewReports(a.deps).List(ctx, entity.ReportFilters{
			Status:  "pending",
			Page:    1,
			PerPage: 1,
		})
		if err != nil {
			return err
		}
		stats.PendingReports = result.Meta.Total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
