package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage findings reports",
	}
	cmd.AddCommand(
		newReportsListCmd(),
		newReportsGetCmd(),
		newReportsGenerateCmd(),
		newReportsRmCmd(),
	)
	return cmd
}

func reportSorter() *pagination.Sorter[entity.Report] {
	return pagination.NewSorter[entity.Report]().
		Register("title", func(a, b entity.Report) int { return strings.Compare(a.Title, b.Title) }).
		Register("status", func(a, b entity.Report) int { return strings.Compare(a.Status, b.Status) }).
		Register("generatedAt", func(a, b entity.Report) int { return a.GeneratedAt.Compare(b.GeneratedAt) })
}

func newReportsListCmd() *cobra.Command {
	sorter := reportSorter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			params, err := paginationFromFlags(cmd, a.cfg.Output.PageSize)
			if err != nil {
				return err
			}

			projectID, _ := cmd.Flags().GetString("project")
			status, _ := cmd.Flags().GetString("status")

			result, err := entity.NewReports(a.deps).List(commandContext(cmd), entity.ReportFilters{
				ProjectID: projectID,
				Status:    status,
				Page:      params.Page,
				PerPage:   params.PageSize,
			})
			if err != nil {
				return err
			}

			items := sorter.Sort(result.Items, params.SortField, params.SortOrder)

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), listPayload{Data: items, Meta: result.Meta})
			}

			rows := make([][]string, 0, len(items))
			for _, r := range items {
				rows = append(rows, []string{r.ID, r.ProjectID, r.Title, r.Format, r.Status, formatTime(r.GeneratedAt)})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "PROJECT", "TITLE", "FORMAT", "STATUS", "GENERATED"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, sorter.ValidFields())
	cmd.Flags().String("project", "", "filter by project id")
	cmd.Flags().String("status", "", "filter by status (pending, ready, failed)")
	return cmd
}

func newReportsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			report, err := entity.NewReports(a.deps).Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), report)
		},
	}
}

func newReportsGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report for a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			projectID, _ := cmd.Flags().GetString("project")
			format, _ := cmd.Flags().GetString("format")

			report, err := entity.NewReports(a.deps).Generate(commandContext(cmd), projectID, format)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().String("project", "", "project id")
	cmd.Flags().String("format", "pdf", "report format (pdf, html, json)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newReportsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			if err := entity.NewReports(a.deps).Delete(commandContext(cmd), args[0]); err != nil {
				return err
			}
			cmd.Println("Deleted", args[0])
			return nil
		},
	}
}
