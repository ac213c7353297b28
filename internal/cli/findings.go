package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newFindingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findings",
		Short: "Manage findings",
	}
	cmd.AddCommand(
		newFindingsListCmd(),
		newFindingsGetCmd(),
		newFindingsCreateCmd(),
		newFindingsUpdateCmd(),
		newFindingsStatusCmd(),
		newFindingsDeleteCmd(),
	)
	return cmd
}

// findingSorter orders findings client-side. Severity sorts by rank so
// critical always comes before high regardless of lexical order.
func findingSorter() *pagination.Sorter[entity.Finding] {
	return pagination.NewSorter[entity.Finding]().
		Register("title", func(a, b entity.Finding) int { return strings.Compare(a.Title, b.Title) }).
		Register("severity", func(a, b entity.Finding) int {
			return entity.SeverityRank(a.Severity) - entity.SeverityRank(b.Severity)
		}).
		Register("status", func(a, b entity.Finding) int { return strings.Compare(a.Status, b.Status) }).
		Register("cvss", func(a, b entity.Finding) int {
			switch {
			case a.CVSS < b.CVSS:
				return -1
			case a.CVSS > b.CVSS:
				return 1
			default:
				return 0
			}
		}).
		Register("createdAt", func(a, b entity.Finding) int { return a.CreatedAt.Compare(b.CreatedAt) })
}

func newFindingsListCmd() *cobra.Command {
	sorter := findingSorter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List findings",
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
			severity, _ := cmd.Flags().GetString("severity")
			status, _ := cmd.Flags().GetString("status")
			search, _ := cmd.Flags().GetString("search")

			result, err := entity.NewFindings(a.deps).List(commandContext(cmd), entity.FindingFilters{
				ProjectID: projectID,
				Severity:  severity,
				Status:    status,
				Search:    search,
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
			for _, f := range items {
				rows = append(rows, []string{
					f.ID, f.Title, f.Severity, f.Status,
					printer.Sprintf("%.1f", f.CVSS), formatTime(f.CreatedAt),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "TITLE", "SEVERITY", "STATUS", "CVSS", "CREATED"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, sorter.ValidFields())
	cmd.Flags().String("project", "", "filter by project id")
	cmd.Flags().String("severity", "", "filter by severity (info, low, medium, high, critical)")
	cmd.Flags().String("status", "", "filter by status (open, triaged, resolved, closed, false_positive)")
	cmd.Flags().String("search", "", "filter by title or description")
	return cmd
}

func newFindingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one finding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			finding, err := entity.NewFindings(a.deps).Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), finding)
		},
	}
}

func newFindingsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a finding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			projectID, _ := cmd.Flags().GetString("project")
			scopeID, _ := cmd.Flags().GetString("scope")
			title, _ := cmd.Flags().GetString("title")
			severity, _ := cmd.Flags().GetString("severity")
			cvss, _ := cmd.Flags().GetFloat64("cvss")
			description, _ := cmd.Flags().GetString("description")

			finding, err := entity.NewFindings(a.deps).Create(commandContext(cmd), entity.FindingInput{
				ProjectID:   projectID,
				ScopeID:     scopeID,
				Title:       title,
				Severity:    severity,
				CVSS:        cvss,
				Description: description,
			})
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), finding)
		},
	}
	cmd.Flags().String("project", "", "project id")
	cmd.Flags().String("scope", "", "scope id the finding was observed on")
	cmd.Flags().String("title", "", "finding title")
	cmd.Flags().String("severity", entity.SeverityMedium, "severity")
	cmd.Flags().Float64("cvss", 0, "CVSS score")
	cmd.Flags().String("description", "", "finding description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newFindingsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a finding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			title, _ := cmd.Flags().GetString("title")
			severity, _ := cmd.Flags().GetString("severity")
			cvss, _ := cmd.Flags().GetFloat64("cvss")
			description, _ := cmd.Flags().GetString("description")

			finding, err := entity.NewFindings(a.deps).Update(commandContext(cmd), args[0], entity.FindingInput{
				Title:       title,
				Severity:    severity,
				CVSS:        cvss,
				Description: description,
			})
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), finding)
		},
	}
	cmd.Flags().String("title", "", "finding title")
	cmd.Flags().String("severity", "", "severity")
	cmd.Flags().Float64("cvss", 0, "CVSS score")
	cmd.Flags().String("description", "", "finding description")
	return cmd
}

func newFindingsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a finding through the triage workflow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			finding, err := entity.NewFindings(a.deps).UpdateStatus(commandContext(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), finding)
		},
	}
}

func newFindingsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a finding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			if err := entity.NewFindings(a.deps).Delete(commandContext(cmd), args[0]); err != nil {
				return err
			}
			cmd.Println("Deleted", args[0])
			return nil
		},
	}
}
