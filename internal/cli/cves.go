package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newCVEsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cves",
		Short: "Browse and track CVEs",
	}
	cmd.AddCommand(
		newCVEsListCmd(),
		newCVEsGetCmd(),
		newCVEsTrackCmd(),
		newCVEsUntrackCmd(),
	)
	return cmd
}

func cveSorter() *pagination.Sorter[entity.CVE] {
	return pagination.NewSorter[entity.CVE]().
		Register("id", func(a, b entity.CVE) int { return strings.Compare(a.ID, b.ID) }).
		Register("score", func(a, b entity.CVE) int {
			switch {
			case a.Score < b.Score:
				return -1
			case a.Score > b.Score:
				return 1
			default:
				return 0
			}
		}).
		Register("severity", func(a, b entity.CVE) int {
			return entity.SeverityRank(a.Severity) - entity.SeverityRank(b.Severity)
		}).
		Register("published", func(a, b entity.CVE) int { return a.Published.Compare(b.Published) })
}

func newCVEsListCmd() *cobra.Command {
	sorter := cveSorter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List CVEs",
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

			severity, _ := cmd.Flags().GetString("severity")
			minScore, _ := cmd.Flags().GetFloat64("min-score")
			search, _ := cmd.Flags().GetString("search")

			filters := entity.CVEFilters{
				Severity: severity,
				MinScore: minScore,
				Search:   search,
				Page:     params.Page,
				PerPage:  params.PageSize,
			}
			if cmd.Flags().Changed("tracked") {
				tracked, _ := cmd.Flags().GetBool("tracked")
				filters.Tracked = &tracked
			}

			result, err := entity.NewCVEs(a.deps).List(commandContext(cmd), filters)
			if err != nil {
				return err
			}

			items := sorter.Sort(result.Items, params.SortField, params.SortOrder)

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), listPayload{Data: items, Meta: result.Meta})
			}

			rows := make([][]string, 0, len(items))
			for _, c := range items {
				rows = append(rows, []string{
					c.ID, c.Severity, printer.Sprintf("%.1f", c.Score),
					formatBool(c.Tracked), formatTime(c.Published),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "SEVERITY", "SCORE", "TRACKED", "PUBLISHED"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, sorter.ValidFields())
	cmd.Flags().String("severity", "", "filter by severity")
	cmd.Flags().Float64("min-score", 0, "minimum CVSS score")
	cmd.Flags().Bool("tracked", false, "filter by tracked flag")
	cmd.Flags().String("search", "", "filter by id or summary")
	return cmd
}

func newCVEsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <cve-id>",
		Short: "Show one CVE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			cve, err := entity.NewCVEs(a.deps).Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), cve)
		},
	}
}

func newCVEsTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <cve-id>",
		Short: "Start tracking a CVE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			cve, err := entity.NewCVEs(a.deps).Track(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), cve)
		},
	}
}

func newCVEsUntrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untrack <cve-id>",
		Short: "Stop tracking a CVE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			cve, err := entity.NewCVEs(a.deps).Untrack(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), cve)
		},
	}
}
