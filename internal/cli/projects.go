package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage security-testing projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(),
		newProjectsGetCmd(),
		newProjectsCreateCmd(),
		newProjectsUpdateCmd(),
		newProjectsDeleteCmd(),
		newProjectsArchiveCmd(),
	)
	return cmd
}

// projectSorter orders project rows client-side.
func projectSorter() *pagination.Sorter[entity.Project] {
	return pagination.NewSorter[entity.Project]().
		Register("name", func(a, b entity.Project) int { return strings.Compare(a.Name, b.Name) }).
		Register("status", func(a, b entity.Project) int { return strings.Compare(a.Status, b.Status) }).
		Register("createdAt", func(a, b entity.Project) int { return a.CreatedAt.Compare(b.CreatedAt) })
}

func newProjectsListCmd() *cobra.Command {
	sorter := projectSorter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
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

			status, _ := cmd.Flags().GetString("status")
			search, _ := cmd.Flags().GetString("search")

			result, err := entity.NewProjects(a.deps).List(commandContext(cmd), entity.ProjectFilters{
				Status:  status,
				Search:  search,
				Page:    params.Page,
				PerPage: params.PageSize,
			})
			if err != nil {
				return err
			}

			items := sorter.Sort(result.Items, params.SortField, params.SortOrder)

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), listPayload{Data: items, Meta: result.Meta})
			}

			rows := make([][]string, 0, len(items))
			for _, p := range items {
				rows = append(rows, []string{p.ID, p.Name, p.Status, formatTime(p.CreatedAt)})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "STATUS", "CREATED"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, sorter.ValidFields())
	cmd.Flags().String("status", "", "filter by status")
	cmd.Flags().String("search", "", "filter by name or description")
	return cmd
}

func newProjectsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			project, err := entity.NewProjects(a.deps).Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), project)
		},
	}
}

func newProjectsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")

			project, err := entity.NewProjects(a.deps).Create(commandContext(cmd), entity.ProjectInput{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), project)
		},
	}
	cmd.Flags().String("name", "", "project name")
	cmd.Flags().String("description", "", "project description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			status, _ := cmd.Flags().GetString("status")

			project, err := entity.NewProjects(a.deps).Update(commandContext(cmd), args[0], entity.ProjectInput{
				Name:        name,
				Description: description,
				Status:      status,
			})
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), project)
		},
	}
	cmd.Flags().String("name", "", "project name")
	cmd.Flags().String("description", "", "project description")
	cmd.Flags().String("status", "", "project status")
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && isTerminal(os.Stdin) {
				if !confirm(cmd, "Delete project "+args[0]+" and all its scopes, findings, and reports?") {
					return nil
				}
			}

			if err := entity.NewProjects(a.deps).Delete(commandContext(cmd), args[0]); err != nil {
				return err
			}
			cmd.Println("Deleted", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	return cmd
}

func newProjectsArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			project, err := entity.NewProjects(a.deps).Archive(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), project)
		},
	}
}
