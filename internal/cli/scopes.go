package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newScopesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopes",
		Short: "Manage project scope targets",
	}
	cmd.AddCommand(
		newScopesListCmd(),
		newScopesGetCmd(),
		newScopesAddCmd(),
		newScopesUpdateCmd(),
		newScopesRmCmd(),
	)
	return cmd
}

func scopeSorter() *pagination.Sorter[entity.Scope] {
	return pagination.NewSorter[entity.Scope]().
		Register("target", func(a, b entity.Scope) int { return strings.Compare(a.Target, b.Target) }).
		Register("type", func(a, b entity.Scope) int { return strings.Compare(a.Type, b.Type) }).
		Register("createdAt", func(a, b entity.Scope) int { return a.CreatedAt.Compare(b.CreatedAt) })
}

func newScopesListCmd() *cobra.Command {
	sorter := scopeSorter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scope targets",
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
			scopeType, _ := cmd.Flags().GetString("type")

			filters := entity.ScopeFilters{
				ProjectID: projectID,
				Type:      scopeType,
				Page:      params.Page,
				PerPage:   params.PageSize,
			}
			if cmd.Flags().Changed("in-scope") {
				inScope, _ := cmd.Flags().GetBool("in-scope")
				filters.InScope = &inScope
			}

			result, err := entity.NewScopes(a.deps).List(commandContext(cmd), filters)
			if err != nil {
				return err
			}

			items := sorter.Sort(result.Items, params.SortField, params.SortOrder)

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), listPayload{Data: items, Meta: result.Meta})
			}

			rows := make([][]string, 0, len(items))
			for _, sc := range items {
				rows = append(rows, []string{sc.ID, sc.ProjectID, sc.Target, sc.Type, formatBool(sc.InScope)})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "PROJECT", "TARGET", "TYPE", "IN SCOPE"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, sorter.ValidFields())
	cmd.Flags().String("project", "", "filter by project id")
	cmd.Flags().String("type", "", "filter by target type (domain, ip, cidr, url)")
	cmd.Flags().Bool("in-scope", true, "filter by in-scope flag")
	return cmd
}

func newScopesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one scope target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			scope, err := entity.NewScopes(a.deps).Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), scope)
		},
	}
}

func newScopesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <target>",
		Short: "Add a scope target to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			projectID, _ := cmd.Flags().GetString("project")
			scopeType, _ := cmd.Flags().GetString("type")
			notes, _ := cmd.Flags().GetString("notes")
			outOfScope, _ := cmd.Flags().GetBool("out-of-scope")

			input := entity.ScopeInput{
				ProjectID: projectID,
				Target:    args[0],
				Type:      scopeType,
				Notes:     notes,
			}
			if outOfScope {
				inScope := false
				input.InScope = &inScope
			}

			scope, err := entity.NewScopes(a.deps).Create(commandContext(cmd), input)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), scope)
		},
	}
	cmd.Flags().String("project", "", "project id")
	cmd.Flags().String("type", "", "target type (domain, ip, cidr, url)")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().Bool("out-of-scope", false, "record the target as explicitly out of scope")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newScopesUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a scope target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			target, _ := cmd.Flags().GetString("target")
			scopeType, _ := cmd.Flags().GetString("type")
			notes, _ := cmd.Flags().GetString("notes")

			input := entity.ScopeInput{Target: target, Type: scopeType, Notes: notes}
			if cmd.Flags().Changed("in-scope") {
				inScope, _ := cmd.Flags().GetBool("in-scope")
				input.InScope = &inScope
			}

			scope, err := entity.NewScopes(a.deps).Update(commandContext(cmd), args[0], input)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), scope)
		},
	}
	cmd.Flags().String("target", "", "target value")
	cmd.Flags().String("type", "", "target type")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().Bool("in-scope", true, "whether the target is in scope")
	return cmd
}

func newScopesRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a scope target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			if err := entity.NewScopes(a.deps).Delete(commandContext(cmd), args[0]); err != nil {
				return err
			}
			cmd.Println("Removed", args[0])
			return nil
		},
	}
}
