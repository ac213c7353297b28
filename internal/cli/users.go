package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage console accounts",
	}
	cmd.AddCommand(
		newUsersListCmd(),
		newUsersGetCmd(),
		newUsersCreateCmd(),
		newUsersUpdateCmd(),
		newUsersDeactivateCmd(),
	)
	return cmd
}

func userSorter() *pagination.Sorter[entity.User] {
	return pagination.NewSorter[entity.User]().
		Register("name", func(a, b entity.User) int { return strings.Compare(a.Name, b.Name) }).
		Register("email", func(a, b entity.User) int { return strings.Compare(a.Email, b.Email) }).
		Register("role", func(a, b entity.User) int { return strings.Compare(a.Role, b.Role) })
}

func newUsersListCmd() *cobra.Command {
	sorter := userSorter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
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

			role, _ := cmd.Flags().GetString("role")

			filters := entity.UserFilters{
				Role:    role,
				Page:    params.Page,
				PerPage: params.PageSize,
			}
			if cmd.Flags().Changed("active") {
				active, _ := cmd.Flags().GetBool("active")
				filters.Active = &active
			}

			result, err := entity.NewUsers(a.deps).List(commandContext(cmd), filters)
			if err != nil {
				return err
			}

			items := sorter.Sort(result.Items, params.SortField, params.SortOrder)

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), listPayload{Data: items, Meta: result.Meta})
			}

			rows := make([][]string, 0, len(items))
			for _, u := range items {
				rows = append(rows, []string{u.ID, u.Name, u.Email, u.Role, formatBool(u.Active)})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, sorter.ValidFields())
	cmd.Flags().String("role", "", "filter by role")
	cmd.Flags().Bool("active", true, "filter by active flag")
	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			user, err := entity.NewUsers(a.deps).Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), user)
		},
	}
}

func newUsersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			role, _ := cmd.Flags().GetString("role")

			user, err := entity.NewUsers(a.deps).Create(commandContext(cmd), entity.UserInput{
				Name:  name,
				Email: email,
				Role:  role,
			})
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), user)
		},
	}
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("role", "", "account role")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUsersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user",
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
			email, _ := cmd.Flags().GetString("email")
			role, _ := cmd.Flags().GetString("role")

			user, err := entity.NewUsers(a.deps).Update(commandContext(cmd), args[0], entity.UserInput{
				Name:  name,
				Email: email,
				Role:  role,
			})
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), user)
		},
	}
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("role", "", "account role")
	return cmd
}

func newUsersDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			user, err := entity.NewUsers(a.deps).Deactivate(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), user)
		},
	}
}
