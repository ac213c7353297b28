package cli

import (
	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "View and acknowledge notifications",
	}
	cmd.AddCommand(
		newNotificationsListCmd(),
		newNotificationsReadCmd(),
		newNotificationsReadAllCmd(),
		newNotificationsDeleteCmd(),
	)
	return cmd
}

func newNotificationsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
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

			notifType, _ := cmd.Flags().GetString("type")

			filters := entity.NotificationFilters{
				Type:    notifType,
				Page:    params.Page,
				PerPage: params.PageSize,
			}
			if unread, _ := cmd.Flags().GetBool("unread"); unread {
				filters.Unread = &unread
			}

			result, err := entity.NewNotifications(a.deps).List(commandContext(cmd), filters)
			if err != nil {
				return err
			}

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), listPayload{Data: result.Items, Meta: result.Meta})
			}

			rows := make([][]string, 0, len(result.Items))
			for _, n := range result.Items {
				rows = append(rows, []string{n.ID, n.Type, n.Message, formatBool(n.Read), formatTime(n.CreatedAt)})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "TYPE", "MESSAGE", "READ", "CREATED"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, nil)
	cmd.Flags().String("type", "", "filter by notification type")
	cmd.Flags().Bool("unread", false, "only unread notifications")
	return cmd
}

func newNotificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			notification, err := entity.NewNotifications(a.deps).MarkRead(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), notification)
		},
	}
}

func newNotificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			if err := entity.NewNotifications(a.deps).MarkAllRead(commandContext(cmd)); err != nil {
				return err
			}
			cmd.Println("All notifications marked read")
			return nil
		},
	}
}

func newNotificationsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			if err := entity.NewNotifications(a.deps).Delete(commandContext(cmd), args[0]); err != nil {
				return err
			}
			cmd.Println("Deleted", args[0])
			return nil
		},
	}
}
