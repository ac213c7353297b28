package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
	"github.com/nebstarmalala/securion-console/internal/entity"
)

func newWebhooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage outbound webhooks",
	}
	cmd.AddCommand(
		newWebhooksListCmd(),
		newWebhooksGetCmd(),
		newWebhooksCreateCmd(),
		newWebhooksUpdateCmd(),
		newWebhooksDeleteCmd(),
		newWebhooksTestCmd(),
		newWebhooksToggleCmd(),
		newWebhooksRegenerateSecretCmd(),
	)
	return cmd
}

func webhookSorter() *pagination.Sorter[entity.Webhook] {
	return pagination.NewSorter[entity.Webhook]().
		Register("name", func(a, b entity.Webhook) int { return strings.Compare(a.Name, b.Name) }).
		Register("url", func(a, b entity.Webhook) int { return strings.Compare(a.URL, b.URL) }).
		Register("createdAt", func(a, b entity.Webhook) int { return a.CreatedAt.Compare(b.CreatedAt) })
}

func newWebhooksListCmd() *cobra.Command {
	sorter := webhookSorter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
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

			event, _ := cmd.Flags().GetString("event")

			filters := entity.WebhookFilters{
				Event:   event,
				Page:    params.Page,
				PerPage: params.PageSize,
			}
			if cmd.Flags().Changed("active") {
				active, _ := cmd.Flags().GetBool("active")
				filters.IsActive = &active
			}

			result, err := entity.NewWebhooks(a.deps).List(commandContext(cmd), filters)
			if err != nil {
				return err
			}

			items := sorter.Sort(result.Items, params.SortField, params.SortOrder)

			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), listPayload{Data: items, Meta: result.Meta})
			}

			rows := make([][]string, 0, len(items))
			for _, w := range items {
				rows = append(rows, []string{
					w.ID, w.Name, w.URL,
					strings.Join(w.Events, ","), formatBool(w.IsActive),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "URL", "EVENTS", "ACTIVE"}, rows)
			renderListFooter(cmd.OutOrStdout(), params, &result.Meta)
			return nil
		},
	}

	addPaginationFlags(cmd, sorter.ValidFields())
	cmd.Flags().String("event", "", "filter by subscribed event")
	cmd.Flags().Bool("active", true, "filter by active flag")
	return cmd
}

func newWebhooksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			webhook, err := entity.NewWebhooks(a.deps).Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), webhook)
		},
	}
}

func newWebhooksCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a webhook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			url, _ := cmd.Flags().GetString("url")
			events, _ := cmd.Flags().GetStringSlice("events")

			webhook, err := entity.NewWebhooks(a.deps).Create(commandContext(cmd), entity.WebhookInput{
				Name:   name,
				URL:    url,
				Events: events,
			})
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), webhook)
		},
	}
	cmd.Flags().String("name", "", "webhook name")
	cmd.Flags().String("url", "", "delivery URL")
	cmd.Flags().StringSlice("events", nil, "events to subscribe to")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newWebhooksUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a webhook",
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
			url, _ := cmd.Flags().GetString("url")
			events, _ := cmd.Flags().GetStringSlice("events")

			input := entity.WebhookInput{Name: name, URL: url, Events: events}
			if cmd.Flags().Changed("active") {
				active, _ := cmd.Flags().GetBool("active")
				input.IsActive = &active
			}

			webhook, err := entity.NewWebhooks(a.deps).Update(commandContext(cmd), args[0], input)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), webhook)
		},
	}
	cmd.Flags().String("name", "", "webhook name")
	cmd.Flags().String("url", "", "delivery URL")
	cmd.Flags().StringSlice("events", nil, "events to subscribe to")
	cmd.Flags().Bool("active", true, "enable or disable the webhook")
	return cmd
}

func newWebhooksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			if err := entity.NewWebhooks(a.deps).Delete(commandContext(cmd), args[0]); err != nil {
				return err
			}
			cmd.Println("Deleted", args[0])
			return nil
		},
	}
}

func newWebhooksTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <id>",
		Short: "Send a test delivery and show the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			delivery, err := entity.NewWebhooks(a.deps).Test(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), delivery)
			}
			if delivery.Success {
				cmd.Printf("Delivery succeeded (HTTP %d)\n", delivery.StatusCode)
			} else {
				cmd.Printf("Delivery failed (HTTP %d)\n", delivery.StatusCode)
			}
			return nil
		},
	}
}

func newWebhooksToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a webhook between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			webhook, err := entity.NewWebhooks(a.deps).Toggle(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), webhook)
		},
	}
}

func newWebhooksRegenerateSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate-secret <id>",
		Short: "Rotate a webhook's signing secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := requireConfigured(a); err != nil {
				return err
			}

			webhook, err := entity.NewWebhooks(a.deps).RegenerateSecret(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), webhook)
		},
	}
}
