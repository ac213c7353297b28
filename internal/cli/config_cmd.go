package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the securion configuration file",
	}
	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigValidateCmd(),
		newConfigShowCmd(),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil {
				force, _ := cmd.Flags().GetBool("force")
				if !force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			cfg := config.Default()
			if url, _ := cmd.Flags().GetString("api-url"); url != "" {
				cfg.API.BaseURL = url
			}
			if err := cfg.Write(path); err != nil {
				return err
			}
			cmd.Println("Wrote", path)
			return nil
		},
	}
	cmd.Flags().String("api-url", "", "backend base URL to seed the file with")
	cmd.Flags().Bool("force", false, "overwrite an existing file")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			cmd.Println("Configuration OK")
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			shown := *a.cfg
			if shown.API.Token != "" {
				shown.API.Token = "********"
			}
			return renderJSON(cmd.OutOrStdout(), shown)
		},
	}
}
