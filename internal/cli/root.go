// Package cli wires the securion command tree: per-entity CRUD
// commands, the interactive browser, the overview dashboard, and config
// management.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nebstarmalala/securion-console/internal/api"
	"github.com/nebstarmalala/securion-console/internal/config"
	"github.com/nebstarmalala/securion-console/internal/entity"
	"github.com/nebstarmalala/securion-console/internal/logging"
	"github.com/nebstarmalala/securion-console/internal/querycache"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app carries the per-invocation state every subcommand needs.
type app struct {
	cfg     *config.Config
	deps    entity.Deps
	version string
	output  string
}

type appCtxKey struct{}

// appFrom returns the app state attached by the root PersistentPreRunE.
func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appCtxKey{}).(*app)
	if !ok {
		return nil, fmt.Errorf("command %q executed without initialized app state", cmd.Name())
	}
	return a, nil
}

// NewRootCmd creates the root Cobra command for the securion CLI.
// It wires config loading, logging, the query cache, the API client,
// and all subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "securion",
		Short:   "Securion security-testing console",
		Long:    "Securion: manage projects, scopes, findings, CVEs, webhooks, and reports from the terminal",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}

			setupLogging(cmd, cfg)

			noCache, _ := cmd.Flags().GetBool("no-cache")
			cache := querycache.Disabled()
			if cfg.Cache.Enabled && !noCache {
				cache = querycache.NewStore(
					querycache.WithTTL(cfg.CacheTTL(cacheTTL)),
					querycache.WithMaxEntries(cfg.Cache.MaxEntries),
				)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = cfg.Output.Format
			}

			a := &app{
				cfg:     cfg,
				deps:    entity.NewDeps(api.NewClient(cfg.API), cache),
				version: ver,
				output:  output,
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appCtxKey{}, a))

			logger.Info().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command started")
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table or json")
	cmd.PersistentFlags().Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the query cache for this invocation")

	cmd.AddCommand(
		newProjectsCmd(),
		newScopesCmd(),
		newFindingsCmd(),
		newCVEsCmd(),
		newWebhooksCmd(),
		newNotificationsCmd(),
		newReportsCmd(),
		newUsersCmd(),
		newBrowseCmd(),
		newOverviewCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

const rootCmdExample = `  # List open critical findings for a project
  securion findings list --project prj_42 --severity critical --status open

  # Browse webhooks interactively
  securion browse webhooks

  # Rotate a webhook secret
  securion webhooks regenerate-secret wh_7`

// requireConfigured ensures the backend URL is set before a command
// that talks to the API runs.
func requireConfigured(a *app) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("%w (run 'securion config init' or set %s)", err, config.EnvAPIBaseURL)
	}
	return nil
}

// commandContext returns the command context with a trace ID and the
// CLI logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	return logger.WithContext(ctx)
}

// confirm prompts on the command's input stream and accepts y/yes.
func confirm(cmd *cobra.Command, prompt string) bool {
	cmd.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
