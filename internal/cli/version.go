package cli

import (
	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/api"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show CLI and backend versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			cmd.Println("securion", a.version)

			// Backend version is best effort: the CLI version must print
			// even when the backend is unreachable or unconfigured.
			if a.cfg.Validate() != nil {
				return nil
			}
			meta, err := a.deps.API.ServerMeta(commandContext(cmd))
			if err != nil {
				logger.Debug().Err(err).Msg("backend version lookup failed")
				return nil
			}
			cmd.Println("backend ", meta.Version)
			if err := api.CheckCompatibility(meta, a.version); err != nil {
				cmd.PrintErrln("Warning:", err)
			}
			return nil
		},
	}
	return cmd
}
