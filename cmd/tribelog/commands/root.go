package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	"github.com/gordon0907/ark-tribe-log/internal/logging"
)

type rootOptions struct {
	envFile string
	cfg     *config.Config
	logger  zerolog.Logger
	closeFn func() error
}

// NewRootCmd builds the tribelog command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "tribelog",
		Short: "Decode and serve the tribe log of an ARK save file",
		Long: `tribelog reads the TribeLog property out of an .arktribe save file and
shows it most-recent-first, either as a web page and JSON API (serve) or on
the terminal (dump). Configuration comes from TRIBELOG_* environment
variables and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.envFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger, opts.closeFn = logging.New(cfg.Observability, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closeFn != nil {
				return opts.closeFn()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to an optional .env file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newDumpCmd(opts))
	return root
}
