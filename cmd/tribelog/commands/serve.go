package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gordon0907/ark-tribe-log/internal/database"
	"github.com/gordon0907/ark-tribe-log/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tribe log over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := opts.cfg, opts.logger
			if port != "" {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var pool *pgxpool.Pool
			if cfg.Database != nil {
				if err := database.RunMigrations(ctx, cfg.Database); err != nil {
					return err
				}
				p, err := database.NewPool(ctx, cfg.Database, logger)
				if err != nil {
					return err
				}
				defer p.Close()
				pool = p
			}

			srv, err := server.New(cfg, logger, pool)
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides TRIBELOG_SERVER__PORT)")
	return cmd
}
