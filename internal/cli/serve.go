package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/logging"
	"github.com/rshade/voltwise/internal/server"
)

// NewServeCmd creates the "serve" command.
func NewServeCmd() *cobra.Command {
	var (
		address string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimate API over HTTP",
		Long: `Serve the estimate API over HTTP until interrupted.

Routes:
  POST /v1/estimate[?days=N]     estimate a household
  GET  /v1/housing-types         list supported housing types
  GET  /v1/housing-types/{type}  describe one housing type
  GET  /healthz                  liveness probe`,
		Example: `  voltwise serve
  voltwise serve --address 127.0.0.1:9090 --allowed-origin https://example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			serverCfg := cfg.Server
			if cmd.Flags().Changed("address") {
				serverCfg.Address = address
			}
			if cmd.Flags().Changed("allowed-origin") {
				serverCfg.AllowedOrigins = origins
			}
			if err := serverCfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srvLogger := logging.ComponentLogger(*logging.FromContext(ctx), "server")
			return server.New(serverCfg, srvLogger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address (default from config)")
	cmd.Flags().StringSliceVar(&origins, "allowed-origin", nil, "CORS allowed origin (repeatable, default from config)")

	return cmd
}
