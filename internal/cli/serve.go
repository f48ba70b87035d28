package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/soromap/soromap/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settled graph over HTTP",
		Long:  "Fetches the graph once, runs the layout to a settled state, and serves the result as SVG and JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			g, counts, err := fetchGraph(cmd.Context(), logger, cfg)
			if err != nil {
				return err
			}

			handler, err := server.New(logger, g, counts)
			if err != nil {
				return err
			}

			logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
