package cli

import (
	"github.com/spf13/cobra"

	"github.com/soromap/soromap"
)

func newViewCmd(opts *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive dependency graph window",
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

			v := soromap.NewGraphView(cfg.Window.Width, cfg.Window.Height)
			v.ShowFPS = cfg.Window.ShowFPS
			v.SetData(g.Nodes, g.Edges, counts)
			if query != "" {
				v.SetQuery(query)
			}
			v.OnSelect = func(n *soromap.Node) {
				if n == nil {
					logger.Debug("selection cleared")
					return
				}
				logger.Info("selected contract",
					"name", n.Name,
					"contract_id", n.ContractID,
					"network", n.Network,
					"dependents", n.DependentCount,
				)
			}

			return soromap.Run(v, soromap.RunConfig{
				Title:   "soromap",
				Width:   cfg.Window.Width,
				Height:  cfg.Window.Height,
				ShowFPS: cfg.Window.ShowFPS,
			})
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "highlight contracts matching this query")
	return cmd
}
