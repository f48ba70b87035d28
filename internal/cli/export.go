package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soromap/soromap"
)

// settleSteps bounds the headless simulation run before a snapshot. The
// simulation usually cools below its activity threshold well before this.
const settleSteps = 300

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
		query  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a static snapshot of the dependency graph",
		Long:  "Fetches the graph, runs the layout to a settled state, and writes an SVG or PNG snapshot without opening a window.",
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
			v.SetData(g.Nodes, g.Edges, counts)
			if query != "" {
				v.SetQuery(query)
			}

			p := newProgress(logger)
			v.Settle(settleSteps)
			p.done("layout settled")

			switch format {
			case "svg":
				if out == "" {
					out = cfg.Export.SVGPath
				}
				if out == "" {
					out = soromap.DefaultSVGFilename
				}
				if err := v.ExportSVGFile(out); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
			case "png":
				if out == "" {
					out = cfg.Export.PNGPath
				}
				if out == "" {
					out = soromap.DefaultPNGFilename
				}
				if err := v.ExportPNG(out); err != nil {
					return fmt.Errorf("write png: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want svg or png)", format)
			}

			logger.Info("snapshot written", "path", out, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "snapshot format (svg|png)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path")
	cmd.Flags().StringVarP(&query, "search", "s", "", "highlight contracts matching this query")
	return cmd
}
