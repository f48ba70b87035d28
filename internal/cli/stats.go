package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/soromap/soromap/internal/registry"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print registry statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			client := registry.NewClient(cfg.Registry.URL)
			if err := client.Health(cmd.Context()); err != nil {
				return err
			}
			s, err := client.Stats(cmd.Context())
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			green := color.New(color.FgGreen)

			out := cmd.OutOrStdout()
			bold.Fprintln(out, "Soroban Contract Registry")
			fmt.Fprintf(out, "  %s %s\n", bold.Sprint("URL:"), cfg.Registry.URL)
			fmt.Fprintf(out, "  %s %d\n", bold.Sprint("Contracts:"), s.TotalContracts)
			fmt.Fprintf(out, "  %s %s\n", bold.Sprint("Verified:"), green.Sprintf("%d", s.VerifiedContracts))
			fmt.Fprintf(out, "  %s %d\n", bold.Sprint("Publishers:"), s.TotalPublishers)
			return nil
		},
	}
	return cmd
}
