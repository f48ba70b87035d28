package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOptions carries flags shared by every command.
type rootOptions struct {
	configPath string
	apiURL     string
	network    string
}

// config resolves the effective configuration: file values overridden by
// any flags that were set.
func (o *rootOptions) config() (Config, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.apiURL != "" {
		cfg.Registry.URL = o.apiURL
	}
	if o.network != "" {
		cfg.Registry.Network = o.network
	}
	return cfg, nil
}

// Execute runs the soromap CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "soromap",
		Short:        "soromap visualizes Soroban contract dependency graphs",
		Long:         `soromap fetches the dependency graph from a Soroban contract registry and renders it as an interactive force-directed diagram, a static SVG or PNG snapshot, or a small HTTP service.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("soromap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (TOML)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "registry API URL")
	root.PersistentFlags().StringVar(&opts.network, "network", "", "filter to one network (Mainnet|Testnet|Futurenet)")

	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newStatsCmd(opts))

	return root.ExecuteContext(context.Background())
}
