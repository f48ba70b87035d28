package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/soromap/soromap"
	"github.com/soromap/soromap/internal/registry"
)

// fetchGraph pulls the dependency graph from the registry configured in cfg
// and returns it along with the dependent-count map derived from the full
// edge set.
func fetchGraph(ctx context.Context, logger *log.Logger, cfg Config) (*registry.Graph, map[string]int, error) {
	client := registry.NewClient(cfg.Registry.URL)
	network := soromap.Network(cfg.Registry.Network)

	p := newProgress(logger)
	g, err := client.Graph(ctx, network)
	if err != nil {
		return nil, nil, fmt.Errorf("registry %s: %w", cfg.Registry.URL, err)
	}
	p.done(fmt.Sprintf("fetched graph: %d contracts, %d dependencies", len(g.Nodes), len(g.Edges)))

	return g, registry.DependentCounts(g.Edges), nil
}
