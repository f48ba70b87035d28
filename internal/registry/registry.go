// Package registry is the HTTP client for the Soroban contract registry API,
// the collaborator that supplies graph data to the viewer. It fetches the
// dependency graph, registry statistics, and derives the dependent-count map
// the layout model needs.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/soromap/soromap"
)

// DefaultBaseURL matches the registry backend's local default.
const DefaultBaseURL = "http://localhost:3001"

// EnvBaseURL names the environment variable overriding the API URL.
const EnvBaseURL = "SOROBAN_REGISTRY_API_URL"

// Graph is the registry's dependency-graph response, already converted to
// the viewer's input types.
type Graph struct {
	Nodes []soromap.GraphNode `json:"nodes"`
	Edges []soromap.GraphEdge `json:"edges"`
}

// Stats summarizes the registry contents.
type Stats struct {
	TotalContracts    int64 `json:"total_contracts"`
	VerifiedContracts int64 `json:"verified_contracts"`
	TotalPublishers   int64 `json:"total_publishers"`
}

// Client talks to the registry API. The zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, falling back to
// DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// wireNode is the registry's node representation. IDs are UUIDs on the wire;
// they are canonicalized to strings for the viewer.
type wireNode struct {
	ID         uuid.UUID       `json:"id"`
	ContractID string          `json:"contract_id"`
	Name       string          `json:"name"`
	Network    soromap.Network `json:"network"`
	IsVerified bool            `json:"is_verified"`
	Category   string          `json:"category"`
	Tags       []string        `json:"tags"`
}

type wireEdge struct {
	Source         uuid.UUID `json:"source"`
	Target         uuid.UUID `json:"target"`
	DependencyType string    `json:"dependency_type"`
}

type wireGraph struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

// Graph fetches the dependency graph, optionally filtered to one network
// (empty network means all).
func (c *Client) Graph(ctx context.Context, network soromap.Network) (*Graph, error) {
	endpoint := c.baseURL + "/api/contracts/graph"
	if network != "" {
		endpoint += "?network=" + url.QueryEscape(string(network))
	}

	var wire wireGraph
	if err := c.getJSON(ctx, endpoint, &wire); err != nil {
		return nil, fmt.Errorf("fetch graph: %w", err)
	}

	g := &Graph{
		Nodes: make([]soromap.GraphNode, 0, len(wire.Nodes)),
		Edges: make([]soromap.GraphEdge, 0, len(wire.Edges)),
	}
	for _, n := range wire.Nodes {
		g.Nodes = append(g.Nodes, soromap.GraphNode{
			ID:         n.ID.String(),
			ContractID: n.ContractID,
			Name:       n.Name,
			Network:    n.Network,
			IsVerified: n.IsVerified,
			Category:   n.Category,
			Tags:       n.Tags,
		})
	}
	for _, e := range wire.Edges {
		g.Edges = append(g.Edges, soromap.GraphEdge{
			Source:         e.Source.String(),
			Target:         e.Target.String(),
			DependencyType: e.DependencyType,
		})
	}
	return g, nil
}

// Stats fetches registry statistics.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.getJSON(ctx, c.baseURL+"/api/stats", &s); err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	return &s, nil
}

// Health checks the registry's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: unexpected status %s", resp.Status)
	}
	return nil
}

// getJSON performs a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", endpoint, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// DependentCounts counts incoming edges per node over the FULL edge set,
// before any dangling-edge filtering. The layout derives node radius and
// criticality from these counts, so they must reflect the whole dataset,
// not just the currently displayed subset.
func DependentCounts(edges []soromap.GraphEdge) map[string]int {
	counts := make(map[string]int, len(edges))
	for _, e := range edges {
		counts[e.Target]++
	}
	return counts
}
