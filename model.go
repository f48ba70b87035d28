package soromap

import (
	"math"
	"math/rand"
	"strings"
)

// Network identifies which Stellar network a contract is deployed on.
type Network string

// Recognized network classes.
const (
	NetworkMainnet   Network = "Mainnet"
	NetworkTestnet   Network = "Testnet"
	NetworkFuturenet Network = "Futurenet"
)

// GraphNode is a contract as supplied by the registry API. It carries display
// attributes only; simulation state lives on Node.
type GraphNode struct {
	ID         string   `json:"id"`
	ContractID string   `json:"contract_id"`
	Name       string   `json:"name"`
	Network    Network  `json:"network"`
	IsVerified bool     `json:"is_verified"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// GraphEdge is a dependency between two contracts, referencing nodes by ID.
type GraphEdge struct {
	Source         string `json:"source"`
	Target         string `json:"target"`
	DependencyType string `json:"dependency_type"`
}

// Node is a laid-out graph node: the registry attributes plus derived visual
// attributes and mutable simulation state.
//
// Radius, Critical, and SearchMatch are pure functions of the node attributes,
// the dependent-count map, and the search query. They are computed once in
// buildModel and never mutated independently; changing any input rebuilds the
// whole model.
type Node struct {
	GraphNode

	// DependentCount is the number of incoming edges over the full dataset,
	// supplied by the registry (not derived from the filtered edge set).
	DependentCount int

	Radius      float64
	Critical    bool
	SearchMatch bool

	// Simulation state.
	X, Y   float64
	VX, VY float64

	// Pin override. While pinned the node skips position integration but
	// still exerts forces on its neighbors.
	pinned     bool
	pinX, pinY float64
}

// Pin fixes the node at (x, y), overriding the simulation.
func (n *Node) Pin(x, y float64) {
	n.pinned = true
	n.pinX = x
	n.pinY = y
	n.X = x
	n.Y = y
	n.VX = 0
	n.VY = 0
}

// Unpin releases the pin so the simulation moves the node again.
func (n *Node) Unpin() {
	n.pinned = false
}

// Pinned reports whether the node currently has a pin override.
func (n *Node) Pinned() bool { return n.pinned }

// Edge is a resolved dependency between two nodes present in the model.
type Edge struct {
	Source *Node
	Target *Node
	Type   string
}

// Model is the full set of nodes and edges currently laid out.
type Model struct {
	Nodes []*Node
	Edges []*Edge
	Query string
}

// Derivation constants.
const (
	minRadius         = 4
	maxRadius         = 20
	radiusPerDep      = 2
	criticalThreshold = 5
)

// nodeRadius derives the draw radius from the dependent count.
func nodeRadius(dependentCount int) float64 {
	return clamp(minRadius, maxRadius, minRadius+radiusPerDep*float64(dependentCount))
}

// matchesQuery reports a case-insensitive substring match of query against
// the node's name or ID. An empty query matches nothing.
func matchesQuery(n GraphNode, query string) bool {
	if query == "" {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Name), q) ||
		strings.Contains(strings.ToLower(n.ID), q)
}

// layoutSeed makes initial placement deterministic across rebuilds of the
// same dataset.
const layoutSeed = 42

// buildModel constructs a Model from registry data. Edges referencing a node
// absent from the node set are dropped here, once; nothing re-checks them
// per frame. Positions are seeded on a jittered disc around the origin sized
// by node count, since node identity is not stable across datasets.
func buildModel(nodes []GraphNode, edges []GraphEdge, counts map[string]int, query string) *Model {
	m := &Model{Query: query}
	if len(nodes) == 0 {
		return m
	}

	rng := rand.New(rand.NewSource(layoutSeed))
	spread := 60 + 12*math.Sqrt(float64(len(nodes)))

	byID := make(map[string]*Node, len(nodes))
	for _, gn := range nodes {
		count := counts[gn.ID]
		angle := rng.Float64() * 2 * math.Pi
		dist := math.Sqrt(rng.Float64()) * spread
		n := &Node{
			GraphNode:      gn,
			DependentCount: count,
			Radius:         nodeRadius(count),
			Critical:       count >= criticalThreshold,
			SearchMatch:    matchesQuery(gn, query),
			X:              math.Cos(angle) * dist,
			Y:              math.Sin(angle) * dist,
		}
		m.Nodes = append(m.Nodes, n)
		byID[n.ID] = n
	}

	for _, ge := range edges {
		src, ok := byID[ge.Source]
		if !ok {
			continue
		}
		dst, ok := byID[ge.Target]
		if !ok {
			continue
		}
		m.Edges = append(m.Edges, &Edge{Source: src, Target: dst, Type: ge.DependencyType})
	}
	return m
}

// SearchMatches returns the IDs of nodes matching the active query, in draw
// order.
func (m *Model) SearchMatches() []string {
	var ids []string
	for _, n := range m.Nodes {
		if n.SearchMatch {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// SearchActive reports whether a search query is in effect.
func (m *Model) SearchActive() bool { return m.Query != "" }

// NodeByID returns the node with the given ID, or nil.
func (m *Model) NodeByID(id string) *Node {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
