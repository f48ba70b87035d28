package soromap

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- nodeRadius ---

func TestNodeRadius(t *testing.T) {
	tests := []struct {
		name       string
		dependents int
		expect     float64
	}{
		{"zero dependents floor", 0, 4},
		{"one dependent", 1, 6},
		{"three dependents", 3, 10},
		{"eight dependents cap boundary", 8, 20},
		{"many dependents capped", 50, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "nodeRadius", nodeRadius(tt.dependents), tt.expect)
		})
	}
}

// --- matchesQuery ---

func TestMatchesQuery(t *testing.T) {
	node := GraphNode{ID: "abc-123", Name: "Vault Factory"}
	tests := []struct {
		name   string
		query  string
		expect bool
	}{
		{"empty query matches nothing", "", false},
		{"exact name", "Vault Factory", true},
		{"substring of name", "vault", true},
		{"case insensitive", "VAULT", true},
		{"matches id", "abc", true},
		{"matches id case insensitive", "ABC-123", true},
		{"no match", "oracle", false},
		{"partial across fields", "factoryabc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesQuery(node, tt.query)
			if got != tt.expect {
				t.Errorf("matchesQuery(%q) = %v, want %v", tt.query, got, tt.expect)
			}
		})
	}
}

// --- buildModel ---

func testGraph() ([]GraphNode, []GraphEdge, map[string]int) {
	nodes := []GraphNode{
		{ID: "a", Name: "Token A", Network: NetworkMainnet},
		{ID: "b", Name: "Vault B", Network: NetworkTestnet},
		{ID: "c", Name: "Oracle C", Network: NetworkMainnet},
	}
	edges := []GraphEdge{
		{Source: "a", Target: "b", DependencyType: "calls"},
		{Source: "c", Target: "b", DependencyType: "calls"},
		{Source: "a", Target: "x", DependencyType: "calls"}, // dangling target
		{Source: "x", Target: "c", DependencyType: "calls"}, // dangling source
	}
	counts := map[string]int{"b": 2, "c": 1}
	return nodes, edges, counts
}

func TestBuildModelDropsDanglingEdges(t *testing.T) {
	nodes, edges, counts := testGraph()
	m := buildModel(nodes, edges, counts, "")
	if len(m.Nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(m.Nodes))
	}
	if len(m.Edges) != 2 {
		t.Fatalf("edge count = %d, want 2 (dangling edges dropped)", len(m.Edges))
	}
	for _, e := range m.Edges {
		if e.Target.ID != "b" {
			t.Errorf("unexpected surviving edge target %q", e.Target.ID)
		}
	}
}

func TestBuildModelDerivations(t *testing.T) {
	nodes := []GraphNode{
		{ID: "hub", Name: "Hub"},
		{ID: "leaf", Name: "Leaf"},
	}
	counts := map[string]int{"hub": 6}
	m := buildModel(nodes, nil, counts, "")

	hub := m.NodeByID("hub")
	leaf := m.NodeByID("leaf")
	if hub == nil || leaf == nil {
		t.Fatal("nodes not found by ID")
	}
	assertNear(t, "hub radius", hub.Radius, 16)
	if !hub.Critical {
		t.Error("hub with 6 dependents should be critical")
	}
	assertNear(t, "leaf radius", leaf.Radius, 4)
	if leaf.Critical {
		t.Error("leaf with 0 dependents should not be critical")
	}
}

func TestBuildModelDeterministicPlacement(t *testing.T) {
	nodes, edges, counts := testGraph()
	m1 := buildModel(nodes, edges, counts, "")
	m2 := buildModel(nodes, edges, counts, "")
	for i := range m1.Nodes {
		if m1.Nodes[i].X != m2.Nodes[i].X || m1.Nodes[i].Y != m2.Nodes[i].Y {
			t.Errorf("node %s placed at (%v,%v) vs (%v,%v) across rebuilds",
				m1.Nodes[i].ID, m1.Nodes[i].X, m1.Nodes[i].Y, m2.Nodes[i].X, m2.Nodes[i].Y)
		}
	}
}

func TestBuildModelEmpty(t *testing.T) {
	m := buildModel(nil, nil, nil, "")
	if len(m.Nodes) != 0 || len(m.Edges) != 0 {
		t.Errorf("empty input produced %d nodes, %d edges", len(m.Nodes), len(m.Edges))
	}
}

// --- search ---

func TestSearchMatches(t *testing.T) {
	nodes, edges, counts := testGraph()
	m := buildModel(nodes, edges, counts, "vault")
	ids := m.SearchMatches()
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("SearchMatches() = %v, want [b]", ids)
	}
	if !m.SearchActive() {
		t.Error("SearchActive() = false with a query set")
	}
}

func TestSearchInactiveWithEmptyQuery(t *testing.T) {
	nodes, edges, counts := testGraph()
	m := buildModel(nodes, edges, counts, "")
	if m.SearchActive() {
		t.Error("SearchActive() = true with empty query")
	}
	if ids := m.SearchMatches(); len(ids) != 0 {
		t.Errorf("SearchMatches() = %v, want empty", ids)
	}
}

// --- pinning ---

func TestNodePin(t *testing.T) {
	n := &Node{X: 10, Y: 20, VX: 3, VY: -3}
	n.Pin(50, 60)
	if !n.Pinned() {
		t.Fatal("Pinned() = false after Pin")
	}
	assertNear(t, "X", n.X, 50)
	assertNear(t, "Y", n.Y, 60)
	assertNear(t, "VX", n.VX, 0)
	assertNear(t, "VY", n.VY, 0)
	n.Unpin()
	if n.Pinned() {
		t.Error("Pinned() = true after Unpin")
	}
}

// --- NodeByID ---

func TestNodeByIDUnknown(t *testing.T) {
	nodes, edges, counts := testGraph()
	m := buildModel(nodes, edges, counts, "")
	if n := m.NodeByID("missing"); n != nil {
		t.Errorf("NodeByID(missing) = %v, want nil", n)
	}
}
