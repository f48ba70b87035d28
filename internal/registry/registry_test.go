package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soromap/soromap"
)

const (
	idToken  = "0e3b2f2a-9b7c-4f7e-9a1d-0c5b8f0a1111"
	idVault  = "1f4c3a3b-8c6d-4e8f-8b2e-1d6c9a1b2222"
	idOracle = "2a5d4b4c-7d5e-4f9a-7c3f-2e7d8b2c3333"
)

const graphBody = `{
	"nodes": [
		{"id": "` + idToken + `", "contract_id": "CTOKEN", "name": "Token", "network": "Mainnet", "is_verified": true, "category": "token", "tags": ["sep-41"]},
		{"id": "` + idVault + `", "contract_id": "CVAULT", "name": "Vault", "network": "Testnet", "is_verified": false}
	],
	"edges": [
		{"source": "` + idVault + `", "target": "` + idToken + `", "dependency_type": "calls"}
	]
}`

func TestClientGraph(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(graphBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	g, err := c.Graph(context.Background(), soromap.NetworkMainnet)
	require.NoError(t, err)

	assert.Equal(t, "/api/contracts/graph", gotPath)
	assert.Equal(t, "network=Mainnet", gotQuery)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, idToken, g.Nodes[0].ID)
	assert.Equal(t, "CTOKEN", g.Nodes[0].ContractID)
	assert.Equal(t, soromap.NetworkMainnet, g.Nodes[0].Network)
	assert.True(t, g.Nodes[0].IsVerified)
	assert.Equal(t, []string{"sep-41"}, g.Nodes[0].Tags)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, idVault, g.Edges[0].Source)
	assert.Equal(t, idToken, g.Edges[0].Target)
	assert.Equal(t, "calls", g.Edges[0].DependencyType)
}

func TestClientGraphNoNetworkFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"nodes": [], "edges": []}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Graph(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestClientGraphBadID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nodes": [{"id": "not-a-uuid", "name": "x"}], "edges": []}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Graph(context.Background(), "")
	assert.Error(t, err)
}

func TestClientGraphServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Graph(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClientStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_contracts": 128, "verified_contracts": 40, "total_publishers": 17}`))
	}))
	defer srv.Close()

	s, err := NewClient(srv.URL).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(128), s.TotalContracts)
	assert.Equal(t, int64(40), s.VerifiedContracts)
	assert.Equal(t, int64(17), s.TotalPublishers)
}

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL).Health(context.Background()))
}

func TestClientHealthUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	assert.Error(t, NewClient(srv.URL).Health(context.Background()))
}

func TestNewClientDefaultURL(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}

func TestDependentCounts(t *testing.T) {
	edges := []soromap.GraphEdge{
		{Source: "a", Target: "b"},
		{Source: "c", Target: "b"},
		{Source: "b", Target: "d"},
		// Dangling edges still count: the map reflects the full dataset,
		// not the subset that survives model construction.
		{Source: "ghost", Target: "b"},
	}
	counts := DependentCounts(edges)
	assert.Equal(t, 3, counts["b"])
	assert.Equal(t, 1, counts["d"])
	assert.Zero(t, counts["a"])
}
