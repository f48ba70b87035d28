// Package server re-serves a fetched dependency graph over HTTP: the raw
// graph as JSON and a settled force layout rendered as SVG. It exists so a
// registry without its own visualization can expose one from the CLI.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/soromap/soromap"
	"github.com/soromap/soromap/internal/registry"
)

// settleSteps bounds the headless layout run; the simulation normally cools
// below its movement threshold well before this.
const settleSteps = 300

// surface dimensions for the headless view. Exports use the layout bounding
// box, so these only seed the viewport.
const (
	surfaceWidth  = 1600
	surfaceHeight = 1000
)

// New builds the HTTP handler for a graph snapshot. The layout is settled
// and rendered once up front; requests serve the cached bytes.
func New(logger *log.Logger, g *registry.Graph, counts map[string]int) (http.Handler, error) {
	view := soromap.NewGraphView(surfaceWidth, surfaceHeight)
	view.SetData(g.Nodes, g.Edges, counts)
	view.Settle(settleSteps)

	var svg bytes.Buffer
	if err := view.ExportSVG(&svg); err != nil {
		return nil, err
	}

	graphJSON, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}

	logger.Info("layout settled", "nodes", len(g.Nodes), "edges", len(g.Edges))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/graph.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(graphJSON)
	})
	r.Get("/graph.svg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg.Bytes())
	})

	return r, nil
}

// requestLogger logs one line per request with method, path, and duration.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"elapsed", time.Since(start).Round(time.Millisecond))
		})
	}
}
