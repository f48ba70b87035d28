// Package soromap renders a directed graph of Soroban contract dependencies
// as an interactive, force-laid-out diagram on [Ebitengine].
//
// A [GraphView] owns the layout model and a cooling force simulation that
// positions nodes under repulsion, link springs, centering, and collision.
// The user pans, zooms, hovers, clicks, and drags nodes; dragged nodes are
// pinned while the rest of the layout reacts. The current layout can be
// exported as a self-contained SVG or an oversampled PNG.
//
// # Quick start
//
//	view := soromap.NewGraphView(1280, 800)
//	view.SetData(nodes, edges, counts)
//	view.OnSelect = func(n *soromap.Node) { ... }
//	soromap.Run(view, soromap.RunConfig{Title: "dependency graph"})
//
// For headless use (export, serving), skip Run and settle the layout
// directly:
//
//	view.Settle(300)
//	view.ExportSVGFile("dependency-graph.svg")
//
// Data is supplied by the contract registry API; the client lives in
// internal/registry and is wired up by the soromap CLI.
//
// [Ebitengine]: https://ebitengine.org
package soromap
