package soromap

import (
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// GraphView is an interactive force-laid-out dependency graph. It owns the
// layout model and simulation; its interaction layer owns the viewport
// transform and pin state. Everything runs on the ebiten game loop: Update
// is the simulation/input tick, Draw renders once per display frame.
//
// The zero value is not usable; construct with NewGraphView.
type GraphView struct {
	model *Model
	sim   *Simulation
	vp    *Viewport
	in    *interaction
	rend  *renderer

	// OnSelect is invoked with the clicked node, or nil when the user
	// clicks empty space (deselection).
	OnSelect func(*Node)

	// ShowFPS enables the frame-rate overlay.
	ShowFPS bool

	// Source data, kept so query changes can rebuild the model.
	srcNodes []GraphNode
	srcEdges []GraphEdge
	counts   map[string]int
	query    string

	injectQueue []syntheticPointerEvent

	stopped  bool
	disposed bool
}

// NewGraphView creates an empty view with the given surface size. Call
// SetData to load a graph, then either hand the view to Run for a window or
// drive it headlessly with Settle and the exporters.
func NewGraphView(width, height int) *GraphView {
	v := &GraphView{
		model: buildModel(nil, nil, nil, ""),
		vp:    newViewport(float64(width), float64(height)),
		rend:  newRenderer(),
	}
	v.sim = newSimulation(v.model)
	v.in = &interaction{view: v}
	return v
}

// SetData replaces the dataset and rebuilds the layout from scratch. counts
// maps node ID to its dependent count over the full dataset. Positions are
// re-seeded; node identity is not carried across datasets.
func (v *GraphView) SetData(nodes []GraphNode, edges []GraphEdge, counts map[string]int) {
	v.srcNodes = nodes
	v.srcEdges = edges
	v.counts = counts
	v.rebuild()
}

// SetQuery sets the active search query and rebuilds the model. The rebuild
// is deliberately full: match flags are derived at construction time, so
// in-progress positions and pins are discarded.
func (v *GraphView) SetQuery(query string) {
	v.query = query
	v.rebuild()
}

// Query returns the active search query.
func (v *GraphView) Query() string { return v.query }

// rebuild stops the running simulation and replaces model and simulation.
func (v *GraphView) rebuild() {
	v.model = buildModel(v.srcNodes, v.srcEdges, v.counts, v.query)
	v.sim = newSimulation(v.model)
	v.in = &interaction{view: v}
}

// Model exposes the current layout model for read-only inspection.
func (v *GraphView) Model() *Model { return v.model }

// Viewport exposes the current transform for read-only inspection.
func (v *GraphView) Viewport() *Viewport { return v.vp }

// Hovered returns the node currently under the pointer, or nil.
func (v *GraphView) Hovered() *Node { return v.in.hovered }

// --- Lifecycle ---

// Stop freezes the view: subsequent Update and Draw calls are no-ops.
// Idempotent.
func (v *GraphView) Stop() { v.stopped = true }

// Resume undoes Stop on a non-disposed view.
func (v *GraphView) Resume() {
	if !v.disposed {
		v.stopped = false
	}
}

// Dispose permanently stops the view and releases the model. Idempotent.
func (v *GraphView) Dispose() {
	v.stopped = true
	v.disposed = true
	v.model = buildModel(nil, nil, nil, "")
	v.sim = newSimulation(v.model)
}

// --- ebiten.Game ---

// Update advances one tick: navigation tweens, one simulation step, then
// pointer input. The step completes before input so a render never observes
// a half-integrated model.
func (v *GraphView) Update() error {
	if v.stopped {
		return nil
	}
	v.vp.update(float32(1.0 / float64(ebiten.TPS())))
	v.sim.Step()
	v.in.processInput()
	return nil
}

// Draw renders the scene for this display frame.
func (v *GraphView) Draw(screen *ebiten.Image) {
	if v.stopped {
		return
	}
	v.rend.draw(screen, v.model, v.vp, v.in.hovered)
	if v.ShowFPS {
		drawFPSOverlay(screen)
	}
}

// Layout sizes the drawing surface to the window at the device pixel ratio.
func (v *GraphView) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := ebiten.Monitor().DeviceScaleFactor()
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	if float64(w) != v.vp.Width || float64(h) != v.vp.Height {
		v.vp.Resize(float64(w), float64(h))
	}
	return w, h
}

// --- Control surface ---

// ZoomIn magnifies about the visible center, animated.
func (v *GraphView) ZoomIn() { v.vp.ZoomIn() }

// ZoomOut reduces about the visible center, animated.
func (v *GraphView) ZoomOut() { v.vp.ZoomOut() }

// ResetView animates back to the centered identity transform.
func (v *GraphView) ResetView() { v.vp.Reset() }

// FocusNode animates the viewport so the node with the given ID lands at the
// center at focus zoom. Unknown IDs are ignored.
func (v *GraphView) FocusNode(id string) {
	if n := v.model.NodeByID(id); n != nil {
		v.vp.FocusOn(n.X, n.Y)
	}
}

// SearchMatches returns the IDs of nodes matching the active query.
func (v *GraphView) SearchMatches() []string {
	return v.model.SearchMatches()
}

// Settle advances the simulation up to maxSteps or until it cools below the
// movement threshold. Used for headless export and serving, where no game
// loop drives Update.
func (v *GraphView) Settle(maxSteps int) {
	for i := 0; i < maxSteps && v.sim.Active(); i++ {
		v.sim.Step()
		if v.sim.Alpha() < alphaMin {
			return
		}
	}
}

// ExportSVG writes a vector snapshot of the current layout.
func (v *GraphView) ExportSVG(w io.Writer) error {
	return WriteSVG(v.model, w)
}

// ExportSVGFile writes the vector snapshot to path, defaulting to
// DefaultSVGFilename when path is empty.
func (v *GraphView) ExportSVGFile(path string) error {
	if path == "" {
		path = DefaultSVGFilename
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(v.model, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportPNG writes a raster snapshot to path, defaulting to
// DefaultPNGFilename when path is empty.
func (v *GraphView) ExportPNG(path string) error {
	if path == "" {
		path = DefaultPNGFilename
	}
	return v.rend.renderPNG(v.model, path)
}

// emitSelect fires the selection callback. n is nil for deselection.
func (v *GraphView) emitSelect(n *Node) {
	if v.OnSelect != nil {
		v.OnSelect(n)
	}
}

// --- Run ---

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and drives the view until it is closed. Blocks until
// the window closes or an error occurs.
func Run(v *GraphView, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Title == "" {
		cfg.Title = "soromap"
	}
	v.ShowFPS = cfg.ShowFPS
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}
