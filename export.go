package soromap

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Export constants.
const (
	exportPadding = 60.0
	// DefaultSVGFilename is the fixed download name for vector exports.
	DefaultSVGFilename = "dependency-graph.svg"
	// DefaultPNGFilename is the fixed download name for raster exports.
	DefaultPNGFilename = "dependency-graph.png"
)

// boundingBox computes the tight bounds over all node circles. ok is false
// for an empty model, in which case exports are no-ops.
func boundingBox(m *Model) (box Rect, ok bool) {
	if len(m.Nodes) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range m.Nodes {
		minX = math.Min(minX, n.X-n.Radius)
		minY = math.Min(minY, n.Y-n.Radius)
		maxX = math.Max(maxX, n.X+n.Radius)
		maxY = math.Max(maxY, n.Y+n.Radius)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// escapeText escapes the five reserved markup characters for SVG text and
// attribute content.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// svgColor formats a Color as an rgb() triple; opacity is emitted separately.
func svgColor(c Color) string {
	r := c.toRGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", r.R, r.G, r.B)
}

// WriteSVG emits the current layout as a self-contained SVG document with a
// tight bounding box plus fixed padding. It snapshots the model only: the
// live viewport transform and any search or hover emphasis are ignored, so a
// dimmed edge on screen still exports at full strength. An empty model
// writes nothing.
func WriteSVG(m *Model, w io.Writer) error {
	box, ok := boundingBox(m)
	if !ok {
		return nil
	}
	width, height := exportSize(m)
	ox := -box.X + exportPadding
	oy := -box.Y + exportPadding

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", svgColor(ColorBackground))
	fmt.Fprintf(&b, `<defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="%.0f" markerHeight="%.0f" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker></defs>`+"\n",
		arrowLength, arrowLength, svgColor(colorEdge))

	for _, e := range m.Edges {
		dx := e.Target.X - e.Source.X
		dy := e.Target.Y - e.Source.Y
		d := math.Hypot(dx, dy)
		if d < 1e-6 {
			continue
		}
		// End the line at the arrow tip so the marker lands clear of the
		// target circle.
		tipX := e.Target.X - dx/d*(e.Target.Radius+arrowGap)
		tipY := e.Target.Y - dy/d*(e.Target.Radius+arrowGap)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.2f" marker-end="url(#arrow)"/>`+"\n",
			e.Source.X+ox, e.Source.Y+oy, tipX+ox, tipY+oy, svgColor(colorEdge), colorEdge.A)
	}

	for _, n := range m.Nodes {
		cx, cy := n.X+ox, n.Y+oy
		if n.Critical {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2" stroke-opacity="0.4"/>`+"\n",
				cx, cy, n.Radius+4, svgColor(colorCriticalGlow))
		}
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			cx, cy, n.Radius, svgColor(networkColor(n.Network)))
		if n.Radius >= labelMinR {
			fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.0f" fill="%s" text-anchor="middle">%s</text>`+"\n",
				cx, cy+n.Radius+14, labelFontSize, svgColor(colorLabel), escapeText(truncateLabel(n.Name)))
		}
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// exportSize returns the padded document dimensions for the current layout.
func exportSize(m *Model) (width, height float64) {
	box, ok := boundingBox(m)
	if !ok {
		return 0, 0
	}
	return box.Width + 2*exportPadding, box.Height + 2*exportPadding
}
