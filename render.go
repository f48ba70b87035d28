package soromap

import (
	"bytes"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Rendering constants.
const (
	pulseStep     = 0.02 // radians advanced per frame
	arrowLength   = 8.0  // simulation units
	arrowHalfW    = 3.0
	arrowGap      = 3.0 // arrow tip sits at targetRadius + arrowGap
	labelMinR     = 6.0 // nodes smaller than this draw no label
	labelMaxRunes = 15
	labelFontSize = 11.0
)

// renderer draws the full scene from the current model and viewport once per
// display frame, independent of the simulation's own cadence. The pulse
// phase for critical-node glows is renderer state so it keeps advancing even
// when the layout has settled.
type renderer struct {
	pulse      float64
	fontSource *text.GoTextFaceSource
}

// newRenderer parses the embedded label font. A parse failure is non-fatal:
// labels are simply skipped.
func newRenderer() *renderer {
	r := &renderer{}
	if src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err == nil {
		r.fontSource = src
	}
	return r
}

// draw clears the surface and renders the live scene under the viewport
// transform, with hover and search emphasis.
func (r *renderer) draw(dst *ebiten.Image, m *Model, vp *Viewport, hovered *Node) {
	r.pulse += pulseStep
	dst.Fill(ColorBackground.toRGBA())
	r.drawScene(dst, m, vp.Scale, vp.TX, vp.TY, hovered, m.SearchActive(), r.pulse)
}

// cullMargin covers glow rings, labels, and stroke widths that extend past
// a node's circle, in surface pixels.
const cullMargin = 40.0

// drawScene renders edges then nodes under surface = sim*scale + (tx, ty).
// It is shared between the live renderer and the raster exporter; the
// exporter passes a nil hovered node, searchActive false, and pulse 0.
// Anything entirely outside the destination surface is skipped.
func (r *renderer) drawScene(dst *ebiten.Image, m *Model, scale, tx, ty float64, hovered *Node, searchActive bool, pulse float64) {
	b := dst.Bounds()
	view := Rect{
		X: float64(b.Min.X), Y: float64(b.Min.Y),
		Width: float64(b.Dx()), Height: float64(b.Dy()),
	}.Expand(cullMargin)

	for _, e := range m.Edges {
		sx, sy := e.Source.X*scale+tx, e.Source.Y*scale+ty
		ex, ey := e.Target.X*scale+tx, e.Target.Y*scale+ty
		span := Rect{
			X: math.Min(sx, ex), Y: math.Min(sy, ey),
			Width: math.Abs(ex - sx), Height: math.Abs(ey - sy),
		}
		if !span.Intersects(view) {
			continue
		}
		r.drawEdge(dst, e, scale, tx, ty, hovered, searchActive)
	}
	for _, n := range m.Nodes {
		if !view.Expand(n.Radius * scale).Contains(n.X*scale+tx, n.Y*scale+ty) {
			continue
		}
		r.drawNode(dst, n, scale, tx, ty, hovered, searchActive, pulse)
	}
}

// drawEdge draws the line and arrowhead for one dependency. The arrow tip is
// pulled back to targetRadius+arrowGap from the target center so it never
// disappears under the target circle.
func (r *renderer) drawEdge(dst *ebiten.Image, e *Edge, scale, tx, ty float64, hovered *Node, searchActive bool) {
	dx := e.Target.X - e.Source.X
	dy := e.Target.Y - e.Source.Y
	d := math.Hypot(dx, dy)
	if d < 1e-6 {
		return
	}
	ux, uy := dx/d, dy/d

	tipX := e.Target.X - ux*(e.Target.Radius+arrowGap)
	tipY := e.Target.Y - uy*(e.Target.Radius+arrowGap)
	baseX := tipX - ux*arrowLength
	baseY := tipY - uy*arrowLength

	clr := colorEdge
	width := 1.0
	switch {
	case hovered != nil && (e.Source == hovered || e.Target == hovered):
		clr = colorEdgeHighlight
		width = 2.0
	case searchActive && !e.Source.SearchMatch && !e.Target.SearchMatch:
		clr = colorEdgeDimmed
	}

	sx0, sy0 := e.Source.X*scale+tx, e.Source.Y*scale+ty
	bx, by := baseX*scale+tx, baseY*scale+ty
	px, py := tipX*scale+tx, tipY*scale+ty

	vector.StrokeLine(dst, float32(sx0), float32(sy0), float32(bx), float32(by),
		float32(width*scale), clr.toRGBA(), true)

	// Arrowhead: filled triangle oriented along the edge.
	wx, wy := -uy*arrowHalfW, ux*arrowHalfW
	fillTriangle(dst,
		px, py,
		(baseX+wx)*scale+tx, (baseY+wy)*scale+ty,
		(baseX-wx)*scale+tx, (baseY-wy)*scale+ty,
		clr)
}

// drawNode draws one node: glow and accent rings first, then the main circle
// on top, then the verified badge and label.
func (r *renderer) drawNode(dst *ebiten.Image, n *Node, scale, tx, ty float64, hovered *Node, searchActive bool, pulse float64) {
	cx := float32(n.X*scale + tx)
	cy := float32(n.Y*scale + ty)
	radius := float32(n.Radius * scale)
	dimmed := searchActive && !n.SearchMatch

	if n.Critical {
		// Cosmetic pulsing ring; never feeds back into the layout.
		wave := math.Sin(pulse * 3)
		glowR := radius + float32((4+2*wave)*scale)
		glow := colorCriticalGlow.WithAlpha(0.25 + 0.15*wave)
		vector.StrokeCircle(dst, cx, cy, glowR, float32(2*scale), glow.toRGBA(), true)
	}
	if searchActive && n.SearchMatch {
		vector.StrokeCircle(dst, cx, cy, radius+float32(3*scale), float32(2*scale),
			colorSearchRing.toRGBA(), true)
	}
	if n == hovered {
		vector.StrokeCircle(dst, cx, cy, radius+float32(4*scale), float32(2*scale),
			colorHoverRing.toRGBA(), true)
	}

	fill := networkColor(n.Network)
	if dimmed {
		fill = fill.WithAlpha(dimFactor)
	}
	vector.DrawFilledCircle(dst, cx, cy, radius, fill.toRGBA(), true)

	if n.IsVerified && !dimmed && n.Radius >= labelMinR {
		vector.DrawFilledCircle(dst, cx+radius*0.6, cy-radius*0.6, float32(2.5*scale),
			colorVerified.toRGBA(), true)
	}

	if n.Radius >= labelMinR && !dimmed && r.fontSource != nil {
		r.drawLabel(dst, truncateLabel(n.Name), float64(cx), float64(cy)+float64(radius), scale)
	}
}

// drawLabel renders a centered label just below the node circle.
func (r *renderer) drawLabel(dst *ebiten.Image, label string, cx, top, scale float64) {
	face := &text.GoTextFace{Source: r.fontSource, Size: labelFontSize * scale}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, top+4*scale)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.Scale(
		float32(colorLabel.R), float32(colorLabel.G),
		float32(colorLabel.B), float32(colorLabel.A))
	text.Draw(dst, label, face, op)
}

// truncateLabel cuts a label to labelMaxRunes runes, appending an ellipsis
// when anything was cut.
func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= labelMaxRunes {
		return s
	}
	return string(runes[:labelMaxRunes]) + "…"
}

// whitePixel is a shared 1x1 image backing solid triangle fills.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(Color{1, 1, 1, 1}.toRGBA())
	}
	return whitePixel
}

// fillTriangle draws a solid triangle via DrawTriangles on the shared white
// pixel.
func fillTriangle(dst *ebiten.Image, x0, y0, x1, y1, x2, y2 float64, clr Color) {
	cr := float32(clr.R * clr.A)
	cg := float32(clr.G * clr.A)
	cb := float32(clr.B * clr.A)
	ca := float32(clr.A)
	verts := []ebiten.Vertex{
		{DstX: float32(x0), DstY: float32(y0), SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		{DstX: float32(x1), DstY: float32(y1), SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		{DstX: float32(x2), DstY: float32(y2), SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	}
	inds := []uint16{0, 1, 2}
	var op ebiten.DrawTrianglesOptions
	dst.DrawTriangles(verts, inds, ensureWhitePixel(), &op)
}
