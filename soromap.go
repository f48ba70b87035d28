package soromap

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns a copy of the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a straight-alpha 8-bit color for the vector rasterizer.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(0, 255, c.R*255)),
		G: uint8(clamp(0, 255, c.G*255)),
		B: uint8(clamp(0, 255, c.B*255)),
		A: uint8(clamp(0, 255, c.A*255)),
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether the two rectangles overlap. Touching edges
// count as overlapping.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.Width && o.X <= r.X+r.Width &&
		r.Y <= o.Y+o.Height && o.Y <= r.Y+r.Height
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// clamp restricts v to [lo, hi].
func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Palette ---

var (
	// ColorBackground is the canvas clear color.
	ColorBackground = Color{R: 0.059, G: 0.059, B: 0.102, A: 1}

	colorMainnet   = Color{R: 0.314, G: 0.980, B: 0.482, A: 1} // green
	colorTestnet   = Color{R: 0.545, G: 0.914, B: 0.992, A: 1} // cyan
	colorFuturenet = Color{R: 0.741, G: 0.576, B: 0.976, A: 1} // purple

	colorEdge          = Color{R: 0.420, G: 0.502, B: 0.749, A: 0.45}
	colorEdgeHighlight = Color{R: 0.973, G: 0.973, B: 0.949, A: 0.9}
	colorEdgeDimmed    = Color{R: 0.420, G: 0.502, B: 0.749, A: 0.08}

	colorCriticalGlow = Color{R: 1, G: 0.475, B: 0.776, A: 1}
	colorSearchRing   = Color{R: 0.945, G: 0.980, B: 0.549, A: 1}
	colorHoverRing    = Color{R: 0.973, G: 0.973, B: 0.949, A: 1}
	colorVerified     = Color{R: 0.973, G: 0.973, B: 0.949, A: 1}
	colorLabel        = Color{R: 0.973, G: 0.973, B: 0.949, A: 0.85}
)

// networkColor returns the fill color for a node's network class.
func networkColor(n Network) Color {
	switch n {
	case NetworkMainnet:
		return colorMainnet
	case NetworkTestnet:
		return colorTestnet
	case NetworkFuturenet:
		return colorFuturenet
	default:
		return colorTestnet
	}
}

// dimFactor is the opacity applied to nodes and labels that do not match an
// active search query.
const dimFactor = 0.15
