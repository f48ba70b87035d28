package soromap

import "math"

// Simulation cools a Model toward a settled layout under four forces:
// many-body repulsion, link attraction, centering, and collision. The alpha
// coefficient scales every step and decays geometrically toward alphaTarget;
// raising the target (during drag) keeps the layout warm.
//
// All strength constants are tiered by graph size at construction so large
// graphs stay spatially contained and settle sooner.
type Simulation struct {
	model *Model

	alpha       float64
	alphaTarget float64
	alphaDecay  float64

	repulsion    float64
	linkDistance float64
	collidePad   float64

	active bool
}

const (
	alphaMin       = 0.001
	velocityDamp   = 0.6
	centerStrength = 0.05
	dragAlpha      = 0.3
)

// newSimulation builds a simulation tuned for the model's size. An empty
// model produces an inactive simulation that never steps.
func newSimulation(m *Model) *Simulation {
	s := &Simulation{
		model:  m,
		alpha:  1,
		active: len(m.Nodes) > 0,
	}
	n := len(m.Nodes)
	switch {
	case n > 1000:
		s.repulsion = -80
		s.linkDistance = 60
	case n > 200:
		s.repulsion = -150
		s.linkDistance = 80
	default:
		s.repulsion = -200
		s.linkDistance = 100
	}
	if n > 200 {
		s.collidePad = 6
	} else {
		s.collidePad = 8
	}
	if n > 600 {
		s.alphaDecay = 0.04
	} else {
		s.alphaDecay = 0.0228
	}
	return s
}

// Alpha returns the current cooling coefficient.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Active reports whether the simulation has nodes to move.
func (s *Simulation) Active() bool { return s.active }

// SetAlphaTarget raises or lowers the value alpha decays toward. The drag
// interaction sets it to dragAlpha on press and back to 0 on release.
func (s *Simulation) SetAlphaTarget(t float64) {
	s.alphaTarget = t
}

// Reheat restarts cooling from full energy, used after a model rebuild.
func (s *Simulation) Reheat() {
	s.alpha = 1
	s.active = len(s.model.Nodes) > 0
}

// Step advances the simulation by one tick: decay alpha, accumulate force
// velocities, then integrate positions. Pinned nodes keep their pinned
// position but still repel and attract their neighbors.
func (s *Simulation) Step() {
	if !s.active {
		return
	}
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay
	if s.alpha < alphaMin && s.alphaTarget < alphaMin {
		// Settled. Keep the simulation steppable so a later drag can
		// rewarm it, but skip the O(n²) pass while nothing can move.
		return
	}

	applyForces(s.model, s.alpha, s.repulsion, s.linkDistance)
	s.integrate()
	resolveCollisions(s.model.Nodes, s.collidePad)
}

// integrate applies damped velocities to positions. Pinned nodes are snapped
// to their pin instead.
func (s *Simulation) integrate() {
	for _, n := range s.model.Nodes {
		if n.pinned {
			n.X = n.pinX
			n.Y = n.pinY
			n.VX = 0
			n.VY = 0
			continue
		}
		n.VX *= velocityDamp
		n.VY *= velocityDamp
		n.X += n.VX
		n.Y += n.VY
	}
}

// applyForces accumulates the repulsion, link, and centering forces into
// node velocities. It is a pure displacement pass: callers decide when to
// integrate. Exposed separately from Step so the force math is testable
// without the cooling schedule.
func applyForces(m *Model, alpha, repulsion, linkDistance float64) {
	nodes := m.Nodes

	// Many-body repulsion, Coulomb-style 1/d falloff on each axis.
	for i := 0; i < len(nodes); i++ {
		a := nodes[i]
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			if d2 < 1e-6 {
				// Coincident nodes: nudge apart deterministically.
				dx, dy = 0.1, 0.1
				d2 = 0.02
			}
			f := repulsion * alpha / d2
			a.VX += dx * f
			a.VY += dy * f
			b.VX -= dx * f
			b.VY -= dy * f
		}
	}

	// Link springs pulling endpoints toward linkDistance apart.
	for _, e := range m.Edges {
		dx := e.Target.X - e.Source.X
		dy := e.Target.Y - e.Source.Y
		d := math.Hypot(dx, dy)
		if d < 1e-6 {
			continue
		}
		f := (d - linkDistance) / d * alpha * 0.5
		e.Source.VX += dx * f
		e.Source.VY += dy * f
		e.Target.VX -= dx * f
		e.Target.VY -= dy * f
	}

	// Weak centering: pull the centroid toward the origin to stop drift.
	if len(nodes) > 0 {
		var cx, cy float64
		for _, n := range nodes {
			cx += n.X
			cy += n.Y
		}
		cx /= float64(len(nodes))
		cy /= float64(len(nodes))
		for _, n := range nodes {
			if n.pinned {
				continue
			}
			n.X -= cx * centerStrength
			n.Y -= cy * centerStrength
		}
	}
}

// resolveCollisions pushes apart every pair of circles overlapping within
// radius + pad. A single pass per step is enough; residual overlap resolves
// over subsequent steps.
func resolveCollisions(nodes []*Node, pad float64) {
	for i := 0; i < len(nodes); i++ {
		a := nodes[i]
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]
			minDist := a.Radius + b.Radius + pad
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			if d2 >= minDist*minDist {
				continue
			}
			d := math.Sqrt(d2)
			if d < 1e-6 {
				dx, dy, d = 0.1, 0.1, math.Sqrt(0.02)
			}
			overlap := (minDist - d) / d / 2
			sx := dx * overlap
			sy := dy * overlap
			if !a.pinned {
				a.X -= sx
				a.Y -= sy
			}
			if !b.pinned {
				b.X += sx
				b.Y += sy
			}
		}
	}
}
