package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	minZoom = 1.0 / 64
	maxZoom = 64
	// points further than this many canvas widths off screen are dropped
	clipFactor = 4
)

// Projection maps world coordinates onto canvas sub-pixels with the world
// origin at the canvas center and y pointing up.
type Projection struct {
	W, H  int
	Scale float64
	Zoom  float64
}

// FitProjection picks a scale that shows every body of sys with some margin.
func FitProjection(sys *physics.System, w, h int) Projection {
	extent := 0.0
	for _, b := range sys.Bodies() {
		p := b.Position()
		if !dynamo.Finite(p) {
			continue
		}
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y))+b.Radius())
	}
	if extent == 0 {
		extent = 1
	}
	half := math.Min(float64(w), float64(h)) / 2
	return Projection{W: w, H: h, Scale: half / (extent * 1.2), Zoom: 1}
}

func (p Projection) factor() float64 { return p.Scale * p.Zoom }

// Project returns the sub-pixel for a world point. ok is false for non-finite
// points and points far outside the canvas.
func (p Projection) Project(v dynamo.Vec) (x, y int, ok bool) {
	if !dynamo.Finite(v) {
		return 0, 0, false
	}
	fx := float64(p.W)/2 + v.X*p.factor()
	fy := float64(p.H)/2 - v.Y*p.factor()
	limit := float64(clipFactor * max(p.W, p.H))
	if math.Abs(fx) > limit || math.Abs(fy) > limit {
		return 0, 0, false
	}
	return int(math.Round(fx)), int(math.Round(fy)), true
}

// Length converts a world distance to sub-pixels.
func (p Projection) Length(d float64) int {
	return int(math.Round(d * p.factor()))
}

func (p *Projection) ZoomIn()  { p.Zoom = math.Min(p.Zoom*1.25, maxZoom) }
func (p *Projection) ZoomOut() { p.Zoom = math.Max(p.Zoom/1.25, minZoom) }

// DrawSystem draws every body's trail as a polyline and the body as a disk
// in its color.
func DrawSystem(c *Canvas, proj Projection, sys *physics.System) {
	for _, b := range sys.Bodies() {
		color := b.Color()
		var px, py int
		have := false
		for _, pt := range b.Trail() {
			x, y, ok := proj.Project(pt)
			if ok && have {
				c.DrawLine(px, py, x, y, color)
			} else if ok {
				c.Set(x, y, color)
			}
			px, py, have = x, y, ok
		}
	}
	for _, b := range sys.Bodies() {
		x, y, ok := proj.Project(b.Position())
		if !ok {
			continue
		}
		r := min(max(proj.Length(b.Radius()), 0), 6)
		c.FillCircle(x, y, r, b.Color())
	}
}
