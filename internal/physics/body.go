package physics

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Body is a point mass with a bounded trail of sampled positions.
//
// Mass is both the gravitational source and the divisor when a force turns
// into an acceleration, so NewBody refuses anything that is not strictly
// positive. Radius, color and name are carried for renderers only.
type Body struct {
	name     string
	position dynamo.Vec
	velocity dynamo.Vec
	mass     float64
	radius   float64
	color    string
	trail    *Trail
}

type BodyOption func(*Body)

// WithName labels the body for legends and recorded runs.
func WithName(name string) BodyOption {
	return func(b *Body) { b.name = name }
}

// NewBody returns a body with an empty trail of DefaultTrailCapacity. It fails with
// dynamo.ErrInvalidParameter when mass or radius is not positive.
func NewBody(position, velocity dynamo.Vec, mass, radius float64, color string, opts ...BodyOption) (*Body, error) {
	if err := dynamo.Positive("mass", mass); err != nil {
		return nil, err
	}
	if err := dynamo.Positive("radius", radius); err != nil {
		return nil, err
	}
	b := &Body{
		position: position,
		velocity: velocity,
		mass:     mass,
		radius:   radius,
		color:    color,
		trail:    NewTrail(DefaultTrailCapacity),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Body) Name() string         { return b.name }
func (b *Body) Position() dynamo.Vec { return b.position }
func (b *Body) Velocity() dynamo.Vec { return b.velocity }
func (b *Body) Mass() float64        { return b.mass }
func (b *Body) Radius() float64      { return b.radius }
func (b *Body) Color() string        { return b.color }

// Coord2 lets a body take part in a gonum Barnes-Hut plane.
func (b *Body) Coord2() dynamo.Vec { return b.position }

// RecordTrailPoint appends the current position to the trail.
func (b *Body) RecordTrailPoint() { b.trail.Push(b.position) }

// Trail returns the sampled positions, oldest first.
func (b *Body) Trail() []dynamo.Vec { return b.trail.Points() }

func (b *Body) TrailLen() int { return b.trail.Len() }
func (b *Body) TrailCap() int { return b.trail.Cap() }

func (b *Body) LastTrailPoint() (dynamo.Vec, bool) { return b.trail.Last() }

func (b *Body) clone() *Body {
	c := *b
	c.trail = b.trail.clone()
	return &c
}
