package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"
)

// ForceMode selects how the velocity pass visits body pairs.
type ForceMode string

const (
	// ForceOrdered visits every ordered pair (i, j) and updates only body i.
	// Each body still receives each partner's pull exactly once. This is the
	// reference scheme.
	ForceOrdered ForceMode = "ordered"
	// ForceSymmetric evaluates each unordered pair once and applies equal and
	// opposite impulses. Results match ForceOrdered up to rounding.
	ForceSymmetric ForceMode = "symmetric"
	// ForceBarnesHut approximates the pull of distant groups with their
	// centre of mass, using Theta as the opening angle.
	ForceBarnesHut ForceMode = "barneshut"
)

// Config is fixed for the lifetime of a System.
type Config struct {
	G             float64
	TraceInterval uint32
	TimeScale     float64
	TrailCapacity int
	Forces        ForceMode
	Theta         float64
}

func DefaultConfig() Config {
	return Config{
		G:             0.1,
		TraceInterval: 1,
		TimeScale:     200,
		TrailCapacity: DefaultTrailCapacity,
		Forces:        ForceOrdered,
		Theta:         0.5,
	}
}

// Validate reports the first parameter outside its range.
func (c Config) Validate() error {
	if err := dynamo.Positive("G", c.G); err != nil {
		return err
	}
	if c.TraceInterval == 0 {
		return dynamo.Invalid("trace_interval", 0, "must be at least 1")
	}
	if err := dynamo.Positive("time_scale", c.TimeScale); err != nil {
		return err
	}
	if c.TrailCapacity < 0 {
		return dynamo.Invalid("trail_capacity", float64(c.TrailCapacity), "must not be negative")
	}
	switch c.Forces {
	case "", ForceOrdered, ForceSymmetric:
	case ForceBarnesHut:
		if !(c.Theta >= 0) {
			return dynamo.Invalid("theta", c.Theta, "must not be negative")
		}
	default:
		return fmt.Errorf("%w: unknown force mode %q", dynamo.ErrInvalidParameter, c.Forces)
	}
	return nil
}

// System advances an ordered set of bodies under mutual gravity.
//
// A System is owned by a single driver; Step must not run concurrently with
// itself or with AddBody.
type System struct {
	cfg        Config
	bodies     []*Body
	particles  []barneshut.Particle2
	frameCount uint64
	elapsed    float64
	degenerate uint64
}

// NewSystem validates cfg and returns an empty system. A zero TrailCapacity
// selects DefaultTrailCapacity and an empty Forces selects ForceOrdered.
func NewSystem(cfg Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TrailCapacity == 0 {
		cfg.TrailCapacity = DefaultTrailCapacity
	}
	if cfg.Forces == "" {
		cfg.Forces = ForceOrdered
	}
	return &System{cfg: cfg, bodies: make([]*Body, 0)}, nil
}

// AddBody appends b. The system's trail capacity replaces the body's.
func (s *System) AddBody(b *Body) {
	if b == nil {
		return
	}
	b.trail.Resize(s.cfg.TrailCapacity)
	s.bodies = append(s.bodies, b)
	s.particles = append(s.particles, b)
}

// Step advances the system by dt wall seconds, scaled by Config.TimeScale.
//
// Velocities are updated over all pairs before any position moves, then
// every position advances with its new velocity. Coincident pairs are
// skipped. Trails are sampled every TraceInterval frames, starting at frame 0.
func (s *System) Step(dt float64) {
	dt *= s.cfg.TimeScale

	switch s.cfg.Forces {
	case ForceSymmetric:
		s.applySymmetric(dt)
	case ForceBarnesHut:
		if !s.applyBarnesHut(dt) {
			s.applyOrdered(dt)
		}
	default:
		s.applyOrdered(dt)
	}

	sample := s.frameCount%uint64(s.cfg.TraceInterval) == 0
	for _, b := range s.bodies {
		b.position = r2.Add(b.position, r2.Scale(dt, b.velocity))
		if sample {
			b.RecordTrailPoint()
		}
	}

	s.frameCount++
	s.elapsed += dt
}

func (s *System) applyOrdered(dt float64) {
	for i, a := range s.bodies {
		for j, b := range s.bodies {
			if i != j {
				s.pull(a, b, dt)
			}
		}
	}
}

// pull accelerates a toward b over dt.
func (s *System) pull(a, b *Body, dt float64) {
	dx := b.position.X - a.position.X
	dy := b.position.Y - a.position.Y
	r := math.Sqrt(dx*dx + dy*dy)
	if r == 0 {
		s.degenerate++
		return
	}

	force := s.cfg.G * a.mass * b.mass / (r * r)
	ax := force * (dx / r) / a.mass
	ay := force * (dy / r) / a.mass

	a.velocity.X += ax * dt
	a.velocity.Y += ay * dt
}

func (s *System) applySymmetric(dt float64) {
	n := len(s.bodies)
	for i := 0; i < n; i++ {
		a := s.bodies[i]
		for j := i + 1; j < n; j++ {
			b := s.bodies[j]

			dx := b.position.X - a.position.X
			dy := b.position.Y - a.position.Y
			r := math.Sqrt(dx*dx + dy*dy)
			if r == 0 {
				s.degenerate++
				continue
			}

			force := s.cfg.G * a.mass * b.mass / (r * r)
			ux, uy := dx/r, dy/r

			a.velocity.X += force * ux / a.mass * dt
			a.velocity.Y += force * uy / a.mass * dt
			b.velocity.X -= force * ux / b.mass * dt
			b.velocity.Y -= force * uy / b.mass * dt
		}
	}
}

// applyBarnesHut reports false when the quadtree cannot be built, leaving
// every velocity untouched.
func (s *System) applyBarnesHut(dt float64) bool {
	if !s.separated() {
		return false
	}

	plane := barneshut.Plane{Particles: s.particles}
	if err := plane.Reset(); err != nil {
		return false
	}

	accel := make([]dynamo.Vec, len(s.bodies))
	for i, b := range s.bodies {
		f := plane.ForceOn(b, s.cfg.Theta, barneshut.Gravity2)
		accel[i] = r2.Scale(s.cfg.G/b.mass, f)
	}
	for i, b := range s.bodies {
		b.velocity = r2.Add(b.velocity, r2.Scale(dt, accel[i]))
	}
	return true
}

// separated reports whether every position is finite and no two bodies
// share a point, the two conditions a quadtree cannot be built under.
func (s *System) separated() bool {
	pts := make([]dynamo.Vec, len(s.bodies))
	for i, b := range s.bodies {
		if !dynamo.Finite(b.position) {
			return false
		}
		pts[i] = b.position
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			return false
		}
	}
	return true
}

// Bodies returns the bodies in insertion order. Callers must treat the
// slice and the bodies as read-only.
func (s *System) Bodies() []*Body { return s.bodies }

func (s *System) Body(i int) *Body { return s.bodies[i] }
func (s *System) Len() int         { return len(s.bodies) }
func (s *System) Config() Config   { return s.cfg }

// FrameCount is the number of completed steps.
func (s *System) FrameCount() uint64 { return s.frameCount }

// Elapsed is the simulated time advanced so far, after time scaling.
func (s *System) Elapsed() float64 { return s.elapsed }

// DegeneratePairs counts pair evaluations skipped because both bodies sat
// on the same point.
func (s *System) DegeneratePairs() uint64 { return s.degenerate }

// Clone returns an independent deep copy, trails included.
func (s *System) Clone() *System {
	c := &System{
		cfg:        s.cfg,
		bodies:     make([]*Body, len(s.bodies)),
		particles:  make([]barneshut.Particle2, len(s.bodies)),
		frameCount: s.frameCount,
		elapsed:    s.elapsed,
		degenerate: s.degenerate,
	}
	for i, b := range s.bodies {
		c.bodies[i] = b.clone()
		c.particles[i] = c.bodies[i]
	}
	return c
}
