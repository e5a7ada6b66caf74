package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// KineticEnergy is the sum of m*v²/2 over all bodies.
func KineticEnergy(sys *physics.System) float64 {
	ke := 0.0
	for _, b := range sys.Bodies() {
		v := b.Velocity()
		ke += 0.5 * b.Mass() * (v.X*v.X + v.Y*v.Y)
	}
	return ke
}

// PotentialEnergy sums -G*m_i*m_j/r over unordered pairs. Coincident pairs
// contribute nothing, as they do to the forces.
func PotentialEnergy(sys *physics.System) float64 {
	g := sys.Config().G
	bodies := sys.Bodies()
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		pi := bodies[i].Position()
		for j := i + 1; j < len(bodies); j++ {
			pj := bodies[j].Position()
			r := math.Hypot(pj.X-pi.X, pj.Y-pi.Y)
			if r == 0 {
				continue
			}
			pe -= g * bodies[i].Mass() * bodies[j].Mass() / r
		}
	}
	return pe
}

func TotalEnergy(sys *physics.System) float64 {
	return KineticEnergy(sys) + PotentialEnergy(sys)
}

func Momentum(sys *physics.System) dynamo.Vec {
	var p dynamo.Vec
	for _, b := range sys.Bodies() {
		v := b.Velocity()
		p.X += b.Mass() * v.X
		p.Y += b.Mass() * v.Y
	}
	return p
}

// AngularMomentum about the origin.
func AngularMomentum(sys *physics.System) float64 {
	l := 0.0
	for _, b := range sys.Bodies() {
		p, v := b.Position(), b.Velocity()
		l += b.Mass() * (p.X*v.Y - p.Y*v.X)
	}
	return l
}

func CenterOfMass(sys *physics.System) dynamo.Vec {
	var c dynamo.Vec
	total := 0.0
	for _, b := range sys.Bodies() {
		p := b.Position()
		c.X += b.Mass() * p.X
		c.Y += b.Mass() * p.Y
		total += b.Mass()
	}
	if total == 0 {
		return c
	}
	return dynamo.Vec{X: c.X / total, Y: c.Y / total}
}

type Energy struct {
	name    string
	samples int
	total   float64
}

// NewEnergy averages the total energy over observed frames.
func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(sys *physics.System) {
	e.total += TotalEnergy(sys)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure from the first
// observed total energy.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(sys *physics.System) {
	energy := TotalEnergy(sys)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the largest absolute change in total momentum.
type MomentumDrift struct {
	name     string
	initial  dynamo.Vec
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(sys *physics.System) {
	p := Momentum(sys)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(p.X-m.initial.X, p.Y-m.initial.Y))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Vec{}
	m.maxDrift = 0
	m.samples = 0
}

// Defaults returns the metrics every recorded run reports.
func Defaults() []sim.Metric {
	return []sim.Metric{NewEnergy(), NewEnergyDrift(), NewMomentumDrift()}
}
