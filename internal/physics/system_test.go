package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

type bodyInit struct {
	pos, vel     dynamo.Vec
	mass, radius float64
}

func newSystem(cfg physics.Config, inits ...bodyInit) *physics.System {
	sys, err := physics.NewSystem(cfg)
	Expect(err).NotTo(HaveOccurred())
	for _, s := range inits {
		b, err := physics.NewBody(s.pos, s.vel, s.mass, s.radius, "white")
		Expect(err).NotTo(HaveOccurred())
		sys.AddBody(b)
	}
	return sys
}

func unitConfig() physics.Config {
	return physics.Config{G: 1, TraceInterval: 1, TimeScale: 1}
}

func momentum(sys *physics.System) dynamo.Vec {
	var p dynamo.Vec
	for _, b := range sys.Bodies() {
		p.X += b.Mass() * b.Velocity().X
		p.Y += b.Mass() * b.Velocity().Y
	}
	return p
}

func expectFinite(sys *physics.System) {
	for _, b := range sys.Bodies() {
		Expect(dynamo.Finite(b.Position())).To(BeTrue(), "position %v", b.Position())
		Expect(dynamo.Finite(b.Velocity())).To(BeTrue(), "velocity %v", b.Velocity())
	}
}

var threeBodies = []bodyInit{
	{pos: pt(0, 0), vel: pt(0, 0), mass: 1000, radius: 10},
	{pos: pt(100, 0), vel: pt(0, 3), mass: 5, radius: 2},
	{pos: pt(-40, 70), vel: pt(-2.5, -1), mass: 2, radius: 1},
}

var _ = Describe("System", func() {
	Describe("NewSystem", func() {
		It("fills in defaults", func() {
			sys, err := physics.NewSystem(physics.Config{G: 1, TraceInterval: 2, TimeScale: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Config().TrailCapacity).To(Equal(physics.DefaultTrailCapacity))
			Expect(sys.Config().Forces).To(Equal(physics.ForceOrdered))
			Expect(sys.Len()).To(BeZero())
		})

		DescribeTable("rejects invalid configuration",
			func(mutate func(*physics.Config)) {
				cfg := physics.DefaultConfig()
				mutate(&cfg)
				_, err := physics.NewSystem(cfg)
				Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
			},
			Entry("zero G", func(c *physics.Config) { c.G = 0 }),
			Entry("negative G", func(c *physics.Config) { c.G = -0.1 }),
			Entry("zero trace interval", func(c *physics.Config) { c.TraceInterval = 0 }),
			Entry("zero time scale", func(c *physics.Config) { c.TimeScale = 0 }),
			Entry("negative trail capacity", func(c *physics.Config) { c.TrailCapacity = -1 }),
			Entry("unknown force mode", func(c *physics.Config) { c.Forces = "magic" }),
			Entry("negative theta", func(c *physics.Config) {
				c.Forces = physics.ForceBarnesHut
				c.Theta = -1
			}),
		)
	})

	It("applies the system trail capacity to added bodies", func() {
		cfg := unitConfig()
		cfg.TrailCapacity = 7
		sys := newSystem(cfg, bodyInit{pos: pt(0, 0), vel: pt(1, 0), mass: 1, radius: 1})
		Expect(sys.Body(0).TrailCap()).To(Equal(7))
	})

	It("matches a hand-computed two-body step", func() {
		cfg := physics.Config{G: 2, TraceInterval: 1, TimeScale: 3}
		sys := newSystem(cfg,
			bodyInit{pos: pt(0, 0), vel: pt(0, 0), mass: 4, radius: 1},
			bodyInit{pos: pt(2, 0), vel: pt(0, 1), mass: 1, radius: 1},
		)

		sys.Step(0.5)

		// dt = 1.5, F = 2*4*1/4 = 2.
		a, b := sys.Body(0), sys.Body(1)
		Expect(a.Velocity()).To(Equal(pt(0.75, 0)))
		Expect(b.Velocity()).To(Equal(pt(-3, 1)))
		Expect(a.Position()).To(Equal(pt(1.125, 0)))
		Expect(b.Position()).To(Equal(pt(-2.5, 1.5)))
		Expect(sys.FrameCount()).To(Equal(uint64(1)))
		Expect(sys.Elapsed()).To(Equal(1.5))
	})

	It("conserves total momentum of two bodies", func() {
		sys := newSystem(unitConfig(),
			bodyInit{pos: pt(0, 0), vel: pt(0.1, -0.2), mass: 50, radius: 1},
			bodyInit{pos: pt(30, 10), vel: pt(-0.5, 1.2), mass: 3, radius: 1},
		)
		p0 := momentum(sys)

		for i := 0; i < 2000; i++ {
			sys.Step(0.05)
		}

		p := momentum(sys)
		Expect(p.X).To(BeNumerically("~", p0.X, 1e-9))
		Expect(p.Y).To(BeNumerically("~", p0.Y, 1e-9))
	})

	It("skips coincident bodies without producing NaN or Inf", func() {
		sys := newSystem(unitConfig(),
			bodyInit{pos: pt(5, 5), vel: pt(0, 0), mass: 10, radius: 1},
			bodyInit{pos: pt(5, 5), vel: pt(0, 0), mass: 20, radius: 1},
		)

		sys.Step(0.1)

		expectFinite(sys)
		Expect(sys.Body(0).Velocity()).To(Equal(pt(0, 0)))
		Expect(sys.Body(1).Velocity()).To(Equal(pt(0, 0)))
		Expect(sys.Body(0).Position()).To(Equal(pt(5, 5)))
		Expect(sys.DegeneratePairs()).To(Equal(uint64(2)))
	})

	It("still pulls coincident bodies toward a third one", func() {
		sys := newSystem(unitConfig(),
			bodyInit{pos: pt(0, 0), vel: pt(0, 0), mass: 1, radius: 1},
			bodyInit{pos: pt(0, 0), vel: pt(0, 0), mass: 1, radius: 1},
			bodyInit{pos: pt(10, 0), vel: pt(0, 0), mass: 100, radius: 1},
		)

		sys.Step(0.1)

		expectFinite(sys)
		Expect(sys.Body(0).Velocity().X).To(BeNumerically(">", 0))
		Expect(sys.Body(0).Velocity()).To(Equal(sys.Body(1).Velocity()))
	})

	It("keeps exactly the most recent trail samples", func() {
		const (
			capacity = 5
			interval = 3
			samples  = 8
			dt       = 0.1
		)
		cfg := physics.Config{G: 1, TraceInterval: interval, TimeScale: 1, TrailCapacity: capacity}
		vel := pt(0.5, -0.25)
		sys := newSystem(cfg, bodyInit{pos: pt(1, 2), vel: vel, mass: 1, radius: 1})

		pos := pt(1, 2)
		var sampled []dynamo.Vec
		for k := 0; k < samples*interval; k++ {
			sys.Step(dt)
			pos = dynamo.Vec{X: pos.X + dt*vel.X, Y: pos.Y + dt*vel.Y}
			if k%interval == 0 {
				sampled = append(sampled, pos)
			}
		}

		trail := sys.Body(0).Trail()
		Expect(sampled).To(HaveLen(samples))
		Expect(trail).To(HaveLen(capacity))
		Expect(trail).To(Equal(sampled[samples-capacity:]))
	})

	It("samples trails only every trace interval", func() {
		cfg := physics.Config{G: 1, TraceInterval: 4, TimeScale: 1}
		sys := newSystem(cfg, bodyInit{pos: pt(0, 0), vel: pt(1, 0), mass: 1, radius: 1})

		sys.Step(1)
		Expect(sys.Body(0).TrailLen()).To(Equal(1))
		for i := 0; i < 3; i++ {
			sys.Step(1)
		}
		Expect(sys.Body(0).TrailLen()).To(Equal(1))
		sys.Step(1)
		Expect(sys.Body(0).TrailLen()).To(Equal(2))
	})

	It("is deterministic for identical inputs", func() {
		a := newSystem(unitConfig(), threeBodies...)
		b := newSystem(unitConfig(), threeBodies...)
		dts := []float64{1.0 / 60, 1.0 / 30, 0.01, 0.02}

		for i := 0; i < 500; i++ {
			dt := dts[i%len(dts)]
			a.Step(dt)
			b.Step(dt)
		}

		for i := range a.Bodies() {
			Expect(a.Body(i).Position()).To(Equal(b.Body(i).Position()))
			Expect(a.Body(i).Velocity()).To(Equal(b.Body(i).Velocity()))
			Expect(a.Body(i).Trail()).To(Equal(b.Body(i).Trail()))
		}
	})

	It("never changes the velocity of a lone body", func() {
		vel := pt(1.5, -0.75)
		sys := newSystem(unitConfig(), bodyInit{pos: pt(3, 3), vel: vel, mass: 42, radius: 1})

		pos := pt(3, 3)
		for i := 0; i < 100; i++ {
			sys.Step(0.25)
			pos = dynamo.Vec{X: pos.X + 0.25*vel.X, Y: pos.Y + 0.25*vel.Y}
		}

		Expect(sys.Body(0).Velocity()).To(Equal(vel))
		Expect(sys.Body(0).Position()).To(Equal(pos))
	})

	It("closes a circular orbit after one period", func() {
		const (
			g  = 0.1
			r  = 200.0
			dt = 0.1
		)
		v := math.Sqrt(g * 10000 / r)
		sys := newSystem(physics.Config{G: g, TraceInterval: 1, TimeScale: 1},
			bodyInit{pos: pt(0, 0), vel: pt(0, 0), mass: 10000, radius: 30},
			bodyInit{pos: pt(r, 0), vel: pt(0, v), mass: 10, radius: 10},
		)

		period := 2 * math.Pi * r / v
		steps := int(math.Round(period / dt))
		farthest := 0.0
		for i := 0; i < steps; i++ {
			sys.Step(dt)
			p := sys.Body(1).Position()
			farthest = math.Max(farthest, math.Hypot(p.X-r, p.Y))
		}

		end := sys.Body(1).Position()
		Expect(farthest).To(BeNumerically(">", 1.9*r))
		Expect(math.Hypot(end.X-r, end.Y)).To(BeNumerically("<", 0.05*r))
	})

	Describe("Clone", func() {
		It("is independent of the original", func() {
			orig := newSystem(unitConfig(), threeBodies...)
			orig.Step(0.1)
			c := orig.Clone()

			orig.Step(0.1)
			Expect(c.FrameCount()).To(Equal(uint64(1)))
			Expect(c.Body(1).TrailLen()).To(Equal(1))

			c.Step(0.1)
			for i := range orig.Bodies() {
				Expect(c.Body(i).Position()).To(Equal(orig.Body(i).Position()))
				Expect(c.Body(i).Trail()).To(Equal(orig.Body(i).Trail()))
			}
		})
	})

	Describe("symmetric forces", func() {
		It("conserves momentum and tracks the ordered scheme", func() {
			cfg := unitConfig()
			ordered := newSystem(cfg, threeBodies...)
			cfg.Forces = physics.ForceSymmetric
			symmetric := newSystem(cfg, threeBodies...)
			p0 := momentum(symmetric)

			for i := 0; i < 300; i++ {
				ordered.Step(0.01)
				symmetric.Step(0.01)
			}

			p := momentum(symmetric)
			Expect(p.X).To(BeNumerically("~", p0.X, 1e-9))
			Expect(p.Y).To(BeNumerically("~", p0.Y, 1e-9))
			for i := range ordered.Bodies() {
				Expect(symmetric.Body(i).Position().X).To(BeNumerically("~", ordered.Body(i).Position().X, 1e-6))
				Expect(symmetric.Body(i).Position().Y).To(BeNumerically("~", ordered.Body(i).Position().Y, 1e-6))
			}
		})
	})

	Describe("Barnes-Hut forces", func() {
		It("matches direct summation with a zero opening angle", func() {
			cfg := unitConfig()
			direct := newSystem(cfg, threeBodies...)
			cfg.Forces = physics.ForceBarnesHut
			cfg.Theta = 0
			tree := newSystem(cfg, threeBodies...)

			for i := 0; i < 100; i++ {
				direct.Step(0.01)
				tree.Step(0.01)
			}

			for i := range direct.Bodies() {
				Expect(tree.Body(i).Position().X).To(BeNumerically("~", direct.Body(i).Position().X, 1e-6))
				Expect(tree.Body(i).Position().Y).To(BeNumerically("~", direct.Body(i).Position().Y, 1e-6))
			}
		})

		It("falls back to direct summation for coincident bodies", func() {
			cfg := unitConfig()
			cfg.Forces = physics.ForceBarnesHut
			sys := newSystem(cfg,
				bodyInit{pos: pt(1, 1), vel: pt(0, 0), mass: 1, radius: 1},
				bodyInit{pos: pt(1, 1), vel: pt(0, 0), mass: 1, radius: 1},
				bodyInit{pos: pt(20, 1), vel: pt(0, 0), mass: 50, radius: 1},
			)

			sys.Step(0.1)

			expectFinite(sys)
			Expect(sys.DegeneratePairs()).To(Equal(uint64(2)))
		})
	})
})
