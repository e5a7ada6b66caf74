package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultG             = 0.1
	DefaultTraceInterval = 1
	DefaultTimeScale     = 200.0
	DefaultTheta         = 0.5
	DefaultDt            = 1.0 / 60
	DefaultFrames        = 3600
	DefaultSampleEvery   = 10
	DefaultFPS           = 60
	DefaultRadius        = 1.0
	DefaultColor         = "white"
)

type Config struct {
	Name   string       `yaml:"name"`
	System SystemConfig `yaml:"system"`
	Run    RunConfig    `yaml:"run"`
	Bodies []BodyConfig `yaml:"bodies"`
}

type SystemConfig struct {
	G             float64 `yaml:"g"`
	TraceInterval uint32  `yaml:"trace_interval"`
	TimeScale     float64 `yaml:"time_scale"`
	TrailCapacity int     `yaml:"trail_capacity"`
	Forces        string  `yaml:"forces"`
	Theta         float64 `yaml:"theta"`
}

type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Frames      int     `yaml:"frames"`
	SampleEvery int     `yaml:"sample_every"`
	FPS         int     `yaml:"fps"`
}

// BodyConfig describes one initial body. When Orbit names an earlier body,
// Velocity is replaced by the velocity of a circular orbit around it.
type BodyConfig struct {
	Name     string     `yaml:"name"`
	Position [2]float64 `yaml:"position"`
	Velocity [2]float64 `yaml:"velocity"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Color    string     `yaml:"color"`
	Orbit    string     `yaml:"orbit,omitempty"`
}

// DefaultConfig is a sun with one planet on a circular orbit.
func DefaultConfig() *Config {
	return &Config{
		Name: "solar",
		System: SystemConfig{
			G:             DefaultG,
			TraceInterval: DefaultTraceInterval,
			TimeScale:     DefaultTimeScale,
			TrailCapacity: physics.DefaultTrailCapacity,
			Forces:        string(physics.ForceOrdered),
			Theta:         DefaultTheta,
		},
		Run: RunConfig{
			Dt:          DefaultDt,
			Frames:      DefaultFrames,
			SampleEvery: DefaultSampleEvery,
			FPS:         DefaultFPS,
		},
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 10000, Radius: 30, Color: "yellow"},
			{Name: "planet", Position: [2]float64{200, 0}, Mass: 10, Radius: 10, Color: "blue", Orbit: "sun"},
		},
	}
}

// Load reads a YAML scenario. Fields missing from the file keep their
// DefaultConfig values; a bodies list replaces the default bodies.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyBodyDefaults()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyBodyDefaults() {
	for i := range c.Bodies {
		b := &c.Bodies[i]
		if b.Radius == 0 {
			b.Radius = DefaultRadius
		}
		if b.Color == "" {
			b.Color = DefaultColor
		}
		if b.Name == "" {
			b.Name = fmt.Sprintf("body%d", i)
		}
	}
}

func (c *Config) SystemConfig() physics.Config {
	return physics.Config{
		G:             c.System.G,
		TraceInterval: c.System.TraceInterval,
		TimeScale:     c.System.TimeScale,
		TrailCapacity: c.System.TrailCapacity,
		Forces:        physics.ForceMode(strings.ToLower(c.System.Forces)),
		Theta:         c.System.Theta,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Run.Dt, Frames: c.Run.Frames, ValidateState: true}
}

// Validate checks everything Build would reject, without building.
func (c *Config) Validate() error {
	if err := c.SystemConfig().Validate(); err != nil {
		return err
	}
	if err := dynamo.Positive("dt", c.Run.Dt); err != nil {
		return err
	}
	if c.Run.Frames <= 0 {
		return dynamo.Invalid("frames", float64(c.Run.Frames), "must be positive")
	}
	if c.Run.SampleEvery < 0 {
		return dynamo.Invalid("sample_every", float64(c.Run.SampleEvery), "must not be negative")
	}
	if c.Run.FPS < 0 {
		return dynamo.Invalid("fps", float64(c.Run.FPS), "must not be negative")
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: scenario %q has no bodies", dynamo.ErrInvalidParameter, c.Name)
	}
	_, err := c.Build()
	return err
}

// Build constructs the system with every body added in file order.
func (c *Config) Build() (*physics.System, error) {
	cfg := c.SystemConfig()
	sys, err := physics.NewSystem(cfg)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*physics.Body, len(c.Bodies))
	for i, bc := range c.Bodies {
		pos := dynamo.Vec{X: bc.Position[0], Y: bc.Position[1]}
		vel := dynamo.Vec{X: bc.Velocity[0], Y: bc.Velocity[1]}

		if bc.Orbit != "" {
			central, ok := byName[bc.Orbit]
			if !ok {
				return nil, fmt.Errorf("%w: body %d %q orbits unknown body %q", dynamo.ErrInvalidParameter, i, bc.Name, bc.Orbit)
			}
			vel, err = physics.CircularVelocity(cfg.G, central, pos)
			if err != nil {
				return nil, fmt.Errorf("body %d %q: %w", i, bc.Name, err)
			}
		}

		radius := bc.Radius
		if radius == 0 {
			radius = DefaultRadius
		}
		b, err := physics.NewBody(pos, vel, bc.Mass, radius, bc.Color, physics.WithName(bc.Name))
		if err != nil {
			return nil, fmt.Errorf("body %d %q: %w", i, bc.Name, err)
		}
		sys.AddBody(b)
		if bc.Name != "" {
			byName[bc.Name] = b
		}
	}
	return sys, nil
}

// Resolve returns the preset called name, or loads name as a YAML path.
func Resolve(name string) (*Config, error) {
	if cfg := GetPreset(name); cfg != nil {
		return cfg, nil
	}
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return Load(name)
	}
	if _, err := os.Stat(name); err == nil {
		return Load(name)
	}
	return nil, fmt.Errorf("%w: %q (presets: %v)", dynamo.ErrUnknownScenario, name, ListPresets())
}
