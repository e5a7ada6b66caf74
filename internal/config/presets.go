package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Config{
	"solar": DefaultConfig(),
	"classic": {
		Name:   "classic",
		System: SystemConfig{G: 0.1, TraceInterval: 100, TimeScale: 1, TrailCapacity: 1000, Forces: "ordered", Theta: DefaultTheta},
		Run:    RunConfig{Dt: DefaultDt, Frames: 36000, SampleEvery: 100, FPS: DefaultFPS},
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 10000, Radius: 30, Color: "yellow"},
			{Name: "planet", Position: [2]float64{200, 0}, Mass: 10, Radius: 10, Color: "blue", Orbit: "sun"},
		},
	},
	"binary": {
		Name:   "binary",
		System: SystemConfig{G: 0.1, TraceInterval: 2, TimeScale: 100, TrailCapacity: 500, Forces: "ordered", Theta: DefaultTheta},
		Run:    RunConfig{Dt: DefaultDt, Frames: 3600, SampleEvery: 10, FPS: DefaultFPS},
		Bodies: []BodyConfig{
			// speed sqrt(G*M/(4r)) for two equal masses 2r apart
			{Name: "alpha", Position: [2]float64{-100, 0}, Velocity: [2]float64{0, -math.Sqrt(0.1 * 5000 / 400)}, Mass: 5000, Radius: 20, Color: "orange"},
			{Name: "beta", Position: [2]float64{100, 0}, Velocity: [2]float64{0, math.Sqrt(0.1 * 5000 / 400)}, Mass: 5000, Radius: 20, Color: "cyan"},
		},
	},
	"inner": {
		Name:   "inner",
		System: SystemConfig{G: 0.1, TraceInterval: 1, TimeScale: 200, TrailCapacity: 400, Forces: "ordered", Theta: DefaultTheta},
		Run:    RunConfig{Dt: DefaultDt, Frames: 7200, SampleEvery: 10, FPS: DefaultFPS},
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 20000, Radius: 30, Color: "yellow"},
			{Name: "mercury", Position: [2]float64{80, 0}, Mass: 1, Radius: 4, Color: "gray", Orbit: "sun"},
			{Name: "venus", Position: [2]float64{0, 150}, Mass: 8, Radius: 8, Color: "orange", Orbit: "sun"},
			{Name: "earth", Position: [2]float64{-230, 0}, Mass: 10, Radius: 9, Color: "blue", Orbit: "sun"},
		},
	},
}

// GetPreset returns a copy the caller may modify, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
