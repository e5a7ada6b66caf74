package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(sys *physics.System)
	Value() float64
	Reset()
}

// Observer is notified after every completed frame.
type Observer interface {
	OnStep(sys *physics.System)
}

type Config struct {
	Dt            float64
	Frames        int
	ValidateState bool
}

// DefaultConfig runs one minute of frames at 60 fps.
func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Frames:        3600,
		ValidateState: true,
	}
}

type Result struct {
	Frames   int
	Elapsed  float64
	Wall     time.Duration
	Metrics  map[string]float64
	Skipped  uint64
	Stoppage error
}

// SimError reports the frame at which a run was stopped.
type SimError struct {
	Frame   int
	Time    float64
	Message string
}

func (e *SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}

func (e *SimError) Unwrap() error { return dynamo.ErrInvalidState }
