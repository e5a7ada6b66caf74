package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Simulator drives a System at a fixed dt, the headless counterpart of a
// render loop.
type Simulator struct {
	sys       *physics.System
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(sys *physics.System) *Simulator {
	return &Simulator{
		sys:       sys,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.With("component", "simulator"),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) System() *physics.System { return s.sys }

// Run steps the system cfg.Frames times. Cancelling ctx stops the run between
// frames and returns the partial result with ctx.Err(). With
// cfg.ValidateState a non-finite body stops the run; the result then carries
// a *SimError in Stoppage and Run returns nil.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	logger := s.logger.With("operation", "run", "frames", cfg.Frames, "dt", cfg.Dt)
	logger.Debug("starting run", "bodies", s.sys.Len())

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.sys)
	}

	result := &Result{Metrics: make(map[string]float64)}
	start := time.Now()
	startElapsed := s.sys.Elapsed()
	startSkipped := s.sys.DegeneratePairs()

	var runErr error
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		s.sys.Step(cfg.Dt)
		result.Frames++

		if cfg.ValidateState {
			if err := checkState(s.sys); err != nil {
				result.Stoppage = &SimError{Frame: i, Time: s.sys.Elapsed(), Message: err.Error()}
				logger.Warn("run stopped", "error", result.Stoppage)
				break
			}
		}

		for _, m := range s.metrics {
			m.Observe(s.sys)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.sys)
		}
	}

	result.Wall = time.Since(start)
	result.Elapsed = s.sys.Elapsed() - startElapsed
	result.Skipped = s.sys.DegeneratePairs() - startSkipped
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	logger.Debug("run finished", "completed", result.Frames, "wall", result.Wall)
	return result, runErr
}

// RunWithCallback steps until cfg.Frames is reached, ctx is cancelled or fn
// returns false. fn sees the system after each frame.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(*physics.System) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.sys.Step(cfg.Dt)

		if cfg.ValidateState {
			if err := checkState(s.sys); err != nil {
				return &SimError{Frame: i, Time: s.sys.Elapsed(), Message: err.Error()}
			}
		}
		if !fn(s.sys) {
			return nil
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if err := dynamo.Positive("dt", cfg.Dt); err != nil {
		return err
	}
	if cfg.Frames <= 0 {
		return dynamo.Invalid("frames", float64(cfg.Frames), "must be positive")
	}
	return nil
}

func checkState(sys *physics.System) error {
	for i, b := range sys.Bodies() {
		if !dynamo.Finite(b.Position()) || !dynamo.Finite(b.Velocity()) {
			return fmt.Errorf("body %d %q: %w", i, b.Name(), dynamo.ErrInvalidState)
		}
	}
	return nil
}
