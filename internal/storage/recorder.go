package storage

import (
	"strconv"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Sample is one body's state at one recorded frame.
type Sample struct {
	Frame uint64  `json:"frame"`
	Time  float64 `json:"time"`
	Body  int     `json:"body"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
}

func (s Sample) record() []string {
	return []string{
		strconv.FormatUint(s.Frame, 10),
		strconv.FormatFloat(s.Time, 'g', -1, 64),
		strconv.Itoa(s.Body),
		s.Name,
		strconv.FormatFloat(s.X, 'g', -1, 64),
		strconv.FormatFloat(s.Y, 'g', -1, 64),
		strconv.FormatFloat(s.VX, 'g', -1, 64),
		strconv.FormatFloat(s.VY, 'g', -1, 64),
	}
}

// Recorder samples every body each Every frames. It satisfies sim.Observer.
// The zero value samples every frame.
type Recorder struct {
	every   int
	samples []Sample
}

func NewRecorder(every int) *Recorder {
	return &Recorder{every: every, samples: make([]Sample, 0)}
}

// Every is the sampling interval in frames, at least 1.
func (r *Recorder) Every() int {
	return max(r.every, 1)
}

// Capture records the system unconditionally, e.g. the initial state.
func (r *Recorder) Capture(sys *physics.System) {
	frame, t := sys.FrameCount(), sys.Elapsed()
	for i, b := range sys.Bodies() {
		p, v := b.Position(), b.Velocity()
		r.samples = append(r.samples, Sample{
			Frame: frame,
			Time:  t,
			Body:  i,
			Name:  b.Name(),
			X:     p.X,
			Y:     p.Y,
			VX:    v.X,
			VY:    v.Y,
		})
	}
}

func (r *Recorder) OnStep(sys *physics.System) {
	if sys.FrameCount()%uint64(r.Every()) == 0 {
		r.Capture(sys)
	}
}

func (r *Recorder) Samples() []Sample { return r.samples }

// Series returns one body's samples in frame order.
func Series(samples []Sample, body int) []Sample {
	out := make([]Sample, 0)
	for _, s := range samples {
		if s.Body == body {
			out = append(out, s)
		}
	}
	return out
}
