package physics

import "github.com/san-kum/orbitsim/internal/dynamo"

// DefaultTrailCapacity is the number of trail points a body keeps when the
// system does not say otherwise.
const DefaultTrailCapacity = 250

// Trail is a fixed-capacity ring of past positions, oldest first.
// Pushing into a full trail overwrites the oldest point.
type Trail struct {
	points []dynamo.Vec
	start  int
	n      int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{points: make([]dynamo.Vec, capacity)}
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.points) }

// Push appends p, evicting the oldest point when the trail is full.
func (t *Trail) Push(p dynamo.Vec) {
	c := len(t.points)
	if t.n < c {
		t.points[(t.start+t.n)%c] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % c
}

// At returns the i-th point, 0 being the oldest. It panics when i is out of range.
func (t *Trail) At(i int) dynamo.Vec {
	if i < 0 || i >= t.n {
		panic("physics: trail index out of range")
	}
	return t.points[(t.start+i)%len(t.points)]
}

// Last returns the most recent point.
func (t *Trail) Last() (dynamo.Vec, bool) {
	if t.n == 0 {
		return dynamo.Vec{}, false
	}
	return t.At(t.n - 1), true
}

// Points copies the trail out, oldest first.
func (t *Trail) Points() []dynamo.Vec {
	out := make([]dynamo.Vec, t.n)
	for i := range out {
		out[i] = t.points[(t.start+i)%len(t.points)]
	}
	return out
}

// Resize changes the capacity, keeping the most recent points that fit.
func (t *Trail) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(t.points) {
		return
	}
	pts := t.Points()
	if len(pts) > capacity {
		pts = pts[len(pts)-capacity:]
	}
	t.points = make([]dynamo.Vec, capacity)
	copy(t.points, pts)
	t.start = 0
	t.n = len(pts)
}

func (t *Trail) Reset() {
	t.start = 0
	t.n = 0
}

func (t *Trail) clone() *Trail {
	c := &Trail{points: make([]dynamo.Vec, len(t.points)), start: t.start, n: t.n}
	copy(c.points, t.points)
	return c
}
