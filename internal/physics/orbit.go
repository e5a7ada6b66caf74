package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// CircularSpeed is the speed of a circular orbit of radius r around mass m.
func CircularSpeed(g, m, r float64) float64 {
	return math.Sqrt(g * m / r)
}

// CircularVelocity returns the velocity that puts a body at position on a
// counter-clockwise circular orbit around central, in central's frame.
// For a central body at rest at the origin and position (r, 0) the result
// is (0, CircularSpeed(g, M, r)).
func CircularVelocity(g float64, central *Body, position dynamo.Vec) (dynamo.Vec, error) {
	dx := position.X - central.position.X
	dy := position.Y - central.position.Y
	r := math.Sqrt(dx*dx + dy*dy)
	if r == 0 {
		return dynamo.Vec{}, dynamo.Invalid("orbit radius", r, "must be positive")
	}
	v := CircularSpeed(g, central.mass, r)
	return dynamo.Vec{
		X: central.velocity.X - dy/r*v,
		Y: central.velocity.Y + dx/r*v,
	}, nil
}
