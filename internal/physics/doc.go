// Package physics is the gravity integrator.
//
// A [System] owns an ordered set of [Body] values and advances them with
// pairwise Newtonian gravity, one [System.Step] per frame:
//
//   - velocity pass over body pairs (see [ForceMode])
//   - position pass, pos += vel*dt
//   - trail sampling every Config.TraceInterval frames
//
// The scheme is first-order and explicit. Velocities are fully updated
// before positions move, so inside one step every pair sees the same
// positions. Two bodies on the same point exert no force on each other.
//
// # Example
//
//	sys, _ := physics.NewSystem(physics.DefaultConfig())
//	sun, _ := physics.NewBody(dynamo.Vec{}, dynamo.Vec{}, 10000, 30, "yellow")
//	sys.AddBody(sun)
//	for range frames {
//	    sys.Step(1.0 / 60)
//	}
//
// # Thread Safety
//
// System is NOT thread-safe. A single driver owns it.
package physics
