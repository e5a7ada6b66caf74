// Package dynamo provides the primitives shared by every orbitsim layer.
//
// It defines the 2-D vector type used for positions and velocities and the
// error taxonomy:
//
//   - [Vec]: world-space vector, an alias of gonum's r2.Vec
//   - [ErrInvalidParameter]: construction-time validation failures
//   - [ErrDegenerateGeometry]: coincident bodies (handled, never returned by a step)
//   - [ErrInvalidState]: a body state that went NaN or Inf
//
// # Example
//
//	if err := dynamo.Positive("mass", m); err != nil {
//	    return nil, err
//	}
//	if errors.Is(err, dynamo.ErrInvalidParameter) {
//	    // reject the scenario
//	}
package dynamo
