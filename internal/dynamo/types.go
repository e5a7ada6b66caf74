package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a world-space 2-D vector.
type Vec = r2.Vec

// Finite reports whether both components are neither NaN nor Inf.
func Finite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
