// Package analysis extracts periodic structure from recorded trajectories.
//
// [DominantPeriod] is the usual entry point: feed it one coordinate of a
// body's sampled positions and it reports the orbital period. The sample
// interval is in simulated time, so it includes the system's time scale.
//
//	xs := make([]float64, len(series))
//	for i, s := range series {
//	    xs[i] = s.X
//	}
//	period, err := analysis.DominantPeriod(xs, dt*timeScale*float64(sampleEvery))
package analysis
