package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrSeriesTooShort = errors.New("series too short")
	ErrNoSignal       = errors.New("series has no periodic signal")
)

const minSamples = 4

func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

func PowerSpectrum(data []float64) []float64 {
	spec := FFT(data)
	ps := make([]float64, len(spec)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}

	return ps
}

// DominantPeriod returns the period of the strongest non-DC frequency in a
// series sampled every sampleDt. The series is mean-removed and zero-padded
// to a power of two.
func DominantPeriod(series []float64, sampleDt float64) (float64, error) {
	if len(series) < minSamples {
		return 0, ErrSeriesTooShort
	}
	if !(sampleDt > 0) {
		return 0, errors.New("sample interval must be positive")
	}

	var mean float64
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	n := nextPow2(len(series))
	padded := make([]float64, n)
	var peak float64
	for i, v := range series {
		padded[i] = v - mean
		peak = math.Max(peak, math.Abs(padded[i]))
	}
	if peak <= 1e-12*(1+math.Abs(mean)) {
		return 0, ErrNoSignal
	}

	ps := PowerSpectrum(padded)
	best := 0
	for k := 1; k < len(ps); k++ {
		if best == 0 || ps[k] > ps[best] {
			best = k
		}
	}
	if best == 0 || ps[best] == 0 {
		return 0, ErrNoSignal
	}

	return float64(n) * sampleDt / float64(best), nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
