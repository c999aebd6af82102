package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/rkode/internal/trajectory"
)

// PowerSpectrum returns |X_k| for the first half of the spectrum of a real
// signal. Any length is accepted; powers of two take the radix-2 path.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// Spectrum is the power spectrum of one trajectory component.
type Spectrum struct {
	Power     []float64
	BinWidth  float64 // Hz per bin
	Dominant  float64 // Hz, 0 when no peak above DC
	Component int
}

// ComponentSpectrum removes the mean of one component, zero-pads it to a
// power of two and locates the dominant frequency. Samples are assumed to
// be evenly spaced, as every fixed-step run is.
func ComponentSpectrum(tr *trajectory.Trajectory, idx int) (*Spectrum, error) {
	values, err := tr.Component(idx)
	if err != nil {
		return nil, err
	}
	if len(values) < 4 {
		return nil, fmt.Errorf("analysis: need at least 4 samples, got %d", len(values))
	}
	dt := tr.Times[1] - tr.Times[0]
	if dt <= 0 {
		return nil, fmt.Errorf("analysis: non-increasing sample times")
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	n := 1
	for n < len(values) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range values {
		padded[i] = v - mean
	}

	ps := PowerSpectrum(padded)

	binWidth := 1.0 / (float64(n) * dt)
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	return &Spectrum{
		Power:     ps,
		BinWidth:  binWidth,
		Dominant:  float64(maxIdx) * binWidth,
		Component: idx,
	}, nil
}
