package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ImpulseSpectrum measures the magnitude spectrum of a real impulse response
// by zero-padding to the next power of two and taking the forward FFT.
//
// It returns normalized frequencies (0 = DC, 1 = Nyquist) and linear
// magnitudes for the non-negative-frequency bins [0..Nyquist]. Callers that
// want decibels apply [MagnitudeDB] to the magnitude slice.
func ImpulseSpectrum(impulse []float64, minFFTSize int) (freq, mag []float64, err error) {
	if len(impulse) == 0 {
		return nil, nil, fmt.Errorf("spectrum: empty impulse response")
	}

	n := len(impulse)
	if minFFTSize > n {
		n = minFFTSize
	}

	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range impulse {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	half := fftSize/2 + 1
	mag = Magnitude(out[:half])

	freq = make([]float64, half)
	for k := range half {
		freq[k] = float64(k) / float64(fftSize/2)
	}

	return freq, mag, nil
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
