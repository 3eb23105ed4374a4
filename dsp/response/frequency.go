// Package response evaluates the frequency and impulse responses of a
// zero-pole-gain transfer function.
//
// Frequency responses come from direct evaluation of the factored form on
// the jw axis (analog) or the unit circle (digital). Impulse responses come
// from a multiplicity-aware partial-fraction expansion and are two-sided:
// unstable poles contribute anti-causal terms so the rendered response stays
// bounded on both sides of t = 0.
package response

import (
	"math"
	"math/cmplx"

	"github.com/JWKennington/app-dsp-filter-design/dsp/spectrum"
	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

const (
	freqPoints = 500

	// Analog sweep bounds relative to the singularity spread, with the
	// defaults used when the filter has no finite singularities.
	analogSpanBelow   = 10.0
	analogSpanAbove   = 100.0
	defaultAnalogFMin = 0.1
	defaultAnalogFMax = 100.0
)

// FrequencyResponse holds one evaluated Bode sweep. For analog filters Freq
// is in rad/s on a log axis; for digital filters it is the normalized
// frequency w/pi in [0, 1).
type FrequencyResponse struct {
	Freq        []float64
	MagnitudeDB []float64
	PhaseDeg    []float64
}

// Frequency evaluates the Bode sweep of f. Analog filters get a
// 500-point logarithmic axis spanning a decade below the smallest
// singularity to two decades above the largest; digital filters get 500
// linearly spaced points over [0, pi).
func Frequency(f zpk.ZPK, digital bool) FrequencyResponse {
	freq := make([]float64, freqPoints)
	h := make([]complex128, freqPoints)

	if digital {
		for k := range freqPoints {
			w := math.Pi * float64(k) / freqPoints
			freq[k] = float64(k) / freqPoints
			h[k] = f.Eval(cmplx.Exp(complex(0, w)))
		}
	} else {
		fmin, fmax := analogAxis(f)
		logMin, logMax := math.Log10(fmin), math.Log10(fmax)

		for k := range freqPoints {
			w := math.Pow(10, logMin+(logMax-logMin)*float64(k)/(freqPoints-1))
			freq[k] = w
			h[k] = f.Eval(complex(0, w))
		}
	}

	mag := spectrum.Magnitude(h)
	spectrum.MagnitudeDB(mag)

	phase := spectrum.UnwrapPhase(spectrum.Phase(h))
	for i := range phase {
		phase[i] *= 180 / math.Pi
	}

	return FrequencyResponse{Freq: freq, MagnitudeDB: mag, PhaseDeg: phase}
}

func analogAxis(f zpk.ZPK) (fmin, fmax float64) {
	maxR, minPositive, ok := f.MaxSingularityRadius()
	if !ok || maxR == 0 {
		return defaultAnalogFMin, defaultAnalogFMax
	}

	return minPositive / analogSpanBelow, maxR * analogSpanAbove
}
