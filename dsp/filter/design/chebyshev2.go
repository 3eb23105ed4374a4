package design

import (
	"fmt"
	"math"

	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// chebyshev2Prototype returns the normalized analog Chebyshev Type II
// (inverse Chebyshev) lowpass: imaginary-axis zeros, reciprocal-ellipse
// poles, maximally flat passband and equiripple stopband attenuated by
// stopbandDB.
func chebyshev2Prototype(order int, stopbandDB float64) (zpk.ZPK, error) {
	if order < 1 {
		return zpk.ZPK{}, fmt.Errorf("design: chebyshev2 order %d", order)
	}

	if stopbandDB <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: chebyshev2 attenuation %v dB, want > 0", stopbandDB)
	}

	de := 1 / math.Sqrt(math.Pow(10, stopbandDB/10)-1)
	mu := math.Asinh(1/de) / float64(order)
	sinhMu, coshMu := math.Sinh(mu), math.Cosh(mu)

	// Zeros on the imaginary axis at 1/sin(theta); the DC-axis index
	// (m = 0) is skipped for odd orders.
	zeros := make([]complex128, 0, order)

	for m := -order + 1; m < order; m += 2 {
		if m == 0 {
			continue
		}

		s := math.Sin(math.Pi * float64(m) / float64(2*order))
		zeros = append(zeros, complex(0, -1/s))
	}

	poles := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		theta := math.Pi * float64(m) / float64(2*order)

		// Type I pole scaled onto the ellipse, then inverted.
		pr := -sinhMu * math.Cos(theta)
		pi := -coshMu * math.Sin(theta)
		mag2 := pr*pr + pi*pi

		if mag2 == 0 {
			return zpk.ZPK{}, fmt.Errorf("design: chebyshev2 pole at origin (order %d)", order)
		}

		poles = append(poles, complex(pr/mag2, -pi/mag2))
	}

	num := realProductNeg(poles)

	den := realProductNeg(zeros)
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: chebyshev2 degenerate zero product %v", den)
	}

	gain := num / den
	if gain <= 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: chebyshev2 degenerate gain %v", gain)
	}

	return zpk.ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}
