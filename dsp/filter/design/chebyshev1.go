package design

import (
	"fmt"
	"math"

	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// chebyshev1Prototype returns the normalized analog Chebyshev Type I
// lowpass: no zeros, poles on an ellipse in the left half-plane, gain set
// for unit passband edge response (even orders sit rippleDB down at DC).
func chebyshev1Prototype(order int, rippleDB float64) (zpk.ZPK, error) {
	if order < 1 {
		return zpk.ZPK{}, fmt.Errorf("design: chebyshev1 order %d", order)
	}

	if rippleDB <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: chebyshev1 ripple %v dB, want > 0", rippleDB)
	}

	eps := math.Sqrt(math.Pow(10, rippleDB/10) - 1)
	mu := math.Asinh(1/eps) / float64(order)
	sinhMu, coshMu := math.Sinh(mu), math.Cosh(mu)

	poles := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		theta := math.Pi * float64(m) / float64(2*order)
		poles = append(poles, complex(-sinhMu*math.Cos(theta), -coshMu*math.Sin(theta)))
	}

	gain := realProductNeg(poles)
	if order%2 == 0 {
		gain /= math.Sqrt(1 + eps*eps)
	}

	if gain <= 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: chebyshev1 degenerate gain %v", gain)
	}

	return zpk.ZPK{Poles: poles, Gain: gain}, nil
}

// realProductNeg returns the real part of prod(-v). For conjugate-closed
// sets the product is real up to rounding.
func realProductNeg(v []complex128) float64 {
	return real(complexProductNeg(v))
}
