// Package zpk defines the zero-pole-gain representation of a transfer
// function and its conversions: transfer-function polynomials for the
// partial-fraction machinery and a JSON-safe [re, im] pair form for
// transport and storage.
package zpk

import (
	"math"
	"math/cmplx"

	"github.com/JWKennington/app-dsp-filter-design/internal/polyroot"
)

// ZPK is a transfer function in factored form:
//
//	H(x) = Gain * prod(x - Zeros[i]) / prod(x - Poles[j])
//
// where x is s for analog systems and z for digital systems.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Identity returns the unit filter: no poles, no zeros, gain 1. This is
// also the silent-failure result of the designer.
func Identity() ZPK {
	return ZPK{Gain: 1}
}

// Clone returns a deep copy.
func (f ZPK) Clone() ZPK {
	return ZPK{
		Zeros: append([]complex128(nil), f.Zeros...),
		Poles: append([]complex128(nil), f.Poles...),
		Gain:  f.Gain,
	}
}

// IsFinite reports whether the gain and all singularities are finite.
func (f ZPK) IsFinite() bool {
	if math.IsNaN(f.Gain) || math.IsInf(f.Gain, 0) {
		return false
	}

	for _, z := range f.Zeros {
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return false
		}
	}

	for _, p := range f.Poles {
		if cmplx.IsNaN(p) || cmplx.IsInf(p) {
			return false
		}
	}

	return true
}

// TransferFunction expands the factored form into numerator and denominator
// polynomial coefficients in descending power order. For a real-coefficient
// system (conjugate-closed roots, real gain) the imaginary parts of the
// result are negligible but not forcibly discarded.
func (f ZPK) TransferFunction() (b, a []complex128) {
	b = polyroot.FromRoots(f.Zeros)
	for i := range b {
		b[i] *= complex(f.Gain, 0)
	}

	a = polyroot.FromRoots(f.Poles)

	return b, a
}

// Eval evaluates H at the point x from the factored form. Direct product
// evaluation avoids the coefficient blow-up of high-order polynomial
// expansion.
func (f ZPK) Eval(x complex128) complex128 {
	num := complex(f.Gain, 0)
	for _, z := range f.Zeros {
		num *= x - z
	}

	den := complex(1, 0)
	for _, p := range f.Poles {
		den *= x - p
	}

	return num / den
}

// MaxSingularityRadius returns the largest modulus over all poles and
// zeros, and the smallest strictly positive one. ok is false when the
// filter has no singularities at all.
func (f ZPK) MaxSingularityRadius() (maxR, minPositive float64, ok bool) {
	minPositive = math.Inf(1)

	scan := func(v []complex128) {
		for _, x := range v {
			r := cmplx.Abs(x)
			if r > maxR {
				maxR = r
			}

			if r > 0 && r < minPositive {
				minPositive = r
			}
		}
	}

	scan(f.Zeros)
	scan(f.Poles)

	return maxR, minPositive, len(f.Zeros)+len(f.Poles) > 0
}

// IsRealCoefficient reports whether poles and zeros are conjugate-closed
// within tol, so the expanded transfer function has real coefficients.
func (f ZPK) IsRealCoefficient(tol float64) bool {
	if _, err := polyroot.PairConjugates(f.Zeros, tol); err != nil {
		return false
	}

	_, err := polyroot.PairConjugates(f.Poles, tol)

	return err == nil
}
