// Package polyroot provides polynomial construction, evaluation,
// conjugate-pair bookkeeping, and the power-series machinery shared by the
// transfer-function and partial-fraction code.
//
// Unless noted otherwise, coefficient slices are in descending power order:
// coeff[0]*x^n + coeff[1]*x^(n-1) + ... + coeff[n].
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// FromRoots expands a monic polynomial from its roots. The result has
// degree len(roots) and leading coefficient 1.
func FromRoots(roots []complex128) []complex128 {
	coeff := make([]complex128, 1, len(roots)+1)
	coeff[0] = 1

	for _, r := range roots {
		coeff = append(coeff, 0)
		for i := len(coeff) - 1; i >= 1; i-- {
			coeff[i] -= r * coeff[i-1]
		}
	}

	return coeff
}

// PolyEval evaluates a polynomial at x using Horner's method.
func PolyEval(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Derivative returns the coefficients of the first derivative.
func Derivative(coeff []complex128) []complex128 {
	n := len(coeff) - 1
	if n <= 0 {
		return nil
	}

	out := make([]complex128, n)
	for i := range n {
		out[i] = coeff[i] * complex(float64(n-i), 0)
	}

	return out
}

// TaylorShift re-expands a polynomial around the point p. The result is in
// ascending power order: out[t] is the coefficient of (x-p)^t. It is
// computed by repeated synthetic division, which yields the Taylor
// coefficients as the remainder sequence.
func TaylorShift(coeff []complex128, p complex128) []complex128 {
	n := len(coeff)
	if n == 0 {
		return nil
	}

	work := append([]complex128(nil), coeff...)
	out := make([]complex128, n)

	for t := range n {
		for i := 1; i < len(work); i++ {
			work[i] += p * work[i-1]
		}

		out[t] = work[len(work)-1]
		work = work[:len(work)-1]
	}

	return out
}

// SeriesDiv divides two power series to n terms. Both inputs and the output
// are in ascending power order; den[0] must be nonzero.
func SeriesDiv(num, den []complex128, n int) ([]complex128, error) {
	if len(den) == 0 || den[0] == 0 || n <= 0 {
		return nil, ErrDegeneratePolynomial
	}

	out := make([]complex128, n)
	for k := range n {
		acc := complex(0, 0)
		if k < len(num) {
			acc = num[k]
		}

		for j := 1; j <= k && j < len(den); j++ {
			acc -= den[j] * out[k-j]
		}

		out[k] = acc / den[0]
	}

	return out, nil
}

// LongDivide performs polynomial long division, returning quotient and
// remainder such that num = quot*den + rem. Inputs are in descending power
// order; the denominator's leading coefficient must be nonzero.
func LongDivide(num, den []complex128) ([]complex128, []complex128, error) {
	if len(den) == 0 || den[0] == 0 {
		return nil, nil, ErrDegeneratePolynomial
	}

	if len(num) < len(den) {
		return nil, append([]complex128(nil), num...), nil
	}

	rem := append([]complex128(nil), num...)
	quot := make([]complex128, len(num)-len(den)+1)

	for i := range quot {
		q := rem[i] / den[0]
		quot[i] = q

		for j := range den {
			rem[i+j] -= q * den[j]
		}
	}

	return quot, rem[len(quot):], nil
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// PairConjugates groups the complex roots of a set into conjugate pairs,
// matching each unused root to the closest candidate for its conjugate and
// validating the pairing within tol. Roots whose imaginary part is
// negligible at tol stand alone and do not pair. An error means the set
// cannot expand into a real-coefficient polynomial.
func PairConjugates(roots []complex128, tol float64) ([][2]complex128, error) {
	used := make([]bool, len(roots))
	pairs := make([][2]complex128, 0, len(roots)/2)

	for i := range roots {
		if used[i] {
			continue
		}

		root := roots[i]
		if math.Abs(imag(root)) <= tol*math.Max(1, cmplx.Abs(root)) {
			used[i] = true
			continue
		}

		conj := complex(real(root), -imag(root))
		best := -1
		bestDist := math.MaxFloat64

		for j := range roots {
			if i == j || used[j] {
				continue
			}

			d := cmplx.Abs(roots[j] - conj)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], tol) {
			return nil, ErrDegeneratePolynomial
		}

		used[i] = true
		used[best] = true
		pairs = append(pairs, [2]complex128{root, roots[best]})
	}

	return pairs, nil
}
