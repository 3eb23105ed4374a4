// Package testutil holds the shared assertions of the dsp package tests:
// elementwise tolerance checks for response arrays and conjugate-closure
// checks for pole/zero sets.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps. Response arrays (magnitude,
// phase, amplitude) are compared with this.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf. Every derived
// response array must satisfy this regardless of the filter state.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireComplexNearlyEqual fails t if got and want differ by more than eps
// in modulus.
func RequireComplexNearlyEqual(t *testing.T, got, want complex128, eps float64) {
	t.Helper()

	if d := cmplx.Abs(got - want); d > eps {
		t.Fatalf("got %v, want %v (|diff| %v > eps %v)", got, want, d, eps)
	}
}

// RequireAllFiniteComplex fails t if any element is NaN or Inf in either
// component.
func RequireAllFiniteComplex(t *testing.T, data []complex128) {
	t.Helper()

	for i, v := range data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireConjugateClosed fails t unless the root set satisfies
// ConjugateClosed. Synthesized pole and zero sets must pass this for the
// expanded transfer function to have real coefficients.
func RequireConjugateClosed(t *testing.T, roots []complex128, eps float64) {
	t.Helper()

	if !ConjugateClosed(roots, eps) {
		t.Fatalf("root set is not conjugate-closed within %v: %v", eps, roots)
	}
}

// ConjugateClosed reports whether every root with a nonzero imaginary part
// has its conjugate in the set, within eps.
func ConjugateClosed(roots []complex128, eps float64) bool {
	for i, r := range roots {
		if math.Abs(imag(r)) <= eps {
			continue
		}

		conj := complex(real(r), -imag(r))
		found := false

		for j, s := range roots {
			if i == j {
				continue
			}

			if cmplx.Abs(s-conj) <= eps {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
