package testutil

import "testing"

func TestConjugateClosed(t *testing.T) {
	cases := []struct {
		name  string
		roots []complex128
		want  bool
	}{
		{"empty", nil, true},
		{"real only", []complex128{-1, 2, 0}, true},
		{"one pair", []complex128{complex(0.5, 0.3), complex(0.5, -0.3)}, true},
		{"pair plus real", []complex128{complex(-1, 2), -3, complex(-1, -2)}, true},
		{"unpaired", []complex128{complex(0.5, 0.3)}, false},
		{"mismatched pair", []complex128{complex(0.5, 0.3), complex(0.6, -0.3)}, false},
	}

	for _, c := range cases {
		if got := ConjugateClosed(c.roots, 1e-9); got != c.want {
			t.Errorf("%s: ConjugateClosed = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestConjugateClosedTolerance(t *testing.T) {
	// A slightly perturbed pair passes at a loose eps and fails at a tight one.
	roots := []complex128{complex(0.5, 0.3), complex(0.5, -0.3000001)}

	if !ConjugateClosed(roots, 1e-6) {
		t.Error("perturbed pair should pass at eps 1e-6")
	}

	if ConjugateClosed(roots, 1e-9) {
		t.Error("perturbed pair should fail at eps 1e-9")
	}
}
