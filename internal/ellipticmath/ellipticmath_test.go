package ellipticmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}

	diff := math.Abs(a - b)
	if tol > 0 && tol < 1 {
		mag := math.Max(math.Abs(a), math.Abs(b))
		if mag > 1 {
			return diff/mag < tol
		}
	}

	return diff < tol
}

func TestLanden_Convergence(t *testing.T) {
	v := Landen(0.5, 1e-15)
	if len(v) == 0 {
		t.Fatal("Landen returned empty sequence")
	}

	last := v[len(v)-1]
	if last > 1e-15 {
		t.Fatalf("Landen did not converge: last value = %e", last)
	}

	for i := 1; i < len(v); i++ {
		if v[i] >= v[i-1] {
			t.Fatalf("Landen not monotonically decreasing at index %d: %e >= %e", i, v[i], v[i-1])
		}
	}
}

func TestLanden_Limits(t *testing.T) {
	v0 := Landen(0, 1e-15)
	if len(v0) != 1 || v0[0] != 0 {
		t.Fatalf("Landen(0) = %v, expected [0]", v0)
	}

	v1 := Landen(1, 1e-15)
	if len(v1) != 1 || v1[0] != 1 {
		t.Fatalf("Landen(1) = %v, expected [1]", v1)
	}
}

func TestLandenK_MatchesEllipK(t *testing.T) {
	k := 0.6
	v := Landen(k, 1e-15)
	got := LandenK(v)

	want, _ := EllipK(k, 1e-15)
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("LandenK mismatch: got=%g want=%g", got, want)
	}
}

func TestEllipK_KnownValues(t *testing.T) {
	K, Kp := EllipK(0, 1e-15)
	if !almostEqual(K, math.Pi/2, 1e-10) {
		t.Fatalf("K(0) = %v, expected pi/2 = %v", K, math.Pi/2)
	}

	if !math.IsInf(Kp, 1) {
		t.Fatalf("K'(0) = %v, expected +Inf", Kp)
	}

	K1, _ := EllipK(1, 1e-15)
	if !math.IsInf(K1, 1) {
		t.Fatalf("K(1) = %v, expected +Inf", K1)
	}
}

func TestEllipK_SymmetryRelation(t *testing.T) {
	k := 0.6
	kp := math.Sqrt(1 - k*k)
	K, Kprime := EllipK(k, 1e-15)
	Kkp, Kpkp := EllipK(kp, 1e-15)
	ratio1 := K / Kprime

	ratio2 := Kpkp / Kkp
	if !almostEqual(ratio1, ratio2, 1e-8) {
		t.Fatalf("symmetry: K/K' = %v, K'(k')/K(k') = %v", ratio1, ratio2)
	}
}

func TestCDE_Endpoints(t *testing.T) {
	k := 0.7

	cd0 := CDE(0, k, 1e-15)
	if !almostEqual(real(cd0), 1.0, 1e-10) {
		t.Fatalf("CDE(0, %v) = %v, expected 1", k, cd0)
	}

	cd1 := CDE(1, k, 1e-15)
	if !almostEqual(real(cd1), 0.0, 1e-10) {
		t.Fatalf("CDE(1, %v) = %v, expected 0", k, cd1)
	}
}

func TestACDE_InverseOfCDE(t *testing.T) {
	k := 0.5

	for _, uVal := range []float64{0.2, 0.5, 0.8} {
		u := complex(uVal, 0)
		w := CDE(u, k, 1e-15)

		uRecovered := ACDE(w, k, 1e-15)
		if !almostEqual(real(uRecovered), uVal, 1e-8) {
			t.Fatalf("ACDE(CDE(%v)) = %v, expected %v", uVal, real(uRecovered), uVal)
		}

		if math.Abs(imag(uRecovered)) > 1e-8 {
			t.Fatalf("ACDE(CDE(%v)): imag = %v, expected ~0", uVal, imag(uRecovered))
		}
	}
}

func TestSNE_Endpoints(t *testing.T) {
	k := 0.5

	s0 := SNE([]float64{0}, k, 1e-15)
	if !almostEqual(s0[0], 0.0, 1e-10) {
		t.Fatalf("SNE(0) = %v, expected 0", s0[0])
	}

	s1 := SNE([]float64{1}, k, 1e-15)
	if !almostEqual(s1[0], 1.0, 1e-10) {
		t.Fatalf("SNE(1) = %v, expected 1", s1[0])
	}
}

func TestJacobiSCD_ZeroModulusIsCircular(t *testing.T) {
	// With k=0 the Jacobi functions reduce to sin/cos and dn = 1.
	for _, u := range []float64{0.1, 0.4, 1.0, 1.3} {
		sn, cn, dn, ok := JacobiSCD(u, 0, 1e-15)
		if !ok {
			t.Fatalf("JacobiSCD(%v, 0) failed", u)
		}

		if !almostEqual(sn, math.Sin(u), 1e-10) || !almostEqual(cn, math.Cos(u), 1e-10) {
			t.Fatalf("JacobiSCD(%v, 0) = (%v, %v), expected (sin, cos)", u, sn, cn)
		}

		if !almostEqual(dn, 1.0, 1e-12) {
			t.Fatalf("dn(%v, 0) = %v, expected 1", u, dn)
		}
	}
}

func TestJacobiSCD_PythagoreanIdentities(t *testing.T) {
	for _, k := range []float64{0.2, 0.5, 0.9} {
		for _, u := range []float64{0.3, 0.8, 1.4} {
			sn, cn, dn, ok := JacobiSCD(u, k, 1e-15)
			if !ok {
				t.Fatalf("JacobiSCD(%v, %v) failed", u, k)
			}

			if !almostEqual(sn*sn+cn*cn, 1.0, 1e-8) {
				t.Fatalf("sn^2+cn^2 = %v at u=%v k=%v", sn*sn+cn*cn, u, k)
			}

			if !almostEqual(dn*dn+k*k*sn*sn, 1.0, 1e-8) {
				t.Fatalf("dn^2+k^2 sn^2 = %v at u=%v k=%v", dn*dn+k*k*sn*sn, u, k)
			}
		}
	}
}

func TestJacobiSCD_RejectsBadModulus(t *testing.T) {
	if _, _, _, ok := JacobiSCD(0.5, 1.0, 1e-15); ok {
		t.Error("expected failure for k = 1")
	}

	if _, _, _, ok := JacobiSCD(0.5, -0.1, 1e-15); ok {
		t.Error("expected failure for k < 0")
	}
}

func TestArcJacSN_ZeroModulusIsAsin(t *testing.T) {
	for _, w := range []float64{0.1, 0.5, 0.9} {
		z := ArcJacSN(complex(w, 0), 0, 1e-15)
		if !almostEqual(real(z), math.Asin(w), 1e-10) || math.Abs(imag(z)) > 1e-12 {
			t.Fatalf("ArcJacSN(%v, 0) = %v, expected asin = %v", w, z, math.Asin(w))
		}
	}
}

func TestArcJacSC1_RealResult(t *testing.T) {
	// sc^-1 of a positive real argument must be a positive real value.
	r := ArcJacSC1(2.0, 0.25, 1e-15)
	if math.IsNaN(r) || r <= 0 {
		t.Fatalf("ArcJacSC1(2, 0.25) = %v, expected positive real", r)
	}
}

func TestDegreeParam_SatisfiesDegreeEquation(t *testing.T) {
	for _, n := range []int{2, 4, 6} {
		for _, m1 := range []float64{0.01, 0.1, 0.25} {
			m := DegreeParam(n, m1, 1e-15)
			if !(m > 0 && m < 1) {
				t.Fatalf("DegreeParam(%d, %v) = %v, expected in (0,1)", n, m1, m)
			}

			K, Kp := EllipK(math.Sqrt(m), 1e-15)
			K1, K1p := EllipK(math.Sqrt(m1), 1e-15)
			lhs := float64(n) * Kp / K

			rhs := K1p / K1
			if !almostEqual(lhs, rhs, 1e-5) {
				t.Fatalf("degree equation: n*K'/K = %v, K1'/K1 = %v (n=%d m1=%v)", lhs, rhs, n, m1)
			}
		}
	}
}

func TestDegreeParam_RejectsBadInput(t *testing.T) {
	if !math.IsNaN(DegreeParam(0, 0.5, 1e-15)) {
		t.Error("expected NaN for order 0")
	}

	if !math.IsNaN(DegreeParam(4, 1.5, 1e-15)) {
		t.Error("expected NaN for m1 outside (0,1)")
	}
}

func TestSymmetricRemainder(t *testing.T) {
	tests := []struct {
		x, y, want float64
	}{
		{0.5, 4, 0.5},
		{-0.5, 4, -0.5},
		{5.0, 4, 1.0},
		{-5.0, 4, -1.0},
	}
	for _, tt := range tests {
		got := SymmetricRemainder(tt.x, tt.y)
		if !almostEqual(got, tt.want, 1e-12) {
			t.Fatalf("SymmetricRemainder(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
