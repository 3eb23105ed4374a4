// Package ellipticmath implements the Landen/Jacobi elliptic function
// machinery behind the elliptic (Cauer) filter prototype: complete elliptic
// integrals, the sn/cn/dn triple, inverse Jacobi functions, and the degree
// equation.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

const (
	arcJacSNMaxIter = 10
	arcJacImagCheck = 1e-7
	degreeSeriesLen = 7
)

// Landen computes the Landen sequence of descending moduli for k.
// If tol < 1 it is interpreted as a convergence threshold; otherwise
// it is interpreted as a fixed iteration count.
func Landen(k, tol float64) []float64 {
	var v []float64
	if k == 0 || k == 1.0 {
		return []float64{k}
	}
	if tol < 1 {
		for k > tol {
			t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
			k = t * t
			v = append(v, k)
		}
	} else {
		M := int(tol)
		for i := 1; i <= M; i++ {
			t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
			k = t * t
			v = append(v, k)
		}
	}

	return v
}

// LandenK computes K(k) from a precomputed Landen sequence using
// K(k) = (pi/2) * product(1 + v[i]).
func LandenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1.0 + x
	}
	return prod * math.Pi * 0.5
}

// EllipK computes the complete elliptic integral K(k) and K'(k).
func EllipK(k, tol float64) (float64, float64) {
	return EllipKReuse(k, tol, nil)
}

// EllipKReuse is like EllipK but accepts an optional precomputed Landen
// sequence for the K(k) half.
func EllipKReuse(k, tol float64, vk []float64) (float64, float64) {
	kmin := 1e-6
	kmax := math.Sqrt(1 - kmin*kmin)

	var K, Kp float64
	if k == 1.0 {
		K = math.Inf(1)
	} else if k > kmax {
		kp := math.Sqrt((1 - k) * (1 + k))
		L := -math.Log(kp / 4.0)
		K = L + (L-1)*kp*kp/4.0
	} else {
		if vk == nil {
			vk = Landen(k, tol)
		}
		K = LandenK(vk)
	}

	if k == 0.0 {
		Kp = math.Inf(1)
	} else if k < kmin {
		L := -math.Log(k / 4.0)
		Kp = L + (L-1.0)*k*k/4.0
	} else {
		kp := math.Sqrt((1 - k) * (1 + k))
		Kp = LandenK(Landen(kp, tol))
	}

	return K, Kp
}

// SymmetricRemainder returns x modulo y mapped to approximately [-y/2, y/2].
func SymmetricRemainder(x, y float64) float64 {
	z := math.Remainder(x, y)
	correction := 0.0
	if math.Abs(z) > y/2.0 {
		correction = 1.0
	}
	return z - y*math.Copysign(correction, z)
}

// ACDE computes the inverse cd Jacobi elliptic function.
func ACDE(w complex128, k, tol float64) complex128 {
	v := Landen(k, tol)
	for i := range v {
		v1 := k
		if i > 0 {
			v1 = v[i-1]
		}
		w = w / (1.0 + cmplx.Sqrt(1.0-w*w*complex(v1*v1, 0))) * 2.0 / (1 + complex(v[i], 0))
	}

	u := 2.0 / math.Pi * cmplx.Acos(w)
	K, Kp := EllipKReuse(k, tol, v)

	return complex(SymmetricRemainder(real(u), 4), 0) + complex(0, 1)*complex(SymmetricRemainder(imag(u), 2*(Kp/K)), 0)
}

// ASNE computes the inverse sn Jacobi elliptic function.
func ASNE(w complex128, k, tol float64) complex128 {
	return 1.0 - ACDE(w, k, tol)
}

// CDE computes the cd Jacobi elliptic function.
func CDE(u complex128, k, tol float64) complex128 {
	v := Landen(k, tol)
	w := cmplx.Cos(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = (1 + complex(v[i], 0)) * w / (1.0 + complex(v[i], 0)*w*w)
	}

	return w
}

// SNE computes the sn Jacobi elliptic function for a vector of real arguments.
func SNE(u []float64, k, tol float64) []float64 {
	v := Landen(k, tol)
	w := make([]float64, len(u))
	for i := range u {
		w[i] = math.Sin(u[i] * math.Pi * 0.5)
	}
	for i := len(v) - 1; i >= 0; i-- {
		for j := range w {
			w[j] = ((1 + v[i]) * w[j]) / (1 + v[i]*w[j]*w[j])
		}
	}

	return w
}

// JacobiSCD computes the Jacobi elliptic triple (sn, cn, dn) at the
// unnormalized real argument uAbs for modulus k. The argument is divided by
// the quarter period K(k) before evaluation. Returns ok=false when the
// modulus is out of range or the evaluation degenerates.
func JacobiSCD(uAbs, k, tol float64) (sn, cn, dn float64, ok bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	K, _ := EllipK(k, tol)
	if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return 0, 0, 0, false
	}

	uNorm := uAbs / K

	sn = SNE([]float64{uNorm}, k, tol)[0]
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	dn2 := 1.0 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	if dn2 < 0 {
		dn2 = 0
	}

	dn = math.Sqrt(dn2)
	cd := real(CDE(complex(uNorm, 0), k, tol))
	cn = cd * dn

	return sn, cn, dn, true
}

// ArcJacSC1 computes the real inverse sc Jacobi function sc^-1(w, 1-m) via
// the identity sc^-1(w, 1-m) = Im(sn^-1(j*w, m)). Returns NaN when the
// real part of the inverse sn is not negligible.
func ArcJacSC1(w, m, tol float64) float64 {
	z := ArcJacSN(complex(0, w), m, tol)
	if math.Abs(real(z)) > arcJacImagCheck*math.Max(1.0, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

// ArcJacSN computes the inverse sn Jacobi function by descending Landen
// transformations of the modulus.
func ArcJacSN(w complex128, m, _ float64) complex128 {
	if m < 0 || m > 1 {
		return complex(math.NaN(), math.NaN())
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcJacSNMaxIter - 1 {
		kn := ks[len(ks)-1]
		if cmplx.Abs(kn) == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1.0-kp)/(1.0+kp))
	}

	K := 1.0
	for i := 1; i < len(ks); i++ {
		K *= real(1.0 + ks[i])
	}

	K *= math.Pi * 0.5

	wn := w

	for i := range len(ks) - 1 {
		kn := ks[i]
		knext := ks[i+1]

		den := (1.0 + knext) * (1.0 + complement(kn*wn))
		if den == 0 {
			return complex(math.NaN(), math.NaN())
		}

		wn = 2.0 * wn / den
	}

	u := (2.0 / math.Pi) * cmplx.Asin(wn)

	return complex(K, 0) * u
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1.0 - k) * (1.0 + k))
}

// DegreeParam solves the degree equation for order n and squared selectivity
// m1, returning the squared modulus m of the matching elliptic design. Uses
// the nome series expansion.
func DegreeParam(n int, m1, tol float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	k1 := math.Sqrt(m1)
	K1, _ := EllipK(k1, tol)

	K1p, _ := EllipK(math.Sqrt(1.0-m1), tol)
	if K1 <= 0 || K1p <= 0 || math.IsNaN(K1) || math.IsNaN(K1p) || math.IsInf(K1, 0) || math.IsInf(K1p, 0) {
		return math.NaN()
	}

	q1 := math.Exp(-math.Pi * K1p / K1)
	q := math.Pow(q1, 1.0/float64(n))

	num := 0.0
	for mnum := range degreeSeriesLen {
		num += math.Pow(q, float64(mnum*(mnum+1)))
	}

	den := 1.0
	for mnum := 1; mnum < degreeSeriesLen; mnum++ {
		den += 2.0 * math.Pow(q, float64(mnum*mnum))
	}

	return 16.0 * q * math.Pow(num/den, 4.0)
}
