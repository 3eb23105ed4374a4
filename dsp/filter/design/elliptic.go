package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
	"github.com/JWKennington/app-dsp-filter-design/internal/ellipticmath"
)

const (
	ellipticTol     = 2.2e-16
	ellipticEpsilon = 2.220446049250313e-16
)

// ellipticPrototype returns the normalized analog elliptic (Cauer)
// lowpass. Poles and zeros are placed via Jacobi elliptic functions;
// rippleDB controls passband ripple and stopbandDB the minimum stopband
// attenuation. Requires stopbandDB > rippleDB.
//
//nolint:funlen,cyclop
func ellipticPrototype(order int, rippleDB, stopbandDB float64) (zpk.ZPK, error) {
	if order < 1 {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic order %d", order)
	}

	if rippleDB <= 0 || stopbandDB <= rippleDB {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic ripple %v dB / stopband %v dB, want 0 < ripple < stopband", rippleDB, stopbandDB)
	}

	epsSq := dbToMinusOne(rippleDB)

	stopSq := dbToMinusOne(stopbandDB)
	if epsSq <= 0 || stopSq <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic degenerate ripple factors")
	}

	ck1Sq := epsSq / stopSq
	if !(ck1Sq > 0 && ck1Sq < 1) {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic selectivity %v outside (0,1)", ck1Sq)
	}

	if order == 1 {
		p := -math.Sqrt(1.0 / epsSq)
		return zpk.ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	m := ellipticmath.DegreeParam(order, ck1Sq, ellipticTol)
	if !(m > 0 && m < 1) {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic degree parameter %v outside (0,1)", m)
	}

	kmod := math.Sqrt(m)
	capk, _ := ellipticmath.EllipK(kmod, ellipticTol)
	ck1 := math.Sqrt(ck1Sq)

	val0, _ := ellipticmath.EllipK(ck1, ellipticTol)
	if capk == 0 || val0 == 0 || math.IsNaN(capk) || math.IsNaN(val0) || math.IsInf(capk, 0) || math.IsInf(val0, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic degenerate quarter periods")
	}

	start := 1 - order%2
	svals := make([]float64, 0, (order+1)/2)
	cvals := make([]float64, 0, (order+1)/2)
	dvals := make([]float64, 0, (order+1)/2)
	zerosBase := make([]complex128, 0, order)

	for j := start; j < order; j += 2 {
		u := float64(j) * capk / float64(order)

		sn, cn, dn, ok := ellipticmath.JacobiSCD(u, kmod, ellipticTol)
		if !ok {
			return zpk.ZPK{}, fmt.Errorf("design: elliptic jacobi evaluation failed at u=%v", u)
		}

		svals = append(svals, sn)
		cvals = append(cvals, cn)

		dvals = append(dvals, dn)
		if math.Abs(sn) > ellipticEpsilon {
			zerosBase = append(zerosBase, complex(0, 1)/(complex(kmod*sn, 0)))
		}
	}

	eps := math.Sqrt(epsSq)

	r := ellipticmath.ArcJacSC1(1.0/eps, ck1Sq, ellipticTol)
	if !(r > 0) || math.IsNaN(r) || math.IsInf(r, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic inverse sc failed (%v)", r)
	}

	v0 := capk * r / (float64(order) * val0)

	sv, cv, dv, ok := ellipticmath.JacobiSCD(v0, math.Sqrt(1.0-m), ellipticTol)
	if !ok {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic jacobi evaluation failed at v0=%v", v0)
	}

	polesBase := make([]complex128, len(svals))
	for i := range svals {
		den := 1.0 - (dvals[i]*sv)*(dvals[i]*sv)
		if math.Abs(den) <= ellipticEpsilon {
			return zpk.ZPK{}, fmt.Errorf("design: elliptic pole denominator underflow")
		}

		num := complex(cvals[i]*dvals[i]*sv*cv, svals[i]*dv)
		polesBase[i] = -num / complex(den, 0)
	}

	poles := make([]complex128, 0, order)
	if order%2 == 1 {
		norm2 := 0.0
		for _, p := range polesBase {
			norm2 += real(p * cmplx.Conj(p))
		}

		thr := ellipticEpsilon * math.Sqrt(norm2)

		poles = append(poles, polesBase...)
		for _, p := range polesBase {
			if math.Abs(imag(p)) > thr {
				poles = append(poles, cmplx.Conj(p))
			}
		}
	} else {
		poles = append(poles, polesBase...)
		for _, p := range polesBase {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	zeros := make([]complex128, 0, len(zerosBase)*2)
	for _, z := range zerosBase {
		zeros = append(zeros, z, cmplx.Conj(z))
	}

	prodP := complexProductNeg(poles)

	prodZ := complex(1, 0)
	if len(zeros) > 0 {
		prodZ = complexProductNeg(zeros)
	}

	if prodZ == 0 {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic zero product degenerate")
	}

	gain := real(prodP / prodZ)
	if order%2 == 0 {
		gain /= math.Sqrt(1.0 + epsSq)
	}

	if gain == 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: elliptic degenerate gain %v", gain)
	}

	return zpk.ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}

func complexProductNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}

	return out
}

func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10.0)
}
