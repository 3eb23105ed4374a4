package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// relativeDegree is the pole excess of a proper transfer function. All
// band transforms require it to be non-negative.
func relativeDegree(f zpk.ZPK) (int, error) {
	degree := len(f.Poles) - len(f.Zeros)
	if degree < 0 {
		return 0, fmt.Errorf("design: improper transfer function (%d zeros, %d poles)", len(f.Zeros), len(f.Poles))
	}

	return degree, nil
}

// LowpassToLowpass shifts the prototype cutoff from 1 rad/s to wo rad/s.
// Singularities scale by wo; the gain picks up wo^degree to keep the
// passband level.
func LowpassToLowpass(f zpk.ZPK, wo float64) (zpk.ZPK, error) {
	degree, err := relativeDegree(f)
	if err != nil {
		return zpk.ZPK{}, err
	}

	if wo <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: cutoff %v, want > 0", wo)
	}

	w := complex(wo, 0)

	out := zpk.ZPK{
		Zeros: make([]complex128, len(f.Zeros)),
		Poles: make([]complex128, len(f.Poles)),
		Gain:  f.Gain * math.Pow(wo, float64(degree)),
	}

	for i, z := range f.Zeros {
		out.Zeros[i] = z * w
	}

	for i, p := range f.Poles {
		out.Poles[i] = p * w
	}

	return out, nil
}

// LowpassToHighpass maps s -> wo/s. Finite singularities invert around
// wo and the pole excess becomes zeros at the origin.
func LowpassToHighpass(f zpk.ZPK, wo float64) (zpk.ZPK, error) {
	degree, err := relativeDegree(f)
	if err != nil {
		return zpk.ZPK{}, err
	}

	if wo <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: cutoff %v, want > 0", wo)
	}

	w := complex(wo, 0)

	zh := make([]complex128, 0, len(f.Zeros)+degree)
	for _, z := range f.Zeros {
		if z == 0 {
			return zpk.ZPK{}, fmt.Errorf("design: highpass transform of zero at origin")
		}

		zh = append(zh, w/z)
	}

	for range degree {
		zh = append(zh, 0)
	}

	ph := make([]complex128, 0, len(f.Poles))
	for _, p := range f.Poles {
		if p == 0 {
			return zpk.ZPK{}, fmt.Errorf("design: highpass transform of pole at origin")
		}

		ph = append(ph, w/p)
	}

	kh := f.Gain
	if len(f.Zeros) > 0 {
		kh *= real(complexProductNeg(f.Zeros))
	}

	if len(f.Poles) > 0 {
		den := real(complexProductNeg(f.Poles))
		if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
			return zpk.ZPK{}, fmt.Errorf("design: degenerate highpass gain denominator")
		}

		kh /= den
	}

	if kh == 0 || math.IsNaN(kh) || math.IsInf(kh, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: degenerate highpass gain %v", kh)
	}

	return zpk.ZPK{Zeros: zh, Poles: ph, Gain: kh}, nil
}

// LowpassToBandpass maps s -> (s^2 + wo^2) / (bw*s). Each prototype
// singularity splits into a pair around the center frequency wo; the
// pole excess becomes zeros at the origin.
func LowpassToBandpass(f zpk.ZPK, wo, bw float64) (zpk.ZPK, error) {
	degree, err := relativeDegree(f)
	if err != nil {
		return zpk.ZPK{}, err
	}

	if wo <= 0 || bw <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: bandpass center %v bandwidth %v, want > 0", wo, bw)
	}

	woSq := complex(wo*wo, 0)
	half := complex(bw/2, 0)

	zb := make([]complex128, 0, 2*len(f.Zeros)+degree)
	for _, z := range f.Zeros {
		zl := z * half
		d := cmplx.Sqrt(zl*zl - woSq)
		zb = append(zb, zl+d, zl-d)
	}

	for range degree {
		zb = append(zb, 0)
	}

	pb := make([]complex128, 0, 2*len(f.Poles))
	for _, p := range f.Poles {
		pl := p * half
		d := cmplx.Sqrt(pl*pl - woSq)
		pb = append(pb, pl+d, pl-d)
	}

	kb := f.Gain * math.Pow(bw, float64(degree))
	if kb == 0 || math.IsNaN(kb) || math.IsInf(kb, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: degenerate bandpass gain %v", kb)
	}

	return zpk.ZPK{Zeros: zb, Poles: pb, Gain: kb}, nil
}

// LowpassToBandstop maps s -> (bw*s) / (s^2 + wo^2). Singularities
// invert then split into pairs; the pole excess becomes zero pairs at
// +/- j*wo on the imaginary axis.
func LowpassToBandstop(f zpk.ZPK, wo, bw float64) (zpk.ZPK, error) {
	degree, err := relativeDegree(f)
	if err != nil {
		return zpk.ZPK{}, err
	}

	if wo <= 0 || bw <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: bandstop center %v bandwidth %v, want > 0", wo, bw)
	}

	woSq := complex(wo*wo, 0)
	half := complex(bw/2, 0)

	zb := make([]complex128, 0, 2*len(f.Zeros)+2*degree)
	for _, z := range f.Zeros {
		if z == 0 {
			return zpk.ZPK{}, fmt.Errorf("design: bandstop transform of zero at origin")
		}

		zh := half / z
		d := cmplx.Sqrt(zh*zh - woSq)
		zb = append(zb, zh+d, zh-d)
	}

	for range degree {
		zb = append(zb, complex(0, wo), complex(0, -wo))
	}

	pb := make([]complex128, 0, 2*len(f.Poles))
	for _, p := range f.Poles {
		if p == 0 {
			return zpk.ZPK{}, fmt.Errorf("design: bandstop transform of pole at origin")
		}

		ph := half / p
		d := cmplx.Sqrt(ph*ph - woSq)
		pb = append(pb, ph+d, ph-d)
	}

	kb := f.Gain
	if len(f.Zeros) > 0 {
		kb *= real(complexProductNeg(f.Zeros))
	}

	if len(f.Poles) > 0 {
		den := real(complexProductNeg(f.Poles))
		if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
			return zpk.ZPK{}, fmt.Errorf("design: degenerate bandstop gain denominator")
		}

		kb /= den
	}

	if kb == 0 || math.IsNaN(kb) || math.IsInf(kb, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: degenerate bandstop gain %v", kb)
	}

	return zpk.ZPK{Zeros: zb, Poles: pb, Gain: kb}, nil
}

// Bilinear maps s-plane singularities to the z-plane with the bilinear
// transform s = 2*fs*(z-1)/(z+1). The pole excess becomes zeros at
// z = -1 (Nyquist).
func Bilinear(f zpk.ZPK, fs float64) (zpk.ZPK, error) {
	degree, err := relativeDegree(f)
	if err != nil {
		return zpk.ZPK{}, err
	}

	if fs <= 0 {
		return zpk.ZPK{}, fmt.Errorf("design: sample rate %v, want > 0", fs)
	}

	fs2 := complex(2*fs, 0)

	zd := make([]complex128, 0, len(f.Zeros)+degree)
	for _, z := range f.Zeros {
		den := fs2 - z
		if den == 0 {
			return zpk.ZPK{}, fmt.Errorf("design: zero at bilinear singularity %v", z)
		}

		zd = append(zd, (fs2+z)/den)
	}

	for range degree {
		zd = append(zd, -1)
	}

	pd := make([]complex128, 0, len(f.Poles))
	for _, p := range f.Poles {
		den := fs2 - p
		if den == 0 {
			return zpk.ZPK{}, fmt.Errorf("design: pole at bilinear singularity %v", p)
		}

		pd = append(pd, (fs2+p)/den)
	}

	num := complexProductOffset(f.Zeros, fs2)

	den := complexProductOffset(f.Poles, fs2)
	if den == 0 {
		return zpk.ZPK{}, fmt.Errorf("design: degenerate bilinear gain denominator")
	}

	kd := f.Gain * real(num/den)
	if kd == 0 || math.IsNaN(kd) || math.IsInf(kd, 0) {
		return zpk.ZPK{}, fmt.Errorf("design: degenerate bilinear gain %v", kd)
	}

	return zpk.ZPK{Zeros: zd, Poles: pd, Gain: kd}, nil
}

// complexProductOffset returns the product of (off - v) over all v.
func complexProductOffset(v []complex128, off complex128) complex128 {
	prod := complex(1, 0)
	for _, x := range v {
		prod *= off - x
	}

	return prod
}
