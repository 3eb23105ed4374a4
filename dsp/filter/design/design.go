// Package design synthesizes classical analog and digital filters in
// zero-pole-gain form.
//
// The synthesis pipeline follows the standard construction: a normalized
// analog lowpass prototype (Butterworth, Chebyshev I/II, Elliptic, Bessel)
// is frequency-transformed to the requested band shape and, for digital
// filters, mapped to the z-plane by the bilinear transform with frequency
// prewarping.
//
// The designer never returns an error: any synthesis failure yields the
// identity filter (no poles, no zeros, unit gain) and a warn-level log
// entry. Presentation layers treat the identity result as "nothing to
// plot" rather than a fault.
package design

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// Family selects the approximation family.
type Family string

// Supported families. Custom means the caller manages poles and zeros
// directly; designing a Custom filter is a no-op.
const (
	FamilyButterworth Family = "Butterworth"
	FamilyChebyshev1  Family = "Chebyshev I"
	FamilyChebyshev2  Family = "Chebyshev II"
	FamilyElliptic    Family = "Elliptic"
	FamilyBessel      Family = "Bessel"
	FamilyCustom      Family = "Custom"
)

// Type selects the band shape.
type Type string

// Supported band shapes.
const (
	TypeLowpass  Type = "low"
	TypeHighpass Type = "high"
	TypeBandpass Type = "bandpass"
	TypeBandstop Type = "bandstop"
)

// Domain selects the transform domain.
type Domain string

// Supported domains. Analog cutoffs are in rad/s; digital cutoffs are
// normalized to the Nyquist frequency (1.0 = Nyquist).
const (
	DomainAnalog  Domain = "analog"
	DomainDigital Domain = "digital"
)

// Default ripple and attenuation used when Params leaves them zero.
const (
	DefaultPassbandRippleDB  = 1.0
	DefaultStopbandAttenDB   = 40.0
	minCutoff                = 1e-6
	maxDigitalCutoff         = 0.999
	digitalPrewarpSampleRate = 2.0
)

// Params describes one filter design request.
type Params struct {
	Family  Family  `json:"family"`
	Type    Type    `json:"type"`
	Order   int     `json:"order"`
	Domain  Domain  `json:"domain"`
	Cutoff1 float64 `json:"cutoff1"`
	Cutoff2 float64 `json:"cutoff2"`

	// PassbandRippleDB applies to Chebyshev I and Elliptic designs;
	// StopbandAttenDB applies to Chebyshev II and Elliptic designs.
	// Zero selects the defaults above.
	PassbandRippleDB float64 `json:"passband_ripple_db,omitempty"`
	StopbandAttenDB  float64 `json:"stopband_atten_db,omitempty"`
}

func (p Params) ripple() float64 {
	if p.PassbandRippleDB > 0 {
		return p.PassbandRippleDB
	}

	return DefaultPassbandRippleDB
}

func (p Params) stopband() float64 {
	if p.StopbandAttenDB > 0 {
		return p.StopbandAttenDB
	}

	return DefaultStopbandAttenDB
}

// Designer runs filter synthesis with the package's silent-failure policy.
type Designer struct {
	log *zap.Logger
}

// NewDesigner returns a Designer logging through the given logger.
// A nil logger disables logging.
func NewDesigner(log *zap.Logger) *Designer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Designer{log: log}
}

// Design synthesizes a filter. Custom designs return the identity filter
// untouched (the caller owns the poles and zeros). Any failure also
// returns the identity filter after logging the failing parameters.
func (d *Designer) Design(p Params) zpk.ZPK {
	if p.Family == FamilyCustom {
		return zpk.Identity()
	}

	out, err := synthesize(p)
	if err != nil {
		d.log.Warn("filter synthesis failed, returning identity filter",
			zap.String("family", string(p.Family)),
			zap.String("type", string(p.Type)),
			zap.Int("order", p.Order),
			zap.String("domain", string(p.Domain)),
			zap.Float64("cutoff1", p.Cutoff1),
			zap.Float64("cutoff2", p.Cutoff2),
			zap.Error(err))

		return zpk.Identity()
	}

	return out
}

func synthesize(p Params) (zpk.ZPK, error) {
	if p.Order < 1 {
		return zpk.ZPK{}, fmt.Errorf("design: order %d, want >= 1", p.Order)
	}

	lo, hi, err := clampCutoffs(p)
	if err != nil {
		return zpk.ZPK{}, err
	}

	proto, err := prototype(p)
	if err != nil {
		return zpk.ZPK{}, err
	}

	digital := p.Domain == DomainDigital
	if digital {
		lo = prewarp(lo)
		hi = prewarp(hi)
	}

	shaped, err := transformBand(proto, p.Type, lo, hi)
	if err != nil {
		return zpk.ZPK{}, err
	}

	if digital {
		shaped, err = Bilinear(shaped, digitalPrewarpSampleRate)
		if err != nil {
			return zpk.ZPK{}, err
		}
	}

	if !shaped.IsFinite() || shaped.Gain == 0 {
		return zpk.ZPK{}, fmt.Errorf("design: degenerate result (gain %v)", shaped.Gain)
	}

	return shaped, nil
}

// clampCutoffs applies the safety clamps: digital cutoffs are forced into
// (0, 1) normalized Nyquist, analog cutoffs are forced positive. Band
// designs order the two cutoffs; single-band designs ignore Cutoff2.
func clampCutoffs(p Params) (lo, hi float64, err error) {
	c1, c2 := p.Cutoff1, p.Cutoff2
	if math.IsNaN(c1) || math.IsInf(c1, 0) || math.IsNaN(c2) || math.IsInf(c2, 0) {
		return 0, 0, fmt.Errorf("design: non-finite cutoff (%v, %v)", c1, c2)
	}

	band := p.Type == TypeBandpass || p.Type == TypeBandstop
	if band {
		lo, hi = math.Min(c1, c2), math.Max(c1, c2)
	} else {
		lo, hi = c1, c1
	}

	if p.Domain == DomainDigital {
		lo = clamp(lo, minCutoff, maxDigitalCutoff)
		hi = clamp(hi, minCutoff, maxDigitalCutoff)
	} else {
		lo = math.Max(lo, minCutoff)
		hi = math.Max(hi, minCutoff)
	}

	if band && hi <= lo {
		return 0, 0, fmt.Errorf("design: empty band [%v, %v] after clamping", lo, hi)
	}

	return lo, hi, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// prewarp maps a normalized digital frequency to the analog frequency the
// bilinear transform will fold back onto it.
func prewarp(wn float64) float64 {
	return 2 * digitalPrewarpSampleRate * math.Tan(math.Pi*wn/2)
}

func prototype(p Params) (zpk.ZPK, error) {
	switch p.Family {
	case FamilyButterworth:
		return butterworthPrototype(p.Order)
	case FamilyChebyshev1:
		return chebyshev1Prototype(p.Order, p.ripple())
	case FamilyChebyshev2:
		return chebyshev2Prototype(p.Order, p.stopband())
	case FamilyElliptic:
		return ellipticPrototype(p.Order, p.ripple(), p.stopband())
	case FamilyBessel:
		return besselPrototype(p.Order)
	default:
		return zpk.ZPK{}, fmt.Errorf("design: unknown family %q", p.Family)
	}
}

func transformBand(proto zpk.ZPK, t Type, lo, hi float64) (zpk.ZPK, error) {
	switch t {
	case TypeLowpass:
		return LowpassToLowpass(proto, lo)
	case TypeHighpass:
		return LowpassToHighpass(proto, lo)
	case TypeBandpass:
		return LowpassToBandpass(proto, math.Sqrt(lo*hi), hi-lo)
	case TypeBandstop:
		return LowpassToBandstop(proto, math.Sqrt(lo*hi), hi-lo)
	default:
		return zpk.ZPK{}, fmt.Errorf("design: unknown type %q", t)
	}
}
