package response

import (
	"math"
	"math/cmplx"

	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
	"github.com/JWKennington/app-dsp-filter-design/internal/polyroot"
)

const (
	analogImpulsePoints = 1000
	analogTimeSpan      = 5.0
	analogMinDecayRate  = 0.1

	digitalImpulseWindow = 50

	// Digital poles beyond this radius are rendered as anti-causal
	// sequences so the drawn response stays bounded.
	anticausalRadius = 1.0 + 1e-7
)

// ImpulseResponse holds one evaluated impulse response. For analog filters
// Time is in seconds; for digital filters it holds integer sample indices.
type ImpulseResponse struct {
	Time      []float64
	Amplitude []float64
}

// Impulse computes the two-sided impulse response of f via partial-fraction
// expansion. It returns nil when the response cannot be expanded: an analog
// transfer function with more zeros than poles, no poles at all, or a
// degenerate denominator. Callers render nil as an explanatory message
// instead of a plot.
func Impulse(f zpk.ZPK, digital bool) *ImpulseResponse {
	if digital {
		return digitalImpulse(f)
	}

	return analogImpulse(f)
}

//nolint:cyclop
func analogImpulse(f zpk.ZPK) *ImpulseResponse {
	if len(f.Zeros) > len(f.Poles) || len(f.Poles) == 0 {
		return nil
	}

	b, a := f.TransferFunction()

	num := b
	if len(b) >= len(a) {
		// The quotient is a delta term and is not drawn.
		_, rem, err := polyroot.LongDivide(b, a)
		if err != nil {
			return nil
		}

		num = rem
	}

	terms, err := partialFractions(num, f.Poles)
	if err != nil {
		return nil
	}

	span := analogTimeSpan / math.Max(slowestDecayRate(f.Poles), analogMinDecayRate)

	out := &ImpulseResponse{
		Time:      make([]float64, analogImpulsePoints),
		Amplitude: make([]float64, analogImpulsePoints),
	}

	for i := range analogImpulsePoints {
		t := -span + 2*span*float64(i)/(analogImpulsePoints-1)
		out.Time[i] = t

		acc := complex(0, 0)

		for _, term := range terms {
			anticausal := real(term.pole) > 0
			if anticausal == (t >= 0) {
				continue
			}

			e := cmplx.Exp(term.pole * complex(t, 0))
			tPow := complex(1, 0)
			factorial := 1.0

			for j, r := range term.residues {
				if j > 0 {
					tPow *= complex(t, 0)
					factorial *= float64(j)
				}

				contrib := r * tPow / complex(factorial, 0) * e
				if anticausal {
					contrib = -contrib
				}

				acc += contrib
			}
		}

		out.Amplitude[i] = real(acc)
	}

	return out
}

// slowestDecayRate returns the smallest |Re p| over the poles; it sets the
// time span needed to see the slowest-decaying mode settle.
func slowestDecayRate(poles []complex128) float64 {
	rate := math.Inf(1)
	for _, p := range poles {
		if r := math.Abs(real(p)); r < rate {
			rate = r
		}
	}

	return rate
}

// digitalImpulse expands H(z) in powers of z^-1. Writing x = z^-1, the
// transfer function becomes x^(N-M) * Bx(x)/Ax(x) where Bx and Ax are the
// z-domain coefficient slices reread in ascending order, M = zero count,
// N = pole count. Direct terms from polynomial division land at their delay
// index; each denominator root contributes a causal or anti-causal
// geometric sequence depending on the z-plane pole radius.
//
//nolint:cyclop,funlen
func digitalImpulse(f zpk.ZPK) *ImpulseResponse {
	b, a := f.TransferFunction()

	delay := len(f.Poles) - len(f.Zeros)

	bx := trimAscending(b)
	ax := trimAscending(a)

	if len(ax) == 0 {
		return nil
	}

	out := &ImpulseResponse{
		Time:      make([]float64, 2*digitalImpulseWindow+1),
		Amplitude: make([]float64, 2*digitalImpulseWindow+1),
	}

	for i := range out.Time {
		out.Time[i] = float64(i - digitalImpulseWindow)
	}

	add := func(n int, v complex128) {
		idx := n + delay + digitalImpulseWindow
		if idx >= 0 && idx < len(out.Amplitude) {
			out.Amplitude[idx] += real(v)
		}
	}

	num := bx
	if len(bx) >= len(ax) && len(ax) > 1 {
		quot, rem, err := polyroot.LongDivide(descending(bx), descending(ax))
		if err != nil {
			return nil
		}

		// quot is descending in x; quot[k] is the direct term at
		// delay deg(quot)-k.
		for k, d := range quot {
			add(len(quot)-1-k, d)
		}

		num = ascending(rem)
	}

	// Poles at z = 0 are pure delays already absorbed by the x^(N-M)
	// factor; the remaining poles map to denominator roots x = 1/p.
	xRoots := make([]complex128, 0, len(f.Poles))
	lead := complex(1, 0)

	for _, p := range f.Poles {
		if p == 0 {
			continue
		}

		xRoots = append(xRoots, 1/p)
		lead *= -p
	}

	if len(xRoots) == 0 {
		// Pure FIR: the numerator coefficients are the response.
		for k, v := range num {
			add(k, v/ax[0])
		}

		return out
	}

	scaled := descending(num)
	for i := range scaled {
		scaled[i] /= lead
	}

	terms, err := partialFractions(scaled, xRoots)
	if err != nil {
		return nil
	}

	for _, term := range terms {
		p := 1 / term.pole

		for j, r := range term.residues {
			order := j + 1

			if cmplx.Abs(p) > anticausalRadius {
				// 1/(x-q)^j expanded in z: coefficients live at
				// n <= -j with binomial weights.
				for n := -order; n >= -digitalImpulseWindow-abs(delay); n-- {
					add(n, r*binomial(-n-1, order-1)*cmplx.Pow(p, complex(float64(n+order), 0)))
				}

				continue
			}

			sign := complex(1, 0)
			if order%2 == 1 {
				sign = -1
			}

			for n := 0; n <= digitalImpulseWindow+abs(delay); n++ {
				add(n, sign*r*binomial(n+order-1, order-1)*cmplx.Pow(p, complex(float64(n+order), 0)))
			}
		}
	}

	return out
}

// trimAscending reinterprets a descending z-domain coefficient slice as an
// ascending polynomial in z^-1 and drops vanishing high-order terms.
func trimAscending(c []complex128) []complex128 {
	out := append([]complex128(nil), c...)
	for len(out) > 0 && out[len(out)-1] == 0 {
		out = out[:len(out)-1]
	}

	return out
}

func descending(asc []complex128) []complex128 {
	out := make([]complex128, len(asc))
	for i, v := range asc {
		out[len(asc)-1-i] = v
	}

	return out
}

func ascending(desc []complex128) []complex128 {
	return descending(desc)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

func binomial(n, k int) complex128 {
	v := 1.0
	for i := 1; i <= k; i++ {
		v *= float64(n-k+i) / float64(i)
	}

	return complex(v, 0)
}
