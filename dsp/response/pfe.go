package response

import (
	"math/cmplx"

	"github.com/JWKennington/app-dsp-filter-design/internal/polyroot"
)

// poleGroupTol matches nearly coincident poles into one multiplicity group.
const poleGroupTol = 1e-7

type pfeTerm struct {
	pole complex128

	// residues[j-1] multiplies 1/(x-pole)^j.
	residues []complex128
}

// partialFractions expands num/prod(x-poles) into first- and higher-order
// terms over the distinct poles. num is in descending power order and must
// have degree < len(poles). Simple poles take the closed-form residue
// num(p)/den'(p); a pole of multiplicity m takes the first m power-series
// coefficients of num/Q re-expanded around the pole, where Q is the
// denominator with that pole's factors removed.
func partialFractions(num []complex128, poles []complex128) ([]pfeTerm, error) {
	if len(poles) == 0 {
		return nil, polyroot.ErrDegeneratePolynomial
	}

	groups := groupPoles(poles)
	terms := make([]pfeTerm, 0, len(groups))
	dden := polyroot.Derivative(polyroot.FromRoots(poles))

	for _, g := range groups {
		if g.mult == 1 {
			d := polyroot.PolyEval(dden, g.pole)
			if d == 0 {
				return nil, polyroot.ErrDegeneratePolynomial
			}

			terms = append(terms, pfeTerm{
				pole:     g.pole,
				residues: []complex128{polyroot.PolyEval(num, g.pole) / d},
			})

			continue
		}

		rest := make([]complex128, 0, len(poles)-g.mult)
		for i, p := range poles {
			if !g.members[i] {
				rest = append(rest, p)
			}
		}

		numShift := polyroot.TaylorShift(num, g.pole)
		qShift := polyroot.TaylorShift(polyroot.FromRoots(rest), g.pole)

		c, err := polyroot.SeriesDiv(numShift, qShift, g.mult)
		if err != nil {
			return nil, err
		}

		residues := make([]complex128, g.mult)
		for j := 1; j <= g.mult; j++ {
			residues[j-1] = c[g.mult-j]
		}

		terms = append(terms, pfeTerm{pole: g.pole, residues: residues})
	}

	return terms, nil
}

type poleGroup struct {
	pole    complex128
	mult    int
	members []bool
}

// groupPoles clusters nearly equal poles so dragged-together or repeated
// design poles land in one multiplicity group. The group pole is the
// centroid of its members.
func groupPoles(poles []complex128) []poleGroup {
	used := make([]bool, len(poles))
	groups := make([]poleGroup, 0, len(poles))

	for i, p := range poles {
		if used[i] {
			continue
		}

		g := poleGroup{members: make([]bool, len(poles))}
		sum := complex(0, 0)
		tol := poleGroupTol * max(1, cmplx.Abs(p))

		for j := i; j < len(poles); j++ {
			if used[j] || cmplx.Abs(poles[j]-p) > tol {
				continue
			}

			used[j] = true
			g.members[j] = true
			g.mult++
			sum += poles[j]
		}

		g.pole = sum / complex(float64(g.mult), 0)
		groups = append(groups, g)
	}

	return groups
}
