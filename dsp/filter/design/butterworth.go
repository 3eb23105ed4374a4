package design

import (
	"fmt"
	"math"

	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// butterworthPrototype returns the normalized (wc = 1 rad/s) analog
// Butterworth lowpass: no zeros, poles evenly spaced on the left half of
// the unit circle, unit gain.
func butterworthPrototype(order int) (zpk.ZPK, error) {
	if order < 1 {
		return zpk.ZPK{}, fmt.Errorf("design: butterworth order %d", order)
	}

	poles := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		theta := math.Pi * float64(m) / float64(2*order)
		poles = append(poles, -complex(math.Cos(theta), math.Sin(theta)))
	}

	return zpk.ZPK{Poles: poles, Gain: 1}, nil
}
