package zpk

// State is the JSON-safe form of a ZPK: complex values become [re, im]
// pairs. The round trip State -> ZPK -> State is lossless for finite
// inputs because no arithmetic is performed on the components.
type State struct {
	Poles [][2]float64 `json:"poles"`
	Zeros [][2]float64 `json:"zeros"`
	Gain  float64      `json:"gain"`
}

// ToState converts the filter to its JSON-safe pair form.
func (f ZPK) ToState() State {
	return State{
		Poles: PairsFromComplex(f.Poles),
		Zeros: PairsFromComplex(f.Zeros),
		Gain:  f.Gain,
	}
}

// FromState reconstructs a filter from its JSON-safe pair form.
func FromState(s State) ZPK {
	return ZPK{
		Poles: ComplexFromPairs(s.Poles),
		Zeros: ComplexFromPairs(s.Zeros),
		Gain:  s.Gain,
	}
}

// PairsFromComplex converts complex values to [re, im] pairs. The result is
// never nil so it always serializes as a JSON array.
func PairsFromComplex(v []complex128) [][2]float64 {
	out := make([][2]float64, len(v))
	for i, x := range v {
		out[i] = [2]float64{real(x), imag(x)}
	}

	return out
}

// ComplexFromPairs converts [re, im] pairs back to complex values.
func ComplexFromPairs(pairs [][2]float64) []complex128 {
	out := make([]complex128, len(pairs))
	for i, p := range pairs {
		out[i] = complex(p[0], p[1])
	}

	return out
}
