package explorer

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JWKennington/app-dsp-filter-design/dsp/filter/design"
	"github.com/JWKennington/app-dsp-filter-design/dsp/response"
	"github.com/JWKennington/app-dsp-filter-design/dsp/spectrum"
	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// UndefinedImpulseMessage is rendered when the impulse response cannot be
// computed (improper analog transfer function or degenerate expansion).
const UndefinedImpulseMessage = "impulse response undefined: transfer function has no proper partial-fraction expansion"

// measuredOverlayMinFFT pads the impulse-spectrum FFT so the measured Bode
// overlay has enough frequency resolution to compare against the swept one.
const measuredOverlayMinFFT = 512

// Marker is one scatter series on the pole-zero map.
type Marker struct {
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	Name string    `json:"name"`
}

// Shape is one non-draggable background shape on the pole-zero map.
type Shape struct {
	Type   string  `json:"type"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Y0     float64 `json:"y0"`
	Y1     float64 `json:"y1"`
	Dashed bool    `json:"dashed"`
	Filled bool    `json:"filled"`
}

// PoleZeroPlot is the editable map: background shapes first, then zero
// markers, then pole markers. Drag events index into that combined list.
type PoleZeroPlot struct {
	Shapes []Shape `json:"shapes"`
	Zeros  Marker  `json:"zeros"`
	Poles  Marker  `json:"poles"`
}

// BodePlot carries the swept magnitude/phase series, plus an FFT-measured
// magnitude overlay of the computed impulse response for digital filters.
type BodePlot struct {
	Freq        []float64 `json:"freq"`
	MagnitudeDB []float64 `json:"magnitude_db"`
	PhaseDeg    []float64 `json:"phase_deg"`
	LogX        bool      `json:"log_x"`

	MeasuredFreq []float64 `json:"measured_freq,omitempty"`
	MeasuredDB   []float64 `json:"measured_db,omitempty"`
}

// ImpulsePlot is a bar series for digital filters, a line for analog, or an
// explanatory message when the response is undefined.
type ImpulsePlot struct {
	Style     string    `json:"style"`
	Time      []float64 `json:"time,omitempty"`
	Amplitude []float64 `json:"amplitude,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Plots is the full payload rendered after every state change.
type Plots struct {
	PoleZero PoleZeroPlot `json:"pole_zero"`
	Bode     BodePlot     `json:"bode"`
	Impulse  ImpulsePlot  `json:"impulse"`
}

// Plots recomputes all three plot payloads from the session's current
// state.
func (s *Store) Plots(id uuid.UUID) (Plots, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.RUnlock()
		return Plots{}, ErrSessionNotFound
	}

	f := sess.state.Clone()
	digital := sess.params.Domain == design.DomainDigital
	showROC := sess.showROC
	s.mu.RUnlock()

	out := Plots{
		PoleZero: buildPoleZero(f, digital, showROC),
		Bode:     buildBode(f, digital),
		Impulse:  buildImpulse(f, digital),
	}

	if digital && out.Impulse.Message == "" {
		s.attachMeasuredOverlay(&out)
	}

	return out, nil
}

func buildPoleZero(f zpk.ZPK, digital, showROC bool) PoleZeroPlot {
	var shapes []Shape

	if digital {
		shapes = append(shapes, Shape{Type: "circle", X0: -1, X1: 1, Y0: -1, Y1: 1, Dashed: true})
	}

	if showROC {
		// Stability region: unit disk for digital, left half-plane for
		// analog (clipped to the plot range).
		if digital {
			shapes = append(shapes, Shape{Type: "circle", X0: -1, X1: 1, Y0: -1, Y1: 1, Filled: true})
		} else {
			shapes = append(shapes, Shape{Type: "rect", X0: -2, X1: 0, Y0: -2, Y1: 2, Filled: true})
		}
	}

	return PoleZeroPlot{
		Shapes: shapes,
		Zeros:  markerFromRoots(f.Zeros, "Zeros"),
		Poles:  markerFromRoots(f.Poles, "Poles"),
	}
}

func markerFromRoots(roots []complex128, name string) Marker {
	m := Marker{
		X:    make([]float64, len(roots)),
		Y:    make([]float64, len(roots)),
		Name: name,
	}

	for i, r := range roots {
		m.X[i] = real(r)
		m.Y[i] = imag(r)
	}

	return m
}

func buildBode(f zpk.ZPK, digital bool) BodePlot {
	resp := response.Frequency(f, digital)

	return BodePlot{
		Freq:        resp.Freq,
		MagnitudeDB: resp.MagnitudeDB,
		PhaseDeg:    resp.PhaseDeg,
		LogX:        !digital,
	}
}

func buildImpulse(f zpk.ZPK, digital bool) ImpulsePlot {
	style := "line"
	if digital {
		style = "bar"
	}

	resp := response.Impulse(f, digital)
	if resp == nil {
		return ImpulsePlot{Style: style, Message: UndefinedImpulseMessage}
	}

	return ImpulsePlot{Style: style, Time: resp.Time, Amplitude: resp.Amplitude}
}

// attachMeasuredOverlay runs the FFT spectrum analyzer over the computed
// digital impulse response and attaches the measured magnitude as a second
// Bode series. Time shifts do not affect the magnitude, so the two-sided
// window feeds the FFT as-is.
func (s *Store) attachMeasuredOverlay(p *Plots) {
	freq, mag, err := spectrum.ImpulseSpectrum(p.Impulse.Amplitude, measuredOverlayMinFFT)
	if err != nil {
		s.log.Warn("impulse spectrum overlay failed", zap.Error(err))
		return
	}

	spectrum.MagnitudeDB(mag)

	p.Bode.MeasuredFreq = freq
	p.Bode.MeasuredDB = mag
}
