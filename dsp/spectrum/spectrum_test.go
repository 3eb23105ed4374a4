package spectrum

import (
	"math"
	"testing"

	"github.com/JWKennington/app-dsp-filter-design/internal/testutil"
)

func TestMagnitude(t *testing.T) {
	in := []complex128{1, 1i, complex(3, 4), 0}
	want := []float64{1, 1, 5, 0}

	testutil.RequireSliceNearlyEqual(t, Magnitude(in), want, 1e-12)

	if Magnitude(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestMagnitudeFromParts(t *testing.T) {
	re := []float64{3, 0, 1}
	im := []float64{4, 2, 0}
	dst := make([]float64, 3)

	MagnitudeFromParts(dst, re, im)
	testutil.RequireSliceNearlyEqual(t, dst, []float64{5, 2, 1}, 1e-12)
}

func TestPower(t *testing.T) {
	in := []complex128{complex(3, 4), 1i}
	testutil.RequireSliceNearlyEqual(t, Power(in), []float64{25, 1}, 1e-12)
}

func TestMagnitudeDBFloorsNulls(t *testing.T) {
	mag := []float64{1, 0}
	MagnitudeDB(mag)

	if mag[0] > 1e-12 {
		t.Fatalf("0 dB point = %v", mag[0])
	}

	// The floor bounds nulls at 20*log10(1e-15) = -300 dB.
	if math.IsInf(mag[1], -1) || mag[1] < -300.0001 {
		t.Fatalf("floored null = %v", mag[1])
	}
}

func TestUnwrapPhase(t *testing.T) {
	wrapped := []float64{2.8, -2.7, -2.6}
	got := UnwrapPhase(wrapped)

	testutil.RequireSliceNearlyEqual(t, got, []float64{2.8, 2*math.Pi - 2.7, 2*math.Pi - 2.6}, 1e-12)
}

func TestImpulseSpectrumOfDelta(t *testing.T) {
	// A unit delta has a flat spectrum.
	impulse := make([]float64, 16)
	impulse[0] = 1

	freq, mag, err := ImpulseSpectrum(impulse, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(freq) != 9 || len(mag) != 9 {
		t.Fatalf("got %d/%d bins, want 9", len(freq), len(mag))
	}

	if freq[0] != 0 || math.Abs(freq[len(freq)-1]-1) > 1e-15 {
		t.Fatalf("axis [%v, %v], want [0, 1]", freq[0], freq[len(freq)-1])
	}

	for i, m := range mag {
		if math.Abs(m-1) > 1e-12 {
			t.Fatalf("bin %d magnitude %v, want 1", i, m)
		}
	}
}

func TestImpulseSpectrumPadsToPowerOfTwo(t *testing.T) {
	impulse := make([]float64, 100)
	impulse[0] = 1

	freq, _, err := ImpulseSpectrum(impulse, 0)
	if err != nil {
		t.Fatal(err)
	}

	// 100 pads to 128; half spectrum has 65 bins.
	if len(freq) != 65 {
		t.Fatalf("got %d bins, want 65", len(freq))
	}

	if _, _, err := ImpulseSpectrum(nil, 0); err == nil {
		t.Fatal("expected error for empty impulse")
	}
}
