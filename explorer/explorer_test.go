package explorer

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JWKennington/app-dsp-filter-design/dsp/filter/design"
	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

func newCustomSession(t *testing.T, s *Store, domain design.Domain) Session {
	t.Helper()

	sess := s.Create()
	params := sess.Params
	params.Family = design.FamilyCustom
	params.Domain = domain

	sess, err := s.Apply(sess.ID, Event{Kind: EventSetParams, Params: &params})
	require.NoError(t, err)

	sess, err = s.Apply(sess.ID, Event{Kind: EventReset})
	require.NoError(t, err)

	return sess
}

func TestCreateStartsWithDefaultDesign(t *testing.T) {
	s := NewStore(nil)

	sess := s.Create()

	assert.Equal(t, design.FamilyButterworth, sess.Params.Family)
	assert.Equal(t, 4, sess.Params.Order)
	assert.Len(t, sess.State.Poles, 4)
	assert.Empty(t, sess.State.Zeros)

	got, ok := s.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess, got)
}

func TestGetAndDeleteUnknownSession(t *testing.T) {
	s := NewStore(nil)

	_, ok := s.Get(uuid.New())
	assert.False(t, ok)

	assert.False(t, s.Delete(uuid.New()))

	sess := s.Create()
	require.Equal(t, 1, s.Len())
	assert.True(t, s.Delete(sess.ID))
	assert.Equal(t, 0, s.Len())
}

func TestSetParamsRedesignsFilter(t *testing.T) {
	s := NewStore(nil)
	sess := s.Create()

	params := sess.Params
	params.Order = 2
	params.Domain = design.DomainDigital
	params.Cutoff1 = 0.25

	sess, err := s.Apply(sess.ID, Event{Kind: EventSetParams, Params: &params})
	require.NoError(t, err)

	assert.Len(t, sess.State.Poles, 2)
	assert.Len(t, sess.State.Zeros, 2)

	_, err = s.Apply(sess.ID, Event{Kind: EventSetParams})
	assert.ErrorIs(t, err, ErrMissingParams)
}

func TestSetParamsCustomKeepsState(t *testing.T) {
	s := NewStore(nil)
	sess := s.Create()
	require.Len(t, sess.State.Poles, 4)

	params := sess.Params
	params.Family = design.FamilyCustom

	sess, err := s.Apply(sess.ID, Event{Kind: EventSetParams, Params: &params})
	require.NoError(t, err)

	// Switching to Custom keeps the existing poles for hand editing.
	assert.Len(t, sess.State.Poles, 4)
}

func TestAddAndRemoveSingularities(t *testing.T) {
	s := NewStore(nil)
	sess := newCustomSession(t, s, design.DomainAnalog)

	sess, err := s.Apply(sess.ID, Event{Kind: EventAddPole})
	require.NoError(t, err)
	require.Len(t, sess.State.Poles, 1)
	assert.Equal(t, [2]float64{-0.5, 0.5}, sess.State.Poles[0])

	sess, err = s.Apply(sess.ID, Event{Kind: EventAddZero})
	require.NoError(t, err)
	require.Len(t, sess.State.Zeros, 1)
	assert.Equal(t, [2]float64{0, 0.5}, sess.State.Zeros[0])

	sess, err = s.Apply(sess.ID, Event{Kind: EventRemovePole})
	require.NoError(t, err)
	assert.Empty(t, sess.State.Poles)

	// Removing from an empty set is a no-op.
	sess, err = s.Apply(sess.ID, Event{Kind: EventRemovePole})
	require.NoError(t, err)
	assert.Empty(t, sess.State.Poles)

	digital := newCustomSession(t, s, design.DomainDigital)

	digital, err = s.Apply(digital.ID, Event{Kind: EventAddPole})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0.5, 0.5}, digital.State.Poles[0])
}

func TestResetCustomClearsToIdentity(t *testing.T) {
	s := NewStore(nil)
	sess := newCustomSession(t, s, design.DomainAnalog)

	sess, err := s.Apply(sess.ID, Event{Kind: EventAddPole})
	require.NoError(t, err)
	require.Len(t, sess.State.Poles, 1)

	sess, err = s.Apply(sess.ID, Event{Kind: EventReset})
	require.NoError(t, err)

	assert.Empty(t, sess.State.Poles)
	assert.Empty(t, sess.State.Zeros)
	assert.Equal(t, 1.0, sess.State.Gain)
}

func TestDragRoutesThroughBackgroundOffset(t *testing.T) {
	s := NewStore(nil)
	sess := newCustomSession(t, s, design.DomainDigital)

	var err error
	sess, err = s.Apply(sess.ID, Event{Kind: EventAddZero})
	require.NoError(t, err)
	sess, err = s.Apply(sess.ID, Event{Kind: EventAddPole})
	require.NoError(t, err)

	// Digital plots lead with the unit circle, so index 0 is background.
	_, err = s.Apply(sess.ID, Event{Kind: EventDrag, ShapeIndex: 0, X: 0.1, Y: 0.2})
	assert.ErrorIs(t, err, ErrBackgroundShape)

	sess, err = s.Apply(sess.ID, Event{Kind: EventDrag, ShapeIndex: 1, X: 0.1, Y: 0.2})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0.1, 0.2}, sess.State.Zeros[0])

	sess, err = s.Apply(sess.ID, Event{Kind: EventDrag, ShapeIndex: 2, X: -0.3, Y: 0.4})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{-0.3, 0.4}, sess.State.Poles[0])

	_, err = s.Apply(sess.ID, Event{Kind: EventDrag, ShapeIndex: 3, X: 0, Y: 0})
	assert.ErrorIs(t, err, ErrShapeOutOfRange)

	_, err = s.Apply(sess.ID, Event{Kind: EventDrag, ShapeIndex: 1, X: math.NaN(), Y: 0})
	assert.ErrorIs(t, err, ErrNonFinitePos)
}

func TestToggleROCShiftsDragOffset(t *testing.T) {
	s := NewStore(nil)
	sess := newCustomSession(t, s, design.DomainDigital)

	var err error
	sess, err = s.Apply(sess.ID, Event{Kind: EventAddZero})
	require.NoError(t, err)

	sess, err = s.Apply(sess.ID, Event{Kind: EventToggleROC})
	require.NoError(t, err)
	require.True(t, sess.ShowROC)

	// Unit circle plus ROC shading: the zero now sits at index 2.
	_, err = s.Apply(sess.ID, Event{Kind: EventDrag, ShapeIndex: 1, X: 0.1, Y: 0.2})
	assert.ErrorIs(t, err, ErrBackgroundShape)

	sess, err = s.Apply(sess.ID, Event{Kind: EventDrag, ShapeIndex: 2, X: 0.1, Y: 0.2})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0.1, 0.2}, sess.State.Zeros[0])
}

func TestUnknownEventAndSession(t *testing.T) {
	s := NewStore(nil)
	sess := s.Create()

	_, err := s.Apply(sess.ID, Event{Kind: "explode"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = s.Apply(uuid.New(), Event{Kind: EventReset})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPlotsAnalogDefault(t *testing.T) {
	s := NewStore(nil)
	sess := s.Create()

	plots, err := s.Plots(sess.ID)
	require.NoError(t, err)

	assert.True(t, plots.Bode.LogX)
	assert.Len(t, plots.Bode.Freq, 500)
	assert.Len(t, plots.Bode.MagnitudeDB, 500)
	assert.Len(t, plots.Bode.PhaseDeg, 500)
	assert.Empty(t, plots.Bode.MeasuredFreq)

	assert.Equal(t, "line", plots.Impulse.Style)
	assert.Len(t, plots.Impulse.Time, 1000)
	assert.Len(t, plots.Impulse.Amplitude, 1000)
	assert.Empty(t, plots.Impulse.Message)

	assert.Empty(t, plots.PoleZero.Shapes)
	assert.Len(t, plots.PoleZero.Poles.X, 4)
	assert.Empty(t, plots.PoleZero.Zeros.X)
}

func TestPlotsDigitalCarriesMeasuredOverlay(t *testing.T) {
	s := NewStore(nil)
	sess := s.Create()

	params := sess.Params
	params.Domain = design.DomainDigital
	params.Cutoff1 = 0.25

	_, err := s.Apply(sess.ID, Event{Kind: EventSetParams, Params: &params})
	require.NoError(t, err)

	plots, err := s.Plots(sess.ID)
	require.NoError(t, err)

	assert.False(t, plots.Bode.LogX)
	assert.Equal(t, "bar", plots.Impulse.Style)
	assert.Len(t, plots.Impulse.Time, 101)

	require.NotEmpty(t, plots.Bode.MeasuredFreq)
	assert.Equal(t, len(plots.Bode.MeasuredFreq), len(plots.Bode.MeasuredDB))

	// The unit circle leads the shape list.
	require.Len(t, plots.PoleZero.Shapes, 1)
	assert.Equal(t, "circle", plots.PoleZero.Shapes[0].Type)
}

func TestPlotsImproperAnalogReportsUndefinedImpulse(t *testing.T) {
	s := NewStore(nil)
	sess := newCustomSession(t, s, design.DomainAnalog)

	var err error
	for range 2 {
		sess, err = s.Apply(sess.ID, Event{Kind: EventAddZero})
		require.NoError(t, err)
	}

	sess, err = s.Apply(sess.ID, Event{Kind: EventAddPole})
	require.NoError(t, err)

	plots, err := s.Plots(sess.ID)
	require.NoError(t, err)

	assert.Equal(t, UndefinedImpulseMessage, plots.Impulse.Message)
	assert.Empty(t, plots.Impulse.Time)

	_, err = s.Plots(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRestoreReplacesState(t *testing.T) {
	s := NewStore(nil)
	sess := s.Create()

	params := sess.Params
	params.Family = design.FamilyCustom

	state := zpk.State{
		Poles: [][2]float64{{-1, 0}},
		Zeros: [][2]float64{},
		Gain:  2,
	}

	restored, err := s.Restore(sess.ID, params, state)
	require.NoError(t, err)
	assert.Equal(t, state.Poles, restored.State.Poles)
	assert.Equal(t, 2.0, restored.State.Gain)
	assert.Equal(t, design.FamilyCustom, restored.Params.Family)

	bad := zpk.State{Poles: [][2]float64{{math.Inf(1), 0}}, Gain: 1}
	_, err = s.Restore(sess.ID, params, bad)
	assert.Error(t, err)

	_, err = s.Restore(uuid.New(), params, state)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
