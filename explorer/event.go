package explorer

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JWKennington/app-dsp-filter-design/dsp/filter/design"
	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// EventKind identifies one control interaction.
type EventKind string

// Supported control events.
const (
	EventSetParams  EventKind = "set_params"
	EventAddPole    EventKind = "add_pole"
	EventAddZero    EventKind = "add_zero"
	EventRemovePole EventKind = "remove_pole"
	EventRemoveZero EventKind = "remove_zero"
	EventReset      EventKind = "reset"
	EventToggleROC  EventKind = "toggle_roc"
	EventDrag       EventKind = "drag"
)

// Event is one control interaction. Params is required for set_params;
// ShapeIndex/X/Y are required for drag.
type Event struct {
	Kind   EventKind      `json:"kind"`
	Params *design.Params `json:"params,omitempty"`

	// Drag payload: index into the plot's shape list (background shapes
	// first, then zeros, then poles) and the new marker position.
	ShapeIndex int     `json:"shape_index,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
}

// Event errors.
var (
	ErrSessionNotFound = errors.New("explorer: session not found")
	ErrUnknownEvent    = errors.New("explorer: unknown event kind")
	ErrMissingParams   = errors.New("explorer: set_params event without params")
	ErrBackgroundShape = errors.New("explorer: drag targets a background shape")
	ErrShapeOutOfRange = errors.New("explorer: drag shape index out of range")
	ErrNonFinitePos    = errors.New("explorer: drag position is not finite")
)

// Initial marker positions for manually added singularities.
const (
	addedPoleAnalogRe  = -0.5
	addedPoleDigitalRe = 0.5
	addedImag          = 0.5
)

// Apply runs one event against the session and returns the updated
// snapshot. Parameter changes redesign the filter wholesale; add, remove,
// and drag events mutate the current pole/zero set in place.
//
//nolint:cyclop
func (s *Store) Apply(id uuid.UUID, ev Event) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	switch ev.Kind {
	case EventSetParams:
		if ev.Params == nil {
			return Session{}, ErrMissingParams
		}

		sess.params = *ev.Params
		if sess.params.Family != design.FamilyCustom {
			sess.state = s.designer.Design(sess.params)
		}

	case EventAddPole:
		re := addedPoleAnalogRe
		if sess.params.Domain == design.DomainDigital {
			re = addedPoleDigitalRe
		}

		sess.state.Poles = append(sess.state.Poles, complex(re, addedImag))

	case EventAddZero:
		sess.state.Zeros = append(sess.state.Zeros, complex(0, addedImag))

	case EventRemovePole:
		if n := len(sess.state.Poles); n > 0 {
			sess.state.Poles = sess.state.Poles[:n-1]
		}

	case EventRemoveZero:
		if n := len(sess.state.Zeros); n > 0 {
			sess.state.Zeros = sess.state.Zeros[:n-1]
		}

	case EventReset:
		if sess.params.Family == design.FamilyCustom {
			sess.state = zpk.Identity()
		} else {
			sess.state = s.designer.Design(sess.params)
		}

	case EventToggleROC:
		sess.showROC = !sess.showROC

	case EventDrag:
		if err := sess.drag(ev); err != nil {
			return Session{}, err
		}

	default:
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	s.log.Debug("event applied",
		zap.String("session_id", sess.id.String()),
		zap.String("kind", string(ev.Kind)))

	return sess.snapshot(), nil
}

// drag routes a shape-index update to the right zero or pole. The plot's
// shape list holds non-draggable background shapes first (unit circle,
// region-of-convergence shading), so their count offsets the index before
// it can address the zero and pole markers.
func (sess *session) drag(ev Event) error {
	if math.IsNaN(ev.X) || math.IsInf(ev.X, 0) || math.IsNaN(ev.Y) || math.IsInf(ev.Y, 0) {
		return ErrNonFinitePos
	}

	idx := ev.ShapeIndex - sess.backgroundShapeCount()
	if idx < 0 {
		return ErrBackgroundShape
	}

	if idx < len(sess.state.Zeros) {
		sess.state.Zeros[idx] = complex(ev.X, ev.Y)
		return nil
	}

	idx -= len(sess.state.Zeros)
	if idx < len(sess.state.Poles) {
		sess.state.Poles[idx] = complex(ev.X, ev.Y)
		return nil
	}

	return ErrShapeOutOfRange
}

// backgroundShapeCount mirrors the shape list built by PoleZero: the unit
// circle for digital filters, plus the stability shading when the ROC
// overlay is on.
func (sess *session) backgroundShapeCount() int {
	n := 0
	if sess.params.Domain == design.DomainDigital {
		n++
	}

	if sess.showROC {
		n++
	}

	return n
}
