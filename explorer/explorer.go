// Package explorer implements the reactive state layer of the filter design
// tool: per-session filter state keyed by UUID, control events that redesign
// or mutate the pole/zero set, and plot payload construction for the three
// views (pole-zero map, Bode plot, impulse response).
package explorer

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JWKennington/app-dsp-filter-design/dsp/filter/design"
	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// Session holds one user's filter state. Every interaction recomputes the
// derived plots from this state; nothing derived is stored.
type Session struct {
	ID      uuid.UUID     `json:"id"`
	Params  design.Params `json:"params"`
	State   zpk.State     `json:"state"`
	ShowROC bool          `json:"show_roc"`
}

// DefaultParams is the filter every new session starts from.
func DefaultParams() design.Params {
	return design.Params{
		Family:  design.FamilyButterworth,
		Type:    design.TypeLowpass,
		Order:   4,
		Domain:  design.DomainAnalog,
		Cutoff1: 1.0,
		Cutoff2: 2.0,
	}
}

// Store is the session registry. All access is serialized through a mutex;
// callers receive snapshot copies so plot building never races with events.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	designer *design.Designer
	log      *zap.Logger
}

// session is the internal mutable record behind a Session snapshot.
type session struct {
	id      uuid.UUID
	params  design.Params
	state   zpk.ZPK
	showROC bool
}

// NewStore returns an empty session store. A nil logger disables logging.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{
		sessions: make(map[uuid.UUID]*session),
		designer: design.NewDesigner(log),
		log:      log,
	}
}

// Create starts a new session with the default Butterworth design.
func (s *Store) Create() Session {
	sess := &session{
		id:     uuid.New(),
		params: DefaultParams(),
	}
	sess.state = s.designer.Design(sess.params)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Info("session created", zap.String("session_id", sess.id.String()))

	return sess.snapshot()
}

// Get returns a snapshot of the session, if it exists.
func (s *Store) Get(id uuid.UUID) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}

	return sess.snapshot(), true
}

// Delete removes the session. It reports whether the session existed.
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}

	delete(s.sessions, id)

	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Restore replaces a session's parameters and filter state wholesale, used
// when loading a saved preset. The session keeps its identity and ROC
// toggle.
func (s *Store) Restore(id uuid.UUID, params design.Params, state zpk.State) (Session, error) {
	f := zpk.FromState(state)
	if !f.IsFinite() {
		return Session{}, fmt.Errorf("explorer: restore: non-finite filter state")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	sess.params = params
	sess.state = f

	return sess.snapshot(), nil
}

func (sess *session) snapshot() Session {
	return Session{
		ID:      sess.id,
		Params:  sess.params,
		State:   sess.state.ToState(),
		ShowROC: sess.showROC,
	}
}
