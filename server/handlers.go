package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JWKennington/app-dsp-filter-design/explorer"
	"github.com/JWKennington/app-dsp-filter-design/explorer/preset"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, explorer.ErrSessionNotFound)

		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	if !s.sessions.Delete(id) {
		writeError(w, http.StatusNotFound, explorer.ErrSessionNotFound)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var ev explorer.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	sess, err := s.sessions.Apply(id, ev)
	if err != nil {
		writeError(w, statusForEventError(err), err)

		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handlePlots(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	plots, err := s.sessions.Plots(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)

		return
	}

	writeJSON(w, http.StatusOK, plots)
}

// savePresetRequest names which session's state to snapshot as a preset.
type savePresetRequest struct {
	Name      string    `json:"name"`
	SessionID uuid.UUID `json:"session_id"`
}

func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w) {
		return
	}

	var req savePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	sess, ok := s.sessions.Get(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, explorer.ErrSessionNotFound)

		return
	}

	p := preset.Preset{Name: req.Name, Params: sess.Params, State: sess.State}
	if err := s.presets.Save(r.Context(), p); err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	s.log.Info("preset saved", zap.String("name", req.Name))
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w) {
		return
	}

	list, err := s.presets.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)

		return
	}

	if list == nil {
		list = []preset.Preset{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w) {
		return
	}

	p, err := s.presets.Load(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, statusForPresetError(err), err)

		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w) {
		return
	}

	if err := s.presets.Delete(r.Context(), r.PathValue("name")); err != nil {
		writeError(w, statusForPresetError(err), err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleLoadPreset restores a saved preset into an existing session.
func (s *Server) handleLoadPreset(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w) {
		return
	}

	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	p, err := s.presets.Load(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, statusForPresetError(err), err)

		return
	}

	sess, err := s.sessions.Restore(id, p.Params, p.State)
	if err != nil {
		writeError(w, statusForEventError(err), err)

		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return uuid.Nil, false
	}

	return id, true
}

func (s *Server) presetsEnabled(w http.ResponseWriter) bool {
	if s.presets == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("preset store not configured"))

		return false
	}

	return true
}

func statusForEventError(err error) int {
	if errors.Is(err, explorer.ErrSessionNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

func statusForPresetError(err error) int {
	if errors.Is(err, preset.ErrNotFound) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
