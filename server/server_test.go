package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JWKennington/app-dsp-filter-design/config"
	"github.com/JWKennington/app-dsp-filter-design/explorer"
	"github.com/JWKennington/app-dsp-filter-design/explorer/preset"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	presets, err := preset.Open(filepath.Join(t.TempDir(), "presets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = presets.Close() })

	return New(config.Default(), nil, explorer.NewStore(nil), presets)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/session", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	sess := decode[explorer.Session](t, rec)
	assert.Equal(t, "Butterworth", string(sess.Params.Family))
	assert.Equal(t, 4, sess.Params.Order)

	rec = doJSON(t, h, http.MethodGet, "/api/session/"+sess.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/session/"+sess.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/session/"+sess.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionBadID(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/session/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventEndpoint(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	sess := decode[explorer.Session](t, doJSON(t, h, http.MethodPost, "/api/session", nil))
	path := "/api/session/" + sess.ID.String() + "/event"

	rec := doJSON(t, h, http.MethodPost, path, explorer.Event{Kind: explorer.EventAddPole})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[explorer.Session](t, rec)
	assert.Len(t, updated.State.Poles, 5)

	rec = doJSON(t, h, http.MethodPost, path, explorer.Event{Kind: "teleport"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost,
		"/api/session/00000000-0000-0000-0000-000000000001/event",
		explorer.Event{Kind: explorer.EventAddPole})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlotsEndpoint(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	sess := decode[explorer.Session](t, doJSON(t, h, http.MethodPost, "/api/session", nil))

	rec := doJSON(t, h, http.MethodGet, "/api/session/"+sess.ID.String()+"/plots", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	plots := decode[explorer.Plots](t, rec)
	assert.Len(t, plots.Bode.Freq, 500)
	assert.Len(t, plots.Bode.MagnitudeDB, 500)
	assert.Equal(t, "line", plots.Impulse.Style)
}

func TestPresetRoundTrip(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	sess := decode[explorer.Session](t, doJSON(t, h, http.MethodPost, "/api/session", nil))

	rec := doJSON(t, h, http.MethodPost, "/api/presets",
		savePresetRequest{Name: "default-lowpass", SessionID: sess.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]preset.Preset](t, rec), 1)

	rec = doJSON(t, h, http.MethodGet, "/api/presets/default-lowpass", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	loaded := decode[preset.Preset](t, rec)
	assert.Equal(t, sess.Params, loaded.Params)

	// Mutate the session, then restore the preset into it.
	doJSON(t, h, http.MethodPost, "/api/session/"+sess.ID.String()+"/event",
		explorer.Event{Kind: explorer.EventAddZero})

	rec = doJSON(t, h, http.MethodPost,
		"/api/session/"+sess.ID.String()+"/preset/default-lowpass", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	restored := decode[explorer.Session](t, rec)
	assert.Equal(t, sess.State, restored.State)

	rec = doJSON(t, h, http.MethodDelete, "/api/presets/default-lowpass", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/presets/default-lowpass", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPresetUnknownSession(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/presets",
		savePresetRequest{Name: "orphan"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 1
	cfg.RateBurst = 2

	s := New(cfg, nil, explorer.NewStore(nil), nil)
	h := s.Handler()

	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doJSON(t, h, http.MethodGet, "/healthz", nil).Code)
}

func TestPresetsDisabled(t *testing.T) {
	s := New(config.Default(), nil, explorer.NewStore(nil), nil)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/presets", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStaticIndexServed(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Filter Design Explorer")
}
