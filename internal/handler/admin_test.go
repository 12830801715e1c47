package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacholegal-ai/intake-platform/internal/session"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

func TestAdminSessions(t *testing.T) {
	registry := session.NewRegistry(logger.NewNop())
	registry.Do("u1", func(*session.State) {})
	registry.Do("u2", func(*session.State) {})

	h := NewAdminHandler(registry)
	rec := httptest.NewRecorder()
	h.Sessions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/sessions", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int                   `json:"count"`
		Sessions []session.SessionInfo `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Sessions, 2)
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	// With no event stream configured the service is ready.
	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}
