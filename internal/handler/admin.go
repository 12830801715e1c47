package handler

import (
	"net/http"

	"github.com/despacholegal-ai/intake-platform/internal/session"
)

// AdminHandler exposes operational views of the live sessions.
type AdminHandler struct {
	registry *session.Registry
}

func NewAdminHandler(registry *session.Registry) *AdminHandler {
	return &AdminHandler{registry: registry}
}

// Sessions handles GET /api/v1/admin/sessions
func (h *AdminHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	infos := h.registry.ActiveSessions()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(infos),
		"sessions": infos,
	})
}
