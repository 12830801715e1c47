package handler

import (
	"encoding/json"
	"net/http"

	"github.com/despacholegal-ai/intake-platform/internal/dialogue"
	"github.com/despacholegal-ai/intake-platform/internal/middleware"
	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

// ChatHandler handles the REST chat endpoints.
type ChatHandler struct {
	orchestrator *dialogue.Orchestrator
	logger       *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(orchestrator *dialogue.Orchestrator, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		logger:       log,
	}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMessageText(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateUserID(req.UserID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := req.ResolveUserID()
	reply := h.orchestrator.HandleMessage(r.Context(), userID, req.Text)
	writeJSON(w, http.StatusOK, model.NewChatResponse(reply))
}

// EndChat handles POST /end_chat
func (h *ChatHandler) EndChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		req.UserID = model.AnonymousUserID
	}

	h.orchestrator.EndConversation(req.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}
