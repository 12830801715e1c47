package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/despacholegal-ai/intake-platform/internal/dialogue"
	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
	"github.com/despacholegal-ai/intake-platform/pkg/metrics"
)

const writeTimeout = 10 * time.Second

// The chat widget is embedded in third-party pages, so cross-origin
// upgrades are expected.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsConn wraps a websocket connection with a write lock, since both the
// read loop and the sweeper's push path write to it.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

type wsInbound struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	UserID   string `json:"user_id"`
}

type wsNotice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WSHandler serves the websocket chat channel and doubles as the push
// channel for server-initiated messages (idle warnings and closes).
type WSHandler struct {
	orchestrator *dialogue.Orchestrator
	logger       *logger.Logger

	mu    sync.RWMutex
	conns map[string]*wsConn
}

func NewWSHandler(orchestrator *dialogue.Orchestrator, log *logger.Logger) *WSHandler {
	return &WSHandler{
		orchestrator: orchestrator,
		logger:       log,
		conns:        make(map[string]*wsConn),
	}
}

// ServeWS handles GET /ws
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	metrics.IncrementWSConnections()
	defer metrics.DecrementWSConnections()

	wc := &wsConn{conn: conn}
	userID := ""
	defer func() {
		if userID != "" {
			h.unregister(userID, wc)
		}
		conn.Close()
	}()

	for {
		var msg wsInbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}
		if msg.UserID == "" {
			msg.UserID = model.AnonymousUserID
		}
		// The first message binds the socket to the user; later messages
		// rebind in case the widget changed identity.
		if msg.UserID != userID {
			if userID != "" {
				h.unregister(userID, wc)
			}
			userID = msg.UserID
			h.register(userID, wc)
		}

		reply := h.orchestrator.HandleMessage(r.Context(), userID, msg.Text)
		if err := wc.writeJSON(model.NewChatResponse(reply)); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *WSHandler) register(userID string, wc *wsConn) {
	h.mu.Lock()
	h.conns[userID] = wc
	h.mu.Unlock()
}

// unregister removes the user's connection only if it is still this one.
func (h *WSHandler) unregister(userID string, wc *wsConn) {
	h.mu.Lock()
	if h.conns[userID] == wc {
		delete(h.conns, userID)
	}
	h.mu.Unlock()
}

func (h *WSHandler) lookup(userID string) (*wsConn, bool) {
	h.mu.RLock()
	wc, ok := h.conns[userID]
	h.mu.RUnlock()
	return wc, ok
}

// Notify pushes a server-initiated message to the user, if connected.
func (h *WSHandler) Notify(userID, message string) {
	wc, ok := h.lookup(userID)
	if !ok {
		return
	}
	if err := wc.writeJSON(model.NewChatResponse(message)); err != nil {
		h.logger.Debug("push notify failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Close tells the user's widget the chat is over, then drops the socket.
func (h *WSHandler) Close(userID, message string) {
	wc, ok := h.lookup(userID)
	if !ok {
		return
	}
	if err := wc.writeJSON(wsNotice{Type: "close", Message: message}); err != nil {
		h.logger.Debug("push close failed", zap.String("user_id", userID), zap.Error(err))
	}
	wc.conn.Close()
	h.unregister(userID, wc)
}
