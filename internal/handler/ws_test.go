package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacholegal-ai/intake-platform/internal/appointment"
	"github.com/despacholegal-ai/intake-platform/internal/backend"
	"github.com/despacholegal-ai/intake-platform/internal/dialogue"
	"github.com/despacholegal-ai/intake-platform/internal/knowledge"
	"github.com/despacholegal-ai/intake-platform/internal/session"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

func newTestWSHandler(t *testing.T) *WSHandler {
	t.Helper()
	backendSrv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(backendSrv.Close)

	log := logger.NewNop()
	client := backend.New(backendSrv.URL, time.Second, time.Second, log)
	orchestrator := dialogue.NewOrchestrator(
		session.NewRegistry(log),
		appointment.NewFlow(stubSubmitter{}, nil, log),
		knowledge.New(client, false, log),
		nil,
		log,
	)
	return NewWSHandler(orchestrator, log)
}

func dialWS(t *testing.T, h *WSHandler) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWSChat(t *testing.T) {
	h := newTestWSHandler(t)
	conn := dialWS(t, h)

	require.NoError(t, conn.WriteJSON(wsInbound{Text: "hola", UserID: "u1"}))

	var reply struct {
		Response  string `json:"response"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Contains(t, reply.Response, "asistente virtual")
	assert.NotEmpty(t, reply.Timestamp)
}

func TestWSPushNotify(t *testing.T) {
	h := newTestWSHandler(t)
	conn := dialWS(t, h)

	// Bind the socket to a user first.
	require.NoError(t, conn.WriteJSON(wsInbound{Text: "hola", UserID: "u1"}))
	var discard json.RawMessage
	require.NoError(t, conn.ReadJSON(&discard))

	h.Notify("u1", "sigues ahí?")

	var reply struct {
		Response string `json:"response"`
	}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "sigues ahí?", reply.Response)
}

func TestWSPushClose(t *testing.T) {
	h := newTestWSHandler(t)
	conn := dialWS(t, h)

	require.NoError(t, conn.WriteJSON(wsInbound{Text: "hola", UserID: "u1"}))
	var discard json.RawMessage
	require.NoError(t, conn.ReadJSON(&discard))

	h.Close("u1", "El chat se ha cerrado por inactividad.")

	var notice wsNotice
	require.NoError(t, conn.ReadJSON(&notice))
	assert.Equal(t, "close", notice.Type)
	assert.Equal(t, "El chat se ha cerrado por inactividad.", notice.Message)

	// The server dropped the connection; further reads fail.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// Pushing to the gone user is a no-op.
	h.Notify("u1", "nada")
}

func TestWSNotifyUnknownUser(t *testing.T) {
	h := newTestWSHandler(t)
	h.Notify("nobody", "hola")
	h.Close("nobody", "adiós")
}
