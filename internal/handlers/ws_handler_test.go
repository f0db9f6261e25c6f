package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/realtime"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) realtime.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var evt realtime.Event
	require.NoError(t, json.Unmarshal(msg, &evt))
	return evt
}

func TestWebSocket_PublicReceivesInvalidation(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	conn := dialWS(t, srv, "/api/ws")
	require.Eventually(t, func() bool { return env.hub.Count(realtime.ChannelPublic) == 2 }, time.Second, 10*time.Millisecond)

	w := env.do(t, http.MethodPost, "/api/admin/cache", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	evt := readEvent(t, conn)
	require.Equal(t, realtime.EventCacheInvalidated, evt.Type)
	require.Empty(t, evt.Keys)
}

func TestWebSocket_AdminNeedsToken(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn := dialWS(t, srv, "/api/admin/ws?token="+env.token)
	require.Eventually(t, func() bool { return env.hub.Count(realtime.ChannelAdmin) == 2 }, time.Second, 10*time.Millisecond)

	w := env.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Ana", "email": "ana@example.com", "message": "Hi",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	evt := readEvent(t, conn)
	require.Equal(t, realtime.EventMessageReceived, evt.Type)
	require.NotEmpty(t, evt.ID)
}
