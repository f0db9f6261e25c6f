package handlers

import (
	"net/http"
	"sync"
	"time"

	"portfolio-api/internal/middleware"
	"portfolio-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	// clients only send pongs and close frames
	maxMessageSize = 1024
)

// wsClient implements realtime.Client by wrapping a websocket connection.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	// gorilla allows one concurrent writer
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced by the router
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PublicWebSocket streams cache invalidation events to site visitors.
// GET /api/ws
func (h *Handler) PublicWebSocket(c *gin.Context) {
	h.serveWebSocket(c, realtime.ChannelPublic)
}

// AdminWebSocket streams invalidation and new-message events to the dashboard.
// It requires JWT middleware to have set "user_id" in context.
// GET /api/admin/ws
func (h *Handler) AdminWebSocket(c *gin.Context) {
	if c.GetString(middleware.ContextUserID) == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}
	h.serveWebSocket(c, realtime.ChannelAdmin)
}

// serveWebSocket upgrades the connection and registers the client to the hub.
func (h *Handler) serveWebSocket(c *gin.Context, channel string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket-upgrade-failed", zap.Error(err))
		return
	}

	client := &wsClient{conn: conn}
	h.hub.Register(channel, client)

	pingTicker := time.NewTicker(pingPeriod)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				// a failed ping surfaces as a read error below
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		h.hub.Unregister(channel, client)
		client.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket-closed", zap.String("channel", channel), zap.Error(err))
			}
			return
		}
	}
}
