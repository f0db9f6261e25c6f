package realtime

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Channels clients can subscribe to.
const (
	ChannelPublic = "public"
	ChannelAdmin  = "admin"
)

// Event types pushed to clients.
const (
	// EventCacheInvalidated tells browsers to drop their session copies of Keys
	// (all of them when Keys is empty).
	EventCacheInvalidated = "cache_invalidated"
	// EventMessageReceived tells admin dashboards a contact message arrived.
	EventMessageReceived = "message_received"
)

// Event is the JSON payload sent over the websocket.
type Event struct {
	Type      string   `json:"type"`
	Keys      []string `json:"keys,omitempty"`
	ID        string   `json:"id,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// Client represents a single websocket client connection.
// The network conn itself is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active connections per channel and broadcasts events to them.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[Client]struct{}
	marshal  func(v any) ([]byte, error)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[Client]struct{}),
		marshal:  json.Marshal,
	}
}

// Register adds a client to a channel.
func (h *Hub) Register(channel string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[Client]struct{})
	}
	h.channels[channel][client] = struct{}{}
}

// Unregister removes a client; empty channels are cleaned up.
func (h *Hub) Unregister(channel string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Count returns the number of clients on a channel.
func (h *Hub) Count(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Broadcast sends a raw message to every client on a channel and returns how
// many accepted it. Failed clients are cleaned up by their handler.
func (h *Hub) Broadcast(channel string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for c := range h.channels[channel] {
		if c.Send(message) {
			sent++
		}
	}
	return sent
}

// Publish encodes evt and broadcasts it to the given channels.
func (h *Hub) Publish(evt Event, channels ...string) error {
	if evt.Timestamp == 0 {
		evt.Timestamp = time.Now().UnixMilli()
	}
	b, err := h.marshal(evt)
	if err != nil {
		return err
	}
	for _, ch := range channels {
		h.Broadcast(ch, b)
	}
	return nil
}

// NotifyInvalidation returns a callback that publishes cache_invalidated to
// every channel. keys is nil when the whole cache was dropped.
func (h *Hub) NotifyInvalidation(logger *zap.Logger) func(keys []string) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(keys []string) {
		evt := Event{Type: EventCacheInvalidated, Keys: keys}
		if err := h.Publish(evt, ChannelPublic, ChannelAdmin); err != nil {
			logger.Warn("publish-failed", zap.String("type", evt.Type), zap.Strings("keys", keys), zap.Error(err))
		}
	}
}
