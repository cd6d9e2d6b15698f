package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/QuiambaoMichael/safetap-backend/internal/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// StreamHandler carries the live concern event stream over a websocket. Each
// connection becomes one broadcaster observer; it receives created and
// resolved events for all concerns from the moment it connects, with no
// backlog replay.
type StreamHandler struct {
	broadcaster *events.Broadcaster
	logger      *zap.Logger
}

// NewStreamHandler constructs handler.
func NewStreamHandler(broadcaster *events.Broadcaster, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{broadcaster: broadcaster, logger: logger}
}

// Upgrade gates the route to websocket upgrade requests.
func (h *StreamHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream GET /ws/concerns.
func (h *StreamHandler) Stream(conn *websocket.Conn) {
	obs := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(obs)
	defer conn.Close()

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case event, ok := <-obs.Events():
			if !ok {
				// Dropped by the broadcaster for not keeping up.
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug("stream write failed", zap.Error(err))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readLoop discards inbound frames; its only job is noticing the close.
func (h *StreamHandler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(1 << 12)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("stream read closed", zap.Error(err))
			}
			return
		}
	}
}
