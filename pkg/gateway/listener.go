package gateway

import (
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/BradenEverson/wasm-spjorts/internal/log"
)

// handleListener runs one subscriber session: register with the hub, stream
// frames out, deregister on any failure. A listener may connect before any
// controller exists; it simply receives nothing until one claims the slot.
func (g *Gateway) handleListener(c *websocket.Conn) {
	l := g.hub.Register()
	logger := log.With("listener", l.ID, "remote", c.RemoteAddr().String())
	logger.Info("listener subscribed")

	defer func() {
		l.Close()
		c.Close()
		logger.Info("listener session closed")
	}()

	// Read pump: listeners send no application data, but reading is what
	// detects disconnects and feeds the pong handler. Anything they do
	// send is discarded.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		c.SetReadLimit(maxListenerMessageSize)
		c.SetReadDeadline(time.Now().Add(pongWait))
		c.SetPongHandler(func(string) error {
			c.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Write pump: the only goroutine writing to this connection.
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-l.Frames():
			c.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub shut down or deregistered us.
				c.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				logger.Info("listener write failed", "err", err)
				return
			}

		case <-ticker.C:
			c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-readerDone:
			return
		}
	}
}
