package gateway

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/BradenEverson/wasm-spjorts/internal/log"
	"github.com/BradenEverson/wasm-spjorts/internal/metrics"
	"github.com/BradenEverson/wasm-spjorts/pkg/protocol"
)

// handleController owns the authoritative controller connection. The session
// runs Connecting -> Active -> Closed: it must claim the hub's controller
// slot, present an Init frame before any telemetry, and then every decoded
// event is published to the hub. A malformed frame closes the connection —
// once framing is wrong the byte stream cannot be trusted again. The slot is
// released on any exit so the next controller can take over.
func (g *Gateway) handleController(c *websocket.Conn) {
	sessionID := uuid.NewString()
	logger := log.With("session", sessionID, "remote", c.RemoteAddr().String())

	if !g.hub.TryClaimController(sessionID) {
		metrics.ControllerRejected.Inc()
		logger.Warn("controller rejected, slot already held")
		closeWith(c, websocket.ClosePolicyViolation, "controller slot held")
		return
	}
	defer func() {
		g.hub.ReleaseController(sessionID)
		c.Close()
		logger.Info("controller session closed")
	}()

	logger.Info("controller claimed slot")

	c.SetReadLimit(maxControllerMessageSize)
	c.SetReadDeadline(time.Now().Add(g.heartbeatTimeout))

	initialized := false
	for {
		msgType, data, err := c.ReadMessage()
		if err != nil {
			logger.Info("controller read ended", "err", err)
			return
		}
		if msgType != websocket.BinaryMessage {
			// Text and control frames carry no telemetry.
			continue
		}

		event, err := protocol.Decode(data)
		if err != nil {
			metrics.ProtocolErrors.Inc()
			logger.Warn("malformed controller frame", "err", err)
			closeWith(c, websocket.ClosePolicyViolation, "malformed frame")
			return
		}

		// Any well-formed frame proves the controller is alive.
		c.SetReadDeadline(time.Now().Add(g.heartbeatTimeout))
		metrics.EventsDecoded.Inc()

		switch ev := event.(type) {
		case protocol.Init:
			if !initialized {
				initialized = true
				g.hub.SetControllerDevice(sessionID, ev.ControllerID)
				logger.Info("controller initialized", "controller_id", ev.ControllerID)
			}
		case protocol.Heartbeat:
			// Liveness only; never broadcast.
		default:
			if !initialized {
				metrics.ProtocolErrors.Inc()
				logger.Warn("telemetry before init", "event", protocol.String(event))
				closeWith(c, websocket.ClosePolicyViolation, "init required")
				return
			}
			g.hub.Broadcast(event)
		}
	}
}

// closeWith sends a close frame with a reason, best effort.
func closeWith(c *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeWait)
	c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	c.Close()
}
