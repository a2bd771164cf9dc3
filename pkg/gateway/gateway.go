// Package gateway terminates inbound WebSocket connections and binds them to
// the broadcast hub. The connection path decides the role: /ws/controller for
// the single authoritative input device, /ws/listener for any number of
// browser subscribers. The gateway is the only component that knows both
// session kinds; it never looks inside event payloads.
package gateway

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/BradenEverson/wasm-spjorts/pkg/games"
	"github.com/BradenEverson/wasm-spjorts/pkg/hub"
)

const (
	// writeWait is how long a listener write may take before the
	// connection is considered dead.
	writeWait = 10 * time.Second

	// pongWait bounds listener silence; pings keep healthy ones alive.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxListenerMessageSize caps inbound listener messages. Listeners
	// have nothing to say, so anything beyond control-frame noise is tiny.
	maxListenerMessageSize = 512

	// maxControllerMessageSize caps controller frames; the largest legal
	// frame is a 13-byte angle sample, so this is generous.
	maxControllerMessageSize = 256
)

// Gateway accepts controller and listener connections for one hub.
type Gateway struct {
	hub              *hub.Hub
	heartbeatTimeout time.Duration
}

// New creates a gateway in front of h. heartbeatTimeout bounds controller
// silence before its connection is torn down and the slot released.
func New(h *hub.Hub, heartbeatTimeout time.Duration) *Gateway {
	if heartbeatTimeout <= 0 {
		heartbeatTimeout = 60 * time.Second
	}
	return &Gateway{hub: h, heartbeatTimeout: heartbeatTimeout}
}

// RegisterRoutes mounts the WebSocket endpoints on a Fiber app.
func (g *Gateway) RegisterRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/controller", websocket.New(g.handleController))
	app.Get("/ws/listener", websocket.New(g.handleListener))
}

// RegisterAPIRoutes mounts the JSON status and game registry endpoints.
func (g *Gateway) RegisterAPIRoutes(api fiber.Router) {
	api.Get("/status", g.handleStatus)
	api.Get("/games", g.handleGames)
}

func (g *Gateway) handleStatus(c *fiber.Ctx) error {
	return c.JSON(g.hub.GetStats())
}

func (g *Gateway) handleGames(c *fiber.Ctx) error {
	return c.JSON(games.All())
}
