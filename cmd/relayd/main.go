// relayd: telemetry relay between a physical controller and browser game
// clients. Terminates one controller WebSocket, decodes its binary frames,
// and fans the events out to every connected listener.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BradenEverson/wasm-spjorts/internal/config"
	"github.com/BradenEverson/wasm-spjorts/internal/log"
	"github.com/BradenEverson/wasm-spjorts/pkg/gateway"
	"github.com/BradenEverson/wasm-spjorts/pkg/hub"
	"github.com/BradenEverson/wasm-spjorts/pkg/protocol"
)

var (
	version = "1.0.0"
	port    = flag.String("port", config.Port(), "HTTP server port")
	debug   = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	log.Info("spjorts relay starting", "version", version, "port", *port)

	app := fiber.New(fiber.Config{
		AppName:               "spjorts-relay",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
	}))
	if *debug {
		app.Use(logger.New())
	}

	h := hub.New(config.ListenerQueue())
	h.AttachSink(hub.SinkFunc(func(e protocol.Event) {
		log.Debug("event", "detail", protocol.String(e))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	gw := gateway.New(h, config.HeartbeatTimeout())
	gw.RegisterRoutes(app)
	gw.RegisterAPIRoutes(app.Group("/api"))

	app.Get("/health", func(c *fiber.Ctx) error {
		active, _ := h.ControllerActive()
		return c.JSON(fiber.Map{
			"status":     "ok",
			"version":    version,
			"controller": active,
			"listeners":  h.ListenerCount(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Static frontend and game bundles; the relay serves them but never
	// interprets them.
	app.Static("/frontend", config.FrontendDir())
	app.Static("/wasm", "./wasm")

	go func() {
		addr := ":" + *port
		log.Info("listening",
			"controller", fmt.Sprintf("ws://localhost:%s/ws/controller", *port),
			"listener", fmt.Sprintf("ws://localhost:%s/ws/listener", *port))
		if err := app.Listen(addr); err != nil {
			log.Error("server stopped", "err", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	cancel()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}
