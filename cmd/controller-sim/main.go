// controller-sim: connects as a controller and streams random telemetry.
// Useful for exercising the relay and browser clients without hardware.
package main

import (
	"flag"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BradenEverson/wasm-spjorts/internal/log"
	"github.com/BradenEverson/wasm-spjorts/pkg/protocol"
)

var (
	addr     = flag.String("addr", "ws://localhost:7878/ws/controller", "Relay controller endpoint")
	id       = flag.Uint64("id", 1, "Controller ID sent in the Init frame")
	interval = flag.Duration("interval", 500*time.Millisecond, "Delay between angle samples")
)

func main() {
	flag.Parse()
	log.Init("info")

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		log.Error("dial failed", "addr", *addr, "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := send(conn, protocol.Init{ControllerID: *id}); err != nil {
		log.Error("init failed", "err", err)
		os.Exit(1)
	}
	log.Info("controller connected", "addr", *addr, "id", *id)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			var event protocol.Event
			switch rand.Intn(10) {
			case 0:
				event = protocol.ButtonPress{Button: protocol.ButtonA}
			case 1:
				event = protocol.ButtonPress{Button: protocol.ButtonB}
			default:
				event = protocol.AngleSample{
					Pitch: rand.Float32() * 2 * math.Pi,
					Yaw:   rand.Float32() * 2 * math.Pi,
					Roll:  rand.Float32() * 2 * math.Pi,
				}
			}
			if err := send(conn, event); err != nil {
				log.Error("send failed", "err", err)
				os.Exit(1)
			}
			log.Info("sent", "event", protocol.String(event))
		}
	}
}

func send(conn *websocket.Conn, e protocol.Event) error {
	return conn.WriteMessage(websocket.BinaryMessage, protocol.Encode(e))
}
