// listen: subscribes to the relay as a listener and prints every event.
// The decoding mirror of controller-sim.
package main

import (
	"flag"
	"os"

	"github.com/gorilla/websocket"

	"github.com/BradenEverson/wasm-spjorts/internal/log"
	"github.com/BradenEverson/wasm-spjorts/pkg/protocol"
)

var addr = flag.String("addr", "ws://localhost:7878/ws/listener", "Relay listener endpoint")

func main() {
	flag.Parse()
	log.Init("info")

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		log.Error("dial failed", "addr", *addr, "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	log.Info("subscribed", "addr", *addr)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("stream ended", "err", err)
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		event, err := protocol.Decode(data)
		if err != nil {
			log.Warn("undecodable frame", "err", err, "bytes", len(data))
			continue
		}
		log.Info("received", "event", protocol.String(event))
	}
}
