// Package metrics exposes the relay's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsDecoded counts frames successfully decoded from the controller.
	EventsDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_events_decoded_total",
		Help: "Frames decoded from the active controller",
	})

	// Broadcasts counts events fanned out to the listener set.
	Broadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_broadcasts_total",
		Help: "Events broadcast to listeners",
	})

	// EventsEvicted counts queued events displaced by drop-oldest
	// backpressure. These are policy outcomes, not failures.
	EventsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_events_evicted_total",
		Help: "Queued events displaced by drop-oldest backpressure",
	})

	// ProtocolErrors counts connections closed for malformed frames.
	ProtocolErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_protocol_errors_total",
		Help: "Connections closed due to unknown or truncated frames",
	})

	// ControllerRejected counts refused second-controller claims.
	ControllerRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_controller_rejected_total",
		Help: "Controller connections refused while the slot was held",
	})

	// Listeners tracks the live listener count.
	Listeners = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_listeners",
		Help: "Currently registered listeners",
	})

	// ControllerActive is 1 while the controller slot is held.
	ControllerActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_controller_active",
		Help: "Whether a controller currently holds the slot",
	})
)
