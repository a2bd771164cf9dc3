// Package hub implements the relay's fan-out core: events decoded from the
// single active controller are delivered to every registered listener and to
// any in-process sinks, using the channel-actor pattern. One goroutine owns
// the listener set; registration, deregistration and broadcast arrive as
// messages, so no lock is ever held across a delivery.
package hub

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/BradenEverson/wasm-spjorts/internal/log"
	"github.com/BradenEverson/wasm-spjorts/internal/metrics"
	"github.com/BradenEverson/wasm-spjorts/pkg/protocol"
)

// EventSink receives decoded events in-process. It is the delivery interface
// handed to an embedded consumer (e.g. a game runtime) at startup. Deliver
// must not block: it runs on the hub's broadcast path.
type EventSink interface {
	Deliver(event protocol.Event)
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(event protocol.Event)

// Deliver implements EventSink.
func (f SinkFunc) Deliver(event protocol.Event) { f(event) }

// Hub owns the listener set and the controller slot. Start it with Run; all
// other methods are safe from any goroutine.
type Hub struct {
	queueCap int

	register   chan *Listener
	unregister chan *Listener
	broadcast  chan protocol.Event
	done       chan struct{}

	sinkMu sync.RWMutex
	sinks  []EventSink

	// Controller slot. Claim and release are the only mutators.
	ctrlMu      sync.Mutex
	ctrlSession string
	ctrlDevice  uint64

	listenerCount atomic.Int32
	broadcasts    atomic.Uint64
	evicted       atomic.Uint64
	dropped       atomic.Uint64
}

// New creates a hub whose listeners buffer up to queueCap outbound frames
// each before drop-oldest kicks in.
func New(queueCap int) *Hub {
	if queueCap <= 0 {
		queueCap = 64
	}
	return &Hub{
		queueCap:   queueCap,
		register:   make(chan *Listener),
		unregister: make(chan *Listener),
		broadcast:  make(chan protocol.Event, 256),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop and the exclusive owner of the listener set.
// It returns when ctx is cancelled, closing every listener's frame channel
// so their write pumps unwind.
func (h *Hub) Run(ctx context.Context) {
	listeners := make(map[*Listener]struct{})

	defer func() {
		close(h.done)
		for l := range listeners {
			close(l.frames)
		}
		h.listenerCount.Store(0)
		metrics.Listeners.Set(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case l := <-h.register:
			listeners[l] = struct{}{}
			h.listenerCount.Store(int32(len(listeners)))
			metrics.Listeners.Set(float64(len(listeners)))
			log.Debug("listener registered", "listener", l.ID, "total", len(listeners))

		case l := <-h.unregister:
			if _, ok := listeners[l]; ok {
				delete(listeners, l)
				close(l.frames)
				h.listenerCount.Store(int32(len(listeners)))
				metrics.Listeners.Set(float64(len(listeners)))
				log.Debug("listener deregistered", "listener", l.ID, "total", len(listeners))
			}

		case event := <-h.broadcast:
			frame := protocol.Encode(event)
			for l := range listeners {
				h.offer(l, frame)
			}
			h.broadcasts.Add(1)
			metrics.Broadcasts.Inc()
			h.deliverLocal(event)
		}
	}
}

// offer enqueues a frame on one listener, evicting the oldest queued frame
// when the queue is full. Telemetry is latency-sensitive: the newest frame
// always lands, the stalest one pays. The policy is uniform across event
// kinds. Only the Run goroutine sends on l.frames, so the slot freed by the
// eviction cannot be taken by anyone else.
func (h *Hub) offer(l *Listener, frame []byte) {
	select {
	case l.frames <- frame:
		return
	default:
	}

	select {
	case <-l.frames:
		h.evicted.Add(1)
		metrics.EventsEvicted.Inc()
	default:
		// Write pump drained the queue between our two looks; the frame
		// fits without eviction now.
	}
	l.frames <- frame
}

func (h *Hub) deliverLocal(event protocol.Event) {
	h.sinkMu.RLock()
	sinks := h.sinks
	h.sinkMu.RUnlock()

	for _, s := range sinks {
		s.Deliver(event)
	}
}

// AttachSink adds an in-process consumer of the decoded event stream.
// Sinks cannot be detached; they live as long as the hub.
func (h *Hub) AttachSink(sink EventSink) {
	h.sinkMu.Lock()
	h.sinks = append(h.sinks, sink)
	h.sinkMu.Unlock()
}

// Register adds a listener to the fan-out set and returns its handle. The
// listener observes only events broadcast after this call returns. If the
// hub has already shut down the handle's channel is closed immediately, so
// callers unwind the same way in both cases.
func (h *Hub) Register() *Listener {
	l := newListener(h, h.queueCap)
	select {
	case h.register <- l:
	case <-h.done:
		close(l.frames)
	}
	return l
}

// Deregister removes a listener. Idempotent; safe concurrently with an
// in-flight broadcast and after hub shutdown.
func (h *Hub) Deregister(l *Listener) {
	select {
	case h.unregister <- l:
	case <-h.done:
	}
}

// Broadcast hands an event to the fan-out loop and returns immediately. If
// the loop's intake is full the event is dropped rather than blocking the
// controller's read path.
func (h *Hub) Broadcast(event protocol.Event) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
		h.dropped.Add(1)
		log.Warn("broadcast intake full, dropping event", "event", protocol.String(event))
	}
}

// TryClaimController claims the single controller slot for a session.
// Returns false, leaving the current holder untouched, if the slot is held.
func (h *Hub) TryClaimController(sessionID string) bool {
	h.ctrlMu.Lock()
	defer h.ctrlMu.Unlock()

	if h.ctrlSession != "" {
		return false
	}
	h.ctrlSession = sessionID
	h.ctrlDevice = 0
	metrics.ControllerActive.Set(1)
	return true
}

// SetControllerDevice records the device ID from a controller's Init frame.
// Ignored if the session no longer holds the slot.
func (h *Hub) SetControllerDevice(sessionID string, deviceID uint64) {
	h.ctrlMu.Lock()
	defer h.ctrlMu.Unlock()

	if h.ctrlSession == sessionID {
		h.ctrlDevice = deviceID
	}
}

// ReleaseController frees the controller slot if sessionID still holds it.
// Stale releases from already-replaced sessions are no-ops.
func (h *Hub) ReleaseController(sessionID string) {
	h.ctrlMu.Lock()
	defer h.ctrlMu.Unlock()

	if h.ctrlSession == sessionID {
		h.ctrlSession = ""
		h.ctrlDevice = 0
		metrics.ControllerActive.Set(0)
	}
}

// ControllerActive reports whether the slot is held and by which device ID
// (zero until the holder's Init frame arrives).
func (h *Hub) ControllerActive() (bool, uint64) {
	h.ctrlMu.Lock()
	defer h.ctrlMu.Unlock()
	return h.ctrlSession != "", h.ctrlDevice
}

// ListenerCount returns the number of registered listeners.
func (h *Hub) ListenerCount() int {
	return int(h.listenerCount.Load())
}

// Stats is a point-in-time snapshot for the status API.
type Stats struct {
	Listeners        int    `json:"listeners"`
	ControllerActive bool   `json:"controller_active"`
	ControllerID     uint64 `json:"controller_id,omitempty"`
	Broadcasts       uint64 `json:"broadcasts"`
	Evicted          uint64 `json:"evicted"`
	Dropped          uint64 `json:"dropped"`
}

// GetStats snapshots the hub's counters.
func (h *Hub) GetStats() Stats {
	active, device := h.ControllerActive()
	return Stats{
		Listeners:        h.ListenerCount(),
		ControllerActive: active,
		ControllerID:     device,
		Broadcasts:       h.broadcasts.Load(),
		Evicted:          h.evicted.Load(),
		Dropped:          h.dropped.Load(),
	}
}
