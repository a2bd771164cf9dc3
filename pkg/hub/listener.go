package hub

import "github.com/google/uuid"

// Listener is a handle to one registered consumer of the broadcast stream.
// The hub pushes encoded frames into a bounded queue; the owning session
// drains it via Frames and writes to its transport at whatever pace that
// transport sustains. When the queue is full the hub evicts the oldest
// queued frame (drop-oldest), so a slow listener lags but never grows
// memory and never delays anyone else.
type Listener struct {
	// ID is a stable identifier for logs and the status API.
	ID string

	hub    *Hub
	frames chan []byte
}

func newListener(h *Hub, queueCap int) *Listener {
	return &Listener{
		ID:     uuid.NewString(),
		hub:    h,
		frames: make(chan []byte, queueCap),
	}
}

// Frames returns the listener's outbound queue. The channel is closed when
// the listener is deregistered or the hub shuts down.
func (l *Listener) Frames() <-chan []byte {
	return l.frames
}

// Close deregisters the listener. Idempotent.
func (l *Listener) Close() {
	l.hub.Deregister(l)
}
