// Package protocol defines the binary wire frames exchanged between a
// controller, the relay, and browser listeners.
//
// Every frame is one WebSocket binary message: a single tag byte followed by
// a fixed-length payload determined entirely by the tag. There is no length
// prefix and no framing beyond the message boundary itself.
package protocol

import "fmt"

// Tag identifies a frame's payload layout. The enumeration is closed:
// decoding any other value fails with ErrUnknownTag.
type Tag byte

const (
	// TagHeartbeat is a controller keep-alive. No payload. Refreshes
	// liveness only and is never broadcast to listeners.
	TagHeartbeat Tag = 0x00
	// TagInit opens a controller session. Payload: 8-byte little-endian
	// controller ID.
	TagInit Tag = 0x01
	// TagButtonA reports an A button press. No payload.
	TagButtonA Tag = 0x02
	// TagButtonB reports a B button press. No payload.
	TagButtonB Tag = 0x03
	// TagAngle reports an orientation sample. Payload: pitch, yaw, roll as
	// three little-endian IEEE-754 binary32 floats.
	TagAngle Tag = 0x04
)

// Event is a decoded frame. The concrete types are Heartbeat, Init,
// ButtonPress, and AngleSample; nothing else implements it.
type Event interface {
	Tag() Tag
}

// Button identifies which physical button fired.
type Button byte

const (
	ButtonA Button = 'A'
	ButtonB Button = 'B'
)

// Heartbeat is a controller keep-alive.
type Heartbeat struct{}

// Tag implements Event.
func (Heartbeat) Tag() Tag { return TagHeartbeat }

// Init is the controller handshake carrying its device ID.
type Init struct {
	ControllerID uint64
}

// Tag implements Event.
func (Init) Tag() Tag { return TagInit }

// ButtonPress is a single press of the A or B button.
type ButtonPress struct {
	Button Button
}

// Tag implements Event.
func (b ButtonPress) Tag() Tag {
	if b.Button == ButtonB {
		return TagButtonB
	}
	return TagButtonA
}

// AngleSample is one gyroscope orientation reading, in radians. Values are
// carried exactly as the sensor produced them; the relay never converts or
// rounds.
type AngleSample struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// Tag implements Event.
func (AngleSample) Tag() Tag { return TagAngle }

// String renders an event for logs and the tail client.
func String(e Event) string {
	switch v := e.(type) {
	case Heartbeat:
		return "heartbeat"
	case Init:
		return fmt.Sprintf("init controller=%d", v.ControllerID)
	case ButtonPress:
		return fmt.Sprintf("button %c", v.Button)
	case AngleSample:
		return fmt.Sprintf("angle pitch=%.3f yaw=%.3f roll=%.3f", v.Pitch, v.Yaw, v.Roll)
	default:
		return fmt.Sprintf("unknown event %T", e)
	}
}
