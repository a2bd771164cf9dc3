package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Decode errors. Both are fatal to the sending connection: once framing is
// wrong there is no safe way to resynchronize a byte stream, so the caller
// closes rather than skips.
var (
	ErrUnknownTag       = errors.New("protocol: unknown frame tag")
	ErrTruncatedPayload = errors.New("protocol: truncated frame payload")
)

// Fixed payload lengths per tag. Tags absent here carry no payload.
const (
	initPayloadLen  = 8
	anglePayloadLen = 12
)

// PayloadLen returns the payload byte count for a tag, or false if the tag
// is outside the enumeration.
func PayloadLen(t Tag) (int, bool) {
	switch t {
	case TagHeartbeat, TagButtonA, TagButtonB:
		return 0, true
	case TagInit:
		return initPayloadLen, true
	case TagAngle:
		return anglePayloadLen, true
	default:
		return 0, false
	}
}

// Decode parses one frame. The buffer must hold exactly one message as
// delivered by the transport; trailing bytes beyond the tag's payload are
// rejected as framing desync.
func Decode(buf []byte) (Event, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrTruncatedPayload)
	}

	tag := Tag(buf[0])
	want, ok := PayloadLen(tag)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, buf[0])
	}
	if len(buf)-1 != want {
		return nil, fmt.Errorf("%w: tag 0x%02x wants %d payload bytes, got %d",
			ErrTruncatedPayload, buf[0], want, len(buf)-1)
	}

	payload := buf[1:]
	switch tag {
	case TagHeartbeat:
		return Heartbeat{}, nil
	case TagInit:
		return Init{ControllerID: binary.LittleEndian.Uint64(payload)}, nil
	case TagButtonA:
		return ButtonPress{Button: ButtonA}, nil
	case TagButtonB:
		return ButtonPress{Button: ButtonB}, nil
	default: // TagAngle
		return AngleSample{
			Pitch: math.Float32frombits(binary.LittleEndian.Uint32(payload[0:4])),
			Yaw:   math.Float32frombits(binary.LittleEndian.Uint32(payload[4:8])),
			Roll:  math.Float32frombits(binary.LittleEndian.Uint32(payload[8:12])),
		}, nil
	}
}

// Encode serializes an event to its wire frame. It is total for the event
// types this package defines.
func Encode(e Event) []byte {
	switch v := e.(type) {
	case Init:
		buf := make([]byte, 1+initPayloadLen)
		buf[0] = byte(TagInit)
		binary.LittleEndian.PutUint64(buf[1:], v.ControllerID)
		return buf
	case AngleSample:
		buf := make([]byte, 1+anglePayloadLen)
		buf[0] = byte(TagAngle)
		binary.LittleEndian.PutUint32(buf[1:5], math.Float32bits(v.Pitch))
		binary.LittleEndian.PutUint32(buf[5:9], math.Float32bits(v.Yaw))
		binary.LittleEndian.PutUint32(buf[9:13], math.Float32bits(v.Roll))
		return buf
	default:
		return []byte{byte(e.Tag())}
	}
}
