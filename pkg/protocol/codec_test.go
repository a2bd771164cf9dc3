package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	events := []Event{
		Heartbeat{},
		Init{ControllerID: 1},
		Init{ControllerID: 0xDEADBEEFCAFE},
		ButtonPress{Button: ButtonA},
		ButtonPress{Button: ButtonB},
		AngleSample{Pitch: 10.0, Yaw: -5.0, Roll: 0.0},
		AngleSample{Pitch: -0.001, Yaw: 6.28318, Roll: 3.14159},
	}

	for _, want := range events {
		t.Run(String(want), func(t *testing.T) {
			got, err := Decode(Encode(want))
			if err != nil {
				t.Fatalf("Decode(Encode(%v)) error: %v", want, err)
			}
			if got != want {
				t.Errorf("round trip: got %v, want %v", got, want)
			}
		})
	}
}

func TestEncodeWireLayout(t *testing.T) {
	// AngleSample(10.0, -5.0, 0.0): tag 0x04 then three LE binary32 floats.
	got := Encode(AngleSample{Pitch: 10.0, Yaw: -5.0, Roll: 0.0})
	want := []byte{
		0x04,
		0x00, 0x00, 0x20, 0x41, // 10.0
		0x00, 0x00, 0xa0, 0xc0, // -5.0
		0x00, 0x00, 0x00, 0x00, // 0.0
	}
	if !bytes.Equal(got, want) {
		t.Errorf("angle frame = %x, want %x", got, want)
	}

	got = Encode(Init{ControllerID: 1})
	want = []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("init frame = %x, want %x", got, want)
	}

	if !bytes.Equal(Encode(ButtonPress{Button: ButtonA}), []byte{0x02}) {
		t.Error("button A frame should be the bare tag byte")
	}
	if !bytes.Equal(Encode(ButtonPress{Button: ButtonB}), []byte{0x03}) {
		t.Error("button B frame should be the bare tag byte")
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	for _, tag := range []byte{0x05, 0x42, 0xFF} {
		_, err := Decode([]byte{tag})
		if !errors.Is(err, ErrUnknownTag) {
			t.Errorf("Decode(tag 0x%02x) error = %v, want ErrUnknownTag", tag, err)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"init missing payload", []byte{0x01}},
		{"init short payload", []byte{0x01, 0x01, 0x02, 0x03}},
		{"angle short payload", []byte{0x04, 0x00, 0x00, 0x20, 0x41}},
		{"angle trailing bytes", append(Encode(AngleSample{}), 0x00)},
		{"button trailing bytes", []byte{0x02, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.buf)
			if !errors.Is(err, ErrTruncatedPayload) {
				t.Errorf("Decode(%x) error = %v, want ErrTruncatedPayload", tt.buf, err)
			}
		})
	}
}

func TestPayloadLen(t *testing.T) {
	if n, ok := PayloadLen(TagAngle); !ok || n != 12 {
		t.Errorf("PayloadLen(TagAngle) = %d, %v", n, ok)
	}
	if n, ok := PayloadLen(TagInit); !ok || n != 8 {
		t.Errorf("PayloadLen(TagInit) = %d, %v", n, ok)
	}
	if _, ok := PayloadLen(Tag(0x99)); ok {
		t.Error("PayloadLen should reject tags outside the enumeration")
	}
}
