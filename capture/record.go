package capture

import (
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-i2cm/i2c"
	"github.com/moffa90/go-i2cm/protocol"
)

// Record is one captured bus event.
// CBOR encoding uses integer keys for compactness.
type Record struct {
	// Timestamp when the operation completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Session is the ID of the handle that produced the record.
	Session uuid.UUID `cbor:"2,keyasint"`

	// Kind classifies the record.
	Kind Kind `cbor:"3,keyasint"`

	// Op is the operation name (open, close, write, read, exchange, spy).
	Op string `cbor:"4,keyasint,omitempty"`

	// Address is the 7-bit slave address.
	Address protocol.Address `cbor:"5,keyasint"`

	// Direction is the direction of the addressed phase.
	Direction protocol.Direction `cbor:"6,keyasint"`

	// Start is the condition that opened a spy message.
	Start protocol.StartKind `cbor:"7,keyasint,omitempty"`

	// Stop is set when a spy message was closed by a stop condition.
	Stop bool `cbor:"8,keyasint,omitempty"`

	// Written holds the bytes sent by the master.
	Written []byte `cbor:"9,keyasint,omitempty"`

	// Data holds the bytes received, or the captured window for spy records.
	Data []byte `cbor:"10,keyasint,omitempty"`

	// NAK is the 1-based index of the first rejected byte, 0 if none.
	NAK int `cbor:"11,keyasint,omitempty"`

	// Error is the operation error text, if any.
	Error string `cbor:"12,keyasint,omitempty"`
}

// Kind classifies a Record.
type Kind uint8

const (
	// KindLifecycle is an open or close of a handle.
	KindLifecycle Kind = 0
	// KindTransfer is a master write, read or exchange.
	KindTransfer Kind = 1
	// KindSpy is a message decoded in capture mode.
	KindSpy Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLifecycle:
		return "lifecycle"
	case KindTransfer:
		return "transfer"
	case KindSpy:
		return "spy"
	default:
		return "unknown"
	}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindLifecycle, KindTransfer, KindSpy} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// FromEvent converts a handle event into a Record.
func FromEvent(e i2c.Event) Record {
	r := Record{
		Timestamp: e.Time,
		Session:   e.Session,
		Op:        e.Op,
		Address:   e.Address,
		NAK:       e.Outcome.Ack.NAKIndex,
	}
	if e.Err != nil {
		r.Error = e.Err.Error()
	}

	switch e.Kind {
	case i2c.EventTransfer:
		r.Kind = KindTransfer
		r.Written = e.Written
		r.Data = e.Outcome.Data
		if e.Op == "read" {
			r.Direction = protocol.Read
		}
	case i2c.EventSpy:
		r.Kind = KindSpy
		if msg := e.Message; msg != nil {
			r.Start = msg.Start
			r.Stop = msg.Stop
			r.Direction = msg.Direction
			r.Data = msg.Data
		}
	default:
		r.Kind = KindLifecycle
	}

	return r
}
