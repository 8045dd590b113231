package i2c

import (
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-i2cm/protocol"
)

// EventKind classifies an Event.
type EventKind string

// Event kinds.
const (
	EventOpen     EventKind = "open"
	EventClose    EventKind = "close"
	EventTransfer EventKind = "transfer"
	EventSpy      EventKind = "spy"
)

// Event describes one completed handle operation.
// Passed to EventCallback after the operation returns from the hardware.
type Event struct {
	// Kind is the event category
	Kind EventKind

	// Session is the ID of the handle that produced the event
	Session uuid.UUID

	// Time is when the operation completed
	Time time.Time

	// Op is the operation name: "write", "read", "exchange", "open", "close", "spy"
	Op string

	// Address is the slave address of a transfer or decoded spy message
	Address protocol.Address

	// Written holds the encoded bytes sent by a write or exchange
	Written []byte

	// Outcome is the transfer result (bytes received and ack status)
	Outcome protocol.TransferOutcome

	// Message is the decoded bus message for EventSpy
	Message *protocol.SpyMessage

	// Err is the error returned by the operation, if any
	Err error
}

// EventCallback is called synchronously while the handle is locked.
// Implementations must return quickly and must not call back into the handle.
type EventCallback func(Event)

// Logger is an optional logging interface that can be provided to the handle.
// This allows integration with any logging framework; NewSlogLogger adapts log/slog.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
