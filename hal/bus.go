// Package hal defines the hardware boundary of the I2C master driver.
//
// A Bus is the low-level digital-I/O instrument that actually generates the
// clock, drives SDA/SCL and samples the lines. This module does not implement
// one for real hardware; the composition root picks an implementation (the
// simbus package provides a simulated bus) and injects it into i2c.New.
//
// Every method blocks until the instrument finishes the primitive or ctx is
// done. A non-nil error means the call itself failed (driver or transport
// fault); a NAK is not an error at this layer and is reported through the NAK
// indicator instead.
package hal

import "context"

// Bus is the set of primitives the protocol layer needs from the instrument.
// Addresses passed to Write, Read and WriteRead are 8-bit wire bytes, with the
// direction already in bit 0.
type Bus interface {
	// Reset returns the I2C engine to its power-on state. Safe on an unconfigured bus.
	Reset(ctx context.Context) error

	// SetClockStretching enables or disables slave clock stretching.
	SetClockStretching(ctx context.Context, enabled bool) error

	// SetClockRate sets the SCL frequency in hertz.
	SetClockRate(ctx context.Context, hz float64) error

	// AssignSCL selects the digital line used as SCL.
	AssignSCL(ctx context.Context, pin int) error

	// AssignSDA selects the digital line used as SDA.
	AssignSDA(ctx context.Context, pin int) error

	// Clear attempts to free the bus and returns the bus-free indicator;
	// 0 means a line is stuck low.
	Clear(ctx context.Context) (int, error)

	// Write sends data to wireAddr and returns the NAK indicator.
	Write(ctx context.Context, wireAddr byte, data []byte) (int, error)

	// Read receives count bytes from wireAddr.
	Read(ctx context.Context, wireAddr byte, count int) (ReadResult, error)

	// WriteRead sends out, issues a repeated start and receives in bytes.
	// wireAddr is the write form; the instrument sets bit 0 for the read phase.
	WriteRead(ctx context.Context, wireAddr byte, out []byte, in int) (ReadResult, error)

	// SpyStart puts the engine into passive capture mode.
	SpyStart(ctx context.Context) error

	// SpyStatus returns what was captured since the previous call, up to maxBytes.
	SpyStatus(ctx context.Context, maxBytes int) (SpyStatus, error)
}

// PinCounter is implemented by buses that know how many digital lines they have.
// When available, pin assignments are range-checked before touching hardware.
type PinCounter interface {
	PinCount() int
}

// ReadResult is the outcome of a Read or WriteRead primitive.
type ReadResult struct {
	// Data holds the bytes clocked in, possibly fewer than requested on a NAK
	Data []byte

	// NAK is the 1-based index of the first unacknowledged byte, 0 if none
	NAK int
}

// SpyStatus is the outcome of one capture poll.
type SpyStatus struct {
	// Start is 0 (none), 1 (start) or 2 (restart)
	Start int

	// Stop is nonzero when a stop condition was seen
	Stop int

	// Data is the captured window, address byte first
	Data []byte

	// NAK is the 1-based index of the first unacknowledged byte, 0 if none
	NAK int
}
