package i2c

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrBusLockup matches BusLockupError
	ErrBusLockup = errors.New("i2c bus lockup")

	// ErrCommunication matches CommunicationError
	ErrCommunication = errors.New("communication with the device failed")

	// ErrInvalidState matches InvalidStateError
	ErrInvalidState = errors.New("invalid handle state")
)

// BusLockupError indicates that the bus-clear probe found a line stuck low.
// No master can start a transaction until the physical fault is cleared;
// the handle stays Unconfigured and Open may be retried.
type BusLockupError struct {
	SDA int
	SCL int
}

func (e *BusLockupError) Error() string {
	return fmt.Sprintf("i2c bus lockup: SDA (DIO%d) or SCL (DIO%d) is held low", e.SDA, e.SCL)
}

// Is reports whether target is ErrBusLockup.
func (e *BusLockupError) Is(target error) bool {
	return target == ErrBusLockup
}

// CommunicationError indicates that a hardware primitive itself failed,
// including a timeout or cancellation of the operation's context.
type CommunicationError struct {
	// Op is the operation and primitive that failed, e.g. "open: clear"
	Op string

	// Err is the underlying driver or context error
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("%s: communication with the device failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCommunication.
func (e *CommunicationError) Is(target error) bool {
	return target == ErrCommunication
}

// InvalidStateError indicates an operation on a handle that is not Ready
// (or, for Open, a handle that is already Closed). It is a programming error.
type InvalidStateError struct {
	Op     string
	State  State
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: handle is %s: %s", e.Op, e.State, e.Reason)
	}
	return fmt.Sprintf("%s: handle is %s", e.Op, e.State)
}

// Is reports whether target is ErrInvalidState.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ConfigError indicates an invalid BusConfig, detected before any hardware call.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid bus config: %s: %s", e.Field, e.Reason)
}

func pinRangeReason(pin, count int) string {
	return fmt.Sprintf("pin %d is out of range: valid range is 0-%d", pin, count-1)
}
