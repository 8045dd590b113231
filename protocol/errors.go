package protocol

import (
	"errors"
	"fmt"
)

// ErrNotAcknowledged matches any NotAcknowledgedError with errors.Is.
var ErrNotAcknowledged = errors.New("not acknowledged")

// NotAcknowledgedError reports that a byte of a transaction was rejected by the slave.
// The transfer's received data, if any, is returned alongside this error.
type NotAcknowledgedError struct {
	// Operation is the transfer that was rejected
	Operation string

	// Address is the slave address of the transaction
	Address Address

	// Index is the 1-based position of the first rejected byte (address byte = 1)
	Index int
}

func (e *NotAcknowledgedError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("NAK: index %d", e.Index)
	}
	return fmt.Sprintf("%s %s: NAK: index %d", e.Operation, e.Address, e.Index)
}

// Is reports whether target is ErrNotAcknowledged.
func (e *NotAcknowledgedError) Is(target error) bool {
	return target == ErrNotAcknowledged
}

// AddressNAK reports whether the address byte itself was rejected,
// which usually means no device answered at that address.
func (e *NotAcknowledgedError) AddressNAK() bool {
	return e.Index == 1
}

// IsNotAcknowledged returns true if err is or wraps a NotAcknowledgedError.
func IsNotAcknowledged(err error) bool {
	return errors.Is(err, ErrNotAcknowledged)
}

// NAKIndex extracts the NAK index from err, or 0 if err carries none.
func NAKIndex(err error) int {
	var nak *NotAcknowledgedError
	if errors.As(err, &nak) {
		return nak.Index
	}
	return NAKNone
}

// PayloadRangeError reports a payload element that does not fit in a byte.
type PayloadRangeError struct {
	// Index is the position of the offending element
	Index int

	// Value is the rejected value (an integer or a character code point)
	Value int
}

func (e *PayloadRangeError) Error() string {
	return fmt.Sprintf("payload element %d: value %d (0x%X) does not fit in a byte", e.Index, e.Value, e.Value)
}

// AddressRangeError reports an address outside the 7-bit range.
type AddressRangeError struct {
	Value int
}

func (e *AddressRangeError) Error() string {
	return fmt.Sprintf("address 0x%X is out of range: valid range is 0x00-0x%02X", e.Value, MaxAddress)
}
