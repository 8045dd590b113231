package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a 7-bit I2C slave address (0x00-0x7F).
// It never includes the direction bit; use WireByte for the on-wire form.
type Address uint8

// Valid reports whether the address fits in 7 bits.
func (a Address) Valid() bool {
	return a <= MaxAddress
}

// WireByte returns the 8-bit address byte sent on the bus: the address
// shifted left by one with the direction in bit 0.
//
// Example:
//
//	protocol.Address(0x48).WireByte(protocol.Read) // 0x91
func (a Address) WireByte(dir Direction) byte {
	return byte(a&AddressMask)<<1 | byte(dir)&DirectionBit
}

// String formats the address as 0xNN.
func (a Address) String() string {
	return fmt.Sprintf("0x%02X", uint8(a))
}

// SplitWireByte decodes an on-wire address byte into address and direction.
func SplitWireByte(b byte) (Address, Direction) {
	return Address(b >> 1), Direction(b & DirectionBit)
}

// ParseAddress parses a 7-bit address written as hex ("0x48", "48h") or decimal ("72").
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty address")
	}

	var (
		v   uint64
		err error
	)
	switch lower := strings.ToLower(s); {
	case strings.HasPrefix(lower, "0x"):
		v, err = strconv.ParseUint(lower[2:], 16, 16)
	case strings.HasSuffix(lower, "h"):
		v, err = strconv.ParseUint(lower[:len(lower)-1], 16, 16)
	default:
		v, err = strconv.ParseUint(lower, 10, 16)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}

	if v > MaxAddress {
		return 0, &AddressRangeError{Value: int(v)}
	}
	return Address(v), nil
}

// Direction is the transfer direction encoded in the address byte.
type Direction uint8

const (
	// Write is a master-to-slave transfer (direction bit 0)
	Write Direction = 0

	// Read is a slave-to-master transfer (direction bit 1)
	Read Direction = 1
)

// String returns "Write" or "Read".
func (d Direction) String() string {
	if d == Read {
		return "Read"
	}
	return "Write"
}

// StartKind classifies the condition that opened a captured bus message.
type StartKind uint8

const (
	// StartNone means no start condition was observed
	StartNone StartKind = iota

	// Start is a start condition
	Start

	// Restart is a repeated start condition
	Restart
)

// String returns the start kind name.
func (k StartKind) String() string {
	switch k {
	case Start:
		return "Start"
	case Restart:
		return "Restart"
	default:
		return "None"
	}
}

// AckStatus is the acknowledgment outcome of a transfer.
// NAKIndex is 0 for a fully acknowledged transfer, otherwise the 1-based
// position of the first rejected byte where the address byte is byte 1.
type AckStatus struct {
	NAKIndex int
}

// Acknowledged reports whether every byte was acknowledged.
func (s AckStatus) Acknowledged() bool {
	return s.NAKIndex == NAKNone
}

// String returns "ACK" or "NAK@n".
func (s AckStatus) String() string {
	if s.Acknowledged() {
		return "ACK"
	}
	return fmt.Sprintf("NAK@%d", s.NAKIndex)
}

// TransferOutcome is the result of a single bus transaction.
type TransferOutcome struct {
	// Data holds the bytes received (empty for writes)
	Data []byte

	// Ack is the acknowledgment status reported by the hardware
	Ack AckStatus
}

// SpyMessage is one bus message decoded from a passive capture.
type SpyMessage struct {
	// Start is the condition that opened the message
	Start StartKind

	// RawStart is the start indicator exactly as reported by the hardware.
	// It differs from Start only for codes other than 1 and 2, which decode as Start.
	RawStart int

	// HasAddress is false when a start was seen but no byte was captured yet
	HasAddress bool

	// Address is the 7-bit address from the first captured byte
	Address Address

	// Direction is bit 0 of the first captured byte
	Direction Direction

	// Data is the captured window including the address byte at index 0
	Data []byte

	// Stop is true when a stop condition closed the message
	Stop bool
}

// Payload returns the captured bytes after the address byte.
func (m *SpyMessage) Payload() []byte {
	if len(m.Data) <= 1 {
		return nil
	}
	return m.Data[1:]
}
