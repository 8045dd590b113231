package i2c

import (
	"periph.io/x/conn/v3/physic"

	"github.com/moffa90/go-i2cm/protocol"
)

// BusConfig holds the electrical parameters applied by Open.
// A config is immutable once applied; to change it, call Open again.
type BusConfig struct {
	// SDA is the digital line used for data
	SDA int

	// SCL is the digital line used for the clock
	SCL int

	// ClockRate is the SCL frequency (default 100kHz)
	ClockRate physic.Frequency

	// ClockStretching lets slaves hold SCL low to slow the master (default true)
	ClockStretching bool
}

// DefaultBusConfig returns a standard-mode configuration on the given lines.
//
// Example:
//
//	cfg := i2c.DefaultBusConfig(0, 1) // SDA on DIO0, SCL on DIO1, 100kHz
func DefaultBusConfig(sda, scl int) BusConfig {
	return BusConfig{
		SDA:             sda,
		SCL:             scl,
		ClockRate:       protocol.DefaultClockRateHz * physic.Hertz,
		ClockStretching: protocol.DefaultClockStretching,
	}
}

// ClockRateHz returns the clock rate in hertz.
func (c BusConfig) ClockRateHz() float64 {
	return float64(c.ClockRate) / float64(physic.Hertz)
}

// Validate checks the configuration. pinCount bounds the pin numbers when
// positive; pass 0 when the number of lines is unknown.
func (c BusConfig) Validate(pinCount int) error {
	if c.SDA < 0 {
		return &ConfigError{Field: "sda", Reason: "pin must not be negative"}
	}
	if c.SCL < 0 {
		return &ConfigError{Field: "scl", Reason: "pin must not be negative"}
	}
	if pinCount > 0 {
		if c.SDA >= pinCount {
			return &ConfigError{Field: "sda", Reason: pinRangeReason(c.SDA, pinCount)}
		}
		if c.SCL >= pinCount {
			return &ConfigError{Field: "scl", Reason: pinRangeReason(c.SCL, pinCount)}
		}
	}
	if c.SDA == c.SCL {
		return &ConfigError{Field: "scl", Reason: "SDA and SCL must use different pins"}
	}
	if c.ClockRate <= 0 {
		return &ConfigError{Field: "clock_rate", Reason: "must be positive"}
	}
	return nil
}
