package protocol

// Bus parameter defaults.
const (
	// DefaultClockRateHz is the standard-mode I2C clock (100 kHz)
	DefaultClockRateHz = 100000

	// DefaultClockStretching enables slave clock stretching by default
	DefaultClockStretching = true

	// DefaultSpyBufferSize is the number of bytes captured per spy poll
	DefaultSpyBufferSize = 16
)

// Addressing constants.
const (
	// MaxAddress is the highest 7-bit slave address
	MaxAddress = 0x7F

	// AddressMask selects the 7 address bits
	AddressMask = 0x7F

	// DirectionBit is the low bit of the wire address byte (0 = write, 1 = read)
	DirectionBit = 0x01

	// ProbeAddress is the address used by the zero-length liveness probe
	ProbeAddress Address = 0x00
)

// Hardware indicator values.
const (
	// NAKNone is the NAK indicator reported for a fully acknowledged transfer
	NAKNone = 0

	// BusLocked is the bus-clear result meaning SDA or SCL is held low
	BusLocked = 0
)

// Spy start indicator codes reported by the capture hardware.
const (
	// SpyStartNone means no start condition was seen since the previous poll
	SpyStartNone = 0

	// SpyStartCondition is a plain start condition
	SpyStartCondition = 1

	// SpyRestartCondition is a repeated start
	SpyRestartCondition = 2
)

// MaxPayloadValue is the largest value a payload element may carry.
const MaxPayloadValue = 0xFF
