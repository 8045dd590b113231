package i2c

import (
	"time"

	"github.com/moffa90/go-i2cm/protocol"
)

// Config holds the handle configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// EventCallback is called after every completed operation (optional)
	EventCallback EventCallback

	// Timeout bounds each operation whose context has no deadline.
	// Zero leaves operations bounded only by the hardware.
	Timeout time.Duration

	// SpyBufferSize is the capture window used by SpyPoll when maxBytes <= 0
	SpyBufferSize int
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		SpyBufferSize: protocol.DefaultSpyBufferSize,
	}
}

// Option is a functional option for configuring the Handle.
type Option func(*Config)

// WithLogger sets a logger for bus operations.
//
// Example:
//
//	h := i2c.New(bus, i2c.WithLogger(i2c.NewSlogLogger(slog.Default())))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithEventCallback sets a callback that observes every completed operation.
//
// Example:
//
//	rec, _ := capture.NewFileRecorder("bus.i2clog")
//	h := i2c.New(bus, i2c.WithEventCallback(rec.Observe))
func WithEventCallback(callback EventCallback) Option {
	return func(c *Config) {
		c.EventCallback = callback
	}
}

// WithTimeout bounds every operation whose context carries no deadline.
// An expired operation fails with a CommunicationError.
//
// Example:
//
//	h := i2c.New(bus, i2c.WithTimeout(500*time.Millisecond))
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout >= 0 {
			c.Timeout = timeout
		}
	}
}

// WithSpyBufferSize sets the default number of bytes captured per spy poll.
// Default is 16 bytes.
func WithSpyBufferSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.SpyBufferSize = size
		}
	}
}
