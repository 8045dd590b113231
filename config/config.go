// Package config loads the YAML configuration of the i2cm tool.
//
// A minimal file only names the bus lines:
//
//	bus:
//	  sda: 0
//	  scl: 1
//
// Everything else has a default; see Default.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/moffa90/go-i2cm/i2c"
	"github.com/moffa90/go-i2cm/protocol"
)

// File is the root of a configuration file.
type File struct {
	Bus        Bus           `yaml:"bus"`
	Timeout    time.Duration `yaml:"timeout"`
	Spy        Spy           `yaml:"spy"`
	Capture    Capture       `yaml:"capture"`
	Log        Log           `yaml:"log"`
	Simulation Simulation    `yaml:"simulation"`
}

// Bus holds the electrical parameters applied on open.
type Bus struct {
	SDA             int    `yaml:"sda"`
	SCL             int    `yaml:"scl"`
	ClockRate       string `yaml:"clock_rate"`
	ClockStretching bool   `yaml:"clock_stretching"`
}

// Spy configures bus monitoring.
type Spy struct {
	MaxBytes     int           `yaml:"max_bytes"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Capture configures the capture file. An empty path disables recording.
type Capture struct {
	Path string `yaml:"path"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Error describes an invalid or unreadable configuration.
type Error struct {
	File    string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Default returns the configuration used when no file is given: SDA on DIO0,
// SCL on DIO1, 100kHz with clock stretching, one second per operation, and a
// simulated bus with a TMP2 sensor at 0x4B and a CLS display at 0x48.
func Default() *File {
	return &File{
		Bus: Bus{
			SDA:             0,
			SCL:             1,
			ClockRate:       "100kHz",
			ClockStretching: protocol.DefaultClockStretching,
		},
		Timeout: time.Second,
		Spy: Spy{
			MaxBytes:     protocol.DefaultSpyBufferSize,
			PollInterval: i2c.DefaultPollInterval,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Simulation: Simulation{
			Pins: 16,
			Devices: []Device{
				{Type: DeviceTMP2, Address: "0x4B", Temperature: 23.5},
				{Type: DeviceDisplay, Address: "0x48"},
			},
		},
	}
}

// Parse decodes a configuration over the defaults and validates it.
func Parse(data []byte) (*File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, &Error{Message: "failed to parse YAML", Cause: err}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Message: "failed to read file", Cause: err}
	}

	f, err := Parse(data)
	if err != nil {
		if ce, ok := err.(*Error); ok {
			ce.File = path
			return nil, ce
		}
		return nil, &Error{File: path, Message: err.Error()}
	}
	return f, nil
}

// Validate checks every section.
func (f *File) Validate() error {
	cfg, err := f.BusConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(f.Simulation.Pins); err != nil {
		return &Error{Field: "bus", Message: err.Error()}
	}
	if f.Timeout < 0 {
		return &Error{Field: "timeout", Message: "must not be negative"}
	}
	if f.Spy.MaxBytes < 0 {
		return &Error{Field: "spy.max_bytes", Message: "must not be negative"}
	}
	if f.Spy.PollInterval < 0 {
		return &Error{Field: "spy.poll_interval", Message: "must not be negative"}
	}
	if _, err := parseLevel(f.Log.Level); err != nil {
		return &Error{Field: "log.level", Message: err.Error()}
	}
	switch strings.ToLower(f.Log.Format) {
	case "", "text", "json":
	default:
		return &Error{Field: "log.format", Message: fmt.Sprintf("unknown format %q (want text or json)", f.Log.Format)}
	}
	return f.Simulation.validate()
}

// BusConfig converts the bus section.
func (f *File) BusConfig() (i2c.BusConfig, error) {
	rate, err := ParseFrequency(f.Bus.ClockRate)
	if err != nil {
		return i2c.BusConfig{}, &Error{Field: "bus.clock_rate", Message: err.Error()}
	}
	return i2c.BusConfig{
		SDA:             f.Bus.SDA,
		SCL:             f.Bus.SCL,
		ClockRate:       rate,
		ClockStretching: f.Bus.ClockStretching,
	}, nil
}

// HandleOptions returns the handle options derived from the file.
func (f *File) HandleOptions() []i2c.Option {
	return []i2c.Option{
		i2c.WithTimeout(f.Timeout),
		i2c.WithSpyBufferSize(f.Spy.MaxBytes),
	}
}

// SlogLevel returns the configured log level, or slog.LevelInfo when invalid.
func (f *File) SlogLevel() slog.Level {
	level, err := parseLevel(f.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds a logger writing to w in the configured format and level.
func (f *File) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: f.SlogLevel()}
	if strings.EqualFold(f.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseFrequency parses a clock rate such as "400kHz" or "1MHz". A bare
// number is taken as hertz.
func ParseFrequency(s string) (physic.Frequency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty frequency")
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		s += "Hz"
	}

	var f physic.Frequency
	if err := f.Set(s); err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("frequency %s must be positive", f)
	}
	return f, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}
