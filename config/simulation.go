package config

import (
	"fmt"
	"time"

	"github.com/moffa90/go-i2cm/protocol"
	"github.com/moffa90/go-i2cm/simbus"
)

// Device types accepted in simulation.devices.
const (
	DeviceEcho    = "echo"
	DeviceMemory  = "memory"
	DeviceTMP2    = "tmp2"
	DeviceDisplay = "cls"
)

// Simulation describes the simulated instrument the tool runs against.
type Simulation struct {
	Pins    int           `yaml:"pins"`
	Latency time.Duration `yaml:"latency"`
	Locked  bool          `yaml:"locked"`
	Devices []Device      `yaml:"devices"`
}

// Device is one simulated slave.
type Device struct {
	Type    string `yaml:"type"`
	Address string `yaml:"address"`

	// Size and Preset configure a memory device.
	Size   int   `yaml:"size"`
	Preset []int `yaml:"preset"`

	// Temperature is the reading of a tmp2 device, in degrees Celsius.
	Temperature float64 `yaml:"temperature"`

	// NakAfter, when positive, acknowledges only that many data bytes per write.
	NakAfter int `yaml:"nak_after"`
}

func (s *Simulation) validate() error {
	if s.Pins < 0 {
		return &Error{Field: "simulation.pins", Message: "must not be negative"}
	}
	if s.Latency < 0 {
		return &Error{Field: "simulation.latency", Message: "must not be negative"}
	}

	seen := make(map[protocol.Address]bool)
	for i, d := range s.Devices {
		field := fmt.Sprintf("simulation.devices[%d]", i)

		addr, err := protocol.ParseAddress(d.Address)
		if err != nil {
			return &Error{Field: field + ".address", Message: err.Error()}
		}
		if seen[addr] {
			return &Error{Field: field + ".address", Message: fmt.Sprintf("duplicate address %s", addr)}
		}
		seen[addr] = true

		switch d.Type {
		case DeviceEcho, DeviceTMP2, DeviceDisplay:
		case DeviceMemory:
			if _, err := protocol.Ints(d.Preset...).Encode(); err != nil {
				return &Error{Field: field + ".preset", Message: err.Error()}
			}
		default:
			return &Error{Field: field + ".type", Message: fmt.Sprintf("unknown device type %q", d.Type)}
		}
		if d.NakAfter < 0 {
			return &Error{Field: field + ".nak_after", Message: "must not be negative"}
		}
	}
	return nil
}

// NewBus builds the simulated bus. The configuration must be valid.
func (s *Simulation) NewBus() (*simbus.Bus, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	opts := []simbus.Option{
		simbus.WithPins(s.Pins),
		simbus.WithLatency(s.Latency),
	}
	for _, d := range s.Devices {
		addr, _ := protocol.ParseAddress(d.Address)
		opts = append(opts, simbus.WithDevice(addr, d.build()))
	}

	bus := simbus.New(opts...)
	bus.SetLocked(s.Locked)
	return bus, nil
}

func (d Device) build() simbus.Device {
	var dev simbus.Device
	switch d.Type {
	case DeviceMemory:
		preset, _ := protocol.Ints(d.Preset...).Encode()
		dev = simbus.NewMemory(d.Size, preset)
	case DeviceTMP2:
		dev = simbus.NewTMP2(d.Temperature)
	case DeviceDisplay:
		dev = simbus.NewDisplay()
	default:
		dev = simbus.NewEcho()
	}
	if d.NakAfter > 0 {
		dev = &simbus.NakAfter{Device: dev, N: d.NakAfter}
	}
	return dev
}
