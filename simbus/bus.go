// Package simbus provides a simulated I2C instrument implementing hal.Bus.
//
// Slave devices are attached by address. The bus generates the same NAK
// indicators a real instrument would: 1 when nothing answers the address
// byte, k+2 when a device rejects the k-th data byte (0-based). Reads from a
// device that runs out of data are padded with 0xFF, the idle level of SDA.
//
// Besides devices, a Bus can simulate a locked-up line, inject failures into
// any primitive, add latency, and queue captures for spy mode.
package simbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/moffa90/go-i2cm/hal"
	"github.com/moffa90/go-i2cm/protocol"
)

// DefaultPins is the number of digital lines of a simulated instrument.
const DefaultPins = 16

// Primitive names accepted by FailNext and reported in Call.Method.
const (
	MethodReset              = "Reset"
	MethodSetClockStretching = "SetClockStretching"
	MethodSetClockRate       = "SetClockRate"
	MethodAssignSCL          = "AssignSCL"
	MethodAssignSDA          = "AssignSDA"
	MethodClear              = "Clear"
	MethodWrite              = "Write"
	MethodRead               = "Read"
	MethodWriteRead          = "WriteRead"
	MethodSpyStart           = "SpyStart"
	MethodSpyStatus          = "SpyStatus"
)

// ErrNotCapturing is returned by SpyStatus before SpyStart.
var ErrNotCapturing = errors.New("simbus: capture not started")

// Call records one primitive invocation.
type Call struct {
	Method string
	Wire   byte
	Data   []byte
	Count  int
}

// Bus is a simulated instrument. It is safe for concurrent use.
type Bus struct {
	mu       sync.Mutex
	pins     int
	latency  time.Duration
	devices  map[protocol.Address]Device
	locked   bool
	failures map[string]error
	calls    []Call

	stretching bool
	clockRate  float64
	scl, sda   int

	capturing bool
	captures  []hal.SpyStatus
}

// Option configures a Bus.
type Option func(*Bus)

// WithPins sets the number of digital lines. Default is DefaultPins.
func WithPins(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.pins = n
		}
	}
}

// WithLatency delays every primitive by d. The delay honors ctx.
func WithLatency(d time.Duration) Option {
	return func(b *Bus) {
		if d >= 0 {
			b.latency = d
		}
	}
}

// WithDevice attaches dev at addr.
func WithDevice(addr protocol.Address, dev Device) Option {
	return func(b *Bus) {
		b.devices[addr] = dev
	}
}

// New creates a simulated bus with no devices attached.
func New(opts ...Option) *Bus {
	b := &Bus{
		pins:     DefaultPins,
		devices:  make(map[protocol.Address]Device),
		failures: make(map[string]error),
		scl:      -1,
		sda:      -1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach connects dev at addr, replacing any device already there.
func (b *Bus) Attach(addr protocol.Address, dev Device) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.devices[addr] = dev
}

// Detach removes the device at addr.
func (b *Bus) Detach(addr protocol.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.devices, addr)
}

// SetLocked simulates a line held low. While locked, Clear reports the bus as
// not free and no transfer is acknowledged.
func (b *Bus) SetLocked(locked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.locked = locked
}

// FailNext makes the next call to method return err.
func (b *Bus) FailNext(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = err
}

// Inject queues a capture returned by a later SpyStatus.
func (b *Bus) Inject(status hal.SpyStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	status.Data = append([]byte(nil), status.Data...)
	b.captures = append(b.captures, status)
}

// Calls returns a copy of the primitive call log.
func (b *Bus) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Methods returns the method names of the call log, in order.
func (b *Bus) Methods() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, len(b.calls))
	for i, c := range b.calls {
		names[i] = c.Method
	}
	return names
}

// ResetCalls clears the call log.
func (b *Bus) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// PinCount implements hal.PinCounter.
func (b *Bus) PinCount() int {
	return b.pins
}

// ClockRate returns the last clock rate set, in hertz.
func (b *Bus) ClockRate() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clockRate
}

// ClockStretching reports the last clock stretching setting.
func (b *Bus) ClockStretching() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stretching
}

// Lines returns the assigned SDA and SCL pins, -1 when unassigned.
func (b *Bus) Lines() (sda, scl int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sda, b.scl
}

// Capturing reports whether spy mode is active.
func (b *Bus) Capturing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capturing
}

func (b *Bus) Reset(ctx context.Context) error {
	return b.do(ctx, Call{Method: MethodReset}, func() error {
		b.capturing = false
		b.captures = nil
		b.scl, b.sda = -1, -1
		return nil
	})
}

func (b *Bus) SetClockStretching(ctx context.Context, enabled bool) error {
	return b.do(ctx, Call{Method: MethodSetClockStretching}, func() error {
		b.stretching = enabled
		return nil
	})
}

func (b *Bus) SetClockRate(ctx context.Context, hz float64) error {
	return b.do(ctx, Call{Method: MethodSetClockRate}, func() error {
		if hz <= 0 {
			return fmt.Errorf("simbus: clock rate must be positive, got %g", hz)
		}
		b.clockRate = hz
		return nil
	})
}

func (b *Bus) AssignSCL(ctx context.Context, pin int) error {
	return b.do(ctx, Call{Method: MethodAssignSCL, Count: pin}, func() error {
		if err := b.checkPin(pin); err != nil {
			return err
		}
		b.scl = pin
		return nil
	})
}

func (b *Bus) AssignSDA(ctx context.Context, pin int) error {
	return b.do(ctx, Call{Method: MethodAssignSDA, Count: pin}, func() error {
		if err := b.checkPin(pin); err != nil {
			return err
		}
		b.sda = pin
		return nil
	})
}

func (b *Bus) Clear(ctx context.Context) (int, error) {
	free := 0
	err := b.do(ctx, Call{Method: MethodClear}, func() error {
		if !b.locked {
			free = 1
		}
		return nil
	})
	return free, err
}

func (b *Bus) Write(ctx context.Context, wireAddr byte, data []byte) (int, error) {
	var nak int
	err := b.do(ctx, Call{Method: MethodWrite, Wire: wireAddr, Data: clone(data)}, func() error {
		addr, dir := protocol.SplitWireByte(wireAddr)
		if dir != protocol.Write {
			return fmt.Errorf("simbus: write with read address byte 0x%02X", wireAddr)
		}
		nak = b.writePhase(addr, data)
		b.mirror(protocol.SpyStartCondition, wireAddr, data, nak, true)
		return nil
	})
	return nak, err
}

func (b *Bus) Read(ctx context.Context, wireAddr byte, count int) (hal.ReadResult, error) {
	var result hal.ReadResult
	err := b.do(ctx, Call{Method: MethodRead, Wire: wireAddr, Count: count}, func() error {
		addr, dir := protocol.SplitWireByte(wireAddr)
		if dir != protocol.Read {
			return fmt.Errorf("simbus: read with write address byte 0x%02X", wireAddr)
		}
		result = b.readPhase(addr, count)
		b.mirror(protocol.SpyStartCondition, wireAddr, result.Data, result.NAK, true)
		return nil
	})
	return result, err
}

func (b *Bus) WriteRead(ctx context.Context, wireAddr byte, out []byte, in int) (hal.ReadResult, error) {
	var result hal.ReadResult
	err := b.do(ctx, Call{Method: MethodWriteRead, Wire: wireAddr, Data: clone(out), Count: in}, func() error {
		addr, dir := protocol.SplitWireByte(wireAddr)
		if dir != protocol.Write {
			return fmt.Errorf("simbus: write-read with read address byte 0x%02X", wireAddr)
		}
		if nak := b.writePhase(addr, out); nak != protocol.NAKNone {
			result.NAK = nak
			b.mirror(protocol.SpyStartCondition, wireAddr, out, nak, true)
			return nil
		}
		b.mirror(protocol.SpyStartCondition, wireAddr, out, protocol.NAKNone, false)
		result = b.readPhase(addr, in)
		b.mirror(protocol.SpyRestartCondition, addr.WireByte(protocol.Read), result.Data, result.NAK, true)
		return nil
	})
	return result, err
}

func (b *Bus) SpyStart(ctx context.Context) error {
	return b.do(ctx, Call{Method: MethodSpyStart}, func() error {
		b.capturing = true
		return nil
	})
}

func (b *Bus) SpyStatus(ctx context.Context, maxBytes int) (hal.SpyStatus, error) {
	var status hal.SpyStatus
	err := b.do(ctx, Call{Method: MethodSpyStatus, Count: maxBytes}, func() error {
		if !b.capturing {
			return ErrNotCapturing
		}
		if len(b.captures) == 0 {
			return nil
		}
		status = b.captures[0]
		b.captures = b.captures[1:]
		if maxBytes >= 0 && len(status.Data) > maxBytes {
			status.Data = status.Data[:maxBytes]
		}
		return nil
	})
	return status, err
}

// do serializes a primitive: it logs the call, waits the configured latency,
// consumes an injected failure, then runs fn under the bus lock.
func (b *Bus) do(ctx context.Context, call Call, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.latency > 0 {
		timer := time.NewTimer(b.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, call)
	if err, ok := b.failures[call.Method]; ok {
		delete(b.failures, call.Method)
		return err
	}
	return fn()
}

func (b *Bus) checkPin(pin int) error {
	if pin < 0 || pin >= b.pins {
		return fmt.Errorf("simbus: no digital line DIO%d (instrument has %d)", pin, b.pins)
	}
	return nil
}

// writePhase delivers data to the device at addr and returns the NAK indicator.
func (b *Bus) writePhase(addr protocol.Address, data []byte) int {
	dev, ok := b.devices[addr]
	if !ok || b.locked {
		return 1
	}
	accepted := dev.Write(clone(data))
	if accepted < len(data) {
		if accepted < 0 {
			accepted = 0
		}
		return accepted + 2
	}
	return protocol.NAKNone
}

func (b *Bus) readPhase(addr protocol.Address, count int) hal.ReadResult {
	dev, ok := b.devices[addr]
	if !ok || b.locked {
		return hal.ReadResult{NAK: 1}
	}
	data := make([]byte, count)
	n := copy(data, dev.Read(count))
	for i := n; i < count; i++ {
		data[i] = 0xFF
	}
	return hal.ReadResult{Data: data}
}

// mirror queues the master's own traffic while capturing.
func (b *Bus) mirror(start int, wire byte, data []byte, nak int, stop bool) {
	if !b.capturing {
		return
	}
	window := make([]byte, 0, len(data)+1)
	window = append(window, wire)
	window = append(window, data...)
	status := hal.SpyStatus{Start: start, Data: window, NAK: nak}
	if stop {
		status.Stop = 1
	}
	b.captures = append(b.captures, status)
}

func clone(data []byte) []byte {
	if data == nil {
		return nil
	}
	return append([]byte(nil), data...)
}

// Compile-time interface satisfaction checks.
var (
	_ hal.Bus        = (*Bus)(nil)
	_ hal.PinCounter = (*Bus)(nil)
)
