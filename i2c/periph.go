package i2c

import (
	"context"
	"fmt"

	periphi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/moffa90/go-i2cm/protocol"
)

// PeriphBus exposes a Ready Handle as a periph.io I2C bus, so existing
// periph device drivers (and i2c.Dev) can run on top of it.
//
// A NAK is returned from Tx as *protocol.NotAcknowledgedError; periph
// drivers treat it as any other transfer failure.
//
// Example:
//
//	bus := i2c.NewPeriphBus(h)
//	dev := &periphi2c.Dev{Bus: bus, Addr: 0x4B}
//	raw := make([]byte, 2)
//	err := dev.Tx([]byte{0x00}, raw)
type PeriphBus struct {
	handle *Handle
	ctx    context.Context
}

// NewPeriphBus wraps h. Every Tx runs with the handle's timeout and no other deadline.
func NewPeriphBus(h *Handle) *PeriphBus {
	if h == nil {
		panic("handle cannot be nil")
	}
	return &PeriphBus{handle: h, ctx: context.Background()}
}

// String implements periphi2c.Bus.
func (b *PeriphBus) String() string {
	return "i2cm/" + b.handle.ID().String()
}

// Tx implements periphi2c.Bus. w is written first, then len(r) bytes are
// read after a repeated start; either may be empty.
func (b *PeriphBus) Tx(addr uint16, w, r []byte) error {
	if addr > uint16(protocol.MaxAddress) {
		return fmt.Errorf("tx: %w", &protocol.AddressRangeError{Value: int(addr)})
	}

	outcome, err := b.handle.Transfer(b.ctx, protocol.Address(addr), w, len(r))
	copy(r, outcome.Data)
	return err
}

// SetSpeed implements periphi2c.Bus by re-opening the handle with the new
// clock rate. The handle must be Ready. A NAK on the liveness probe is not
// reported.
func (b *PeriphBus) SetSpeed(f physic.Frequency) error {
	if state := b.handle.State(); state != StateReady {
		return &InvalidStateError{Op: "set speed", State: state}
	}
	cfg := b.handle.BusConfig()
	cfg.ClockRate = f

	if err := b.handle.Open(b.ctx, cfg); err != nil && !protocol.IsNotAcknowledged(err) {
		return err
	}
	return nil
}

// Close implements io.Closer by closing the handle.
func (b *PeriphBus) Close() error {
	return b.handle.Close(b.ctx)
}

// Compile-time interface satisfaction check.
var _ periphi2c.BusCloser = (*PeriphBus)(nil)
