package i2c

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-i2cm/hal"
	"github.com/moffa90/go-i2cm/protocol"
)

// State is the lifecycle state of a Handle.
type State int

const (
	// StateUnconfigured is a handle that has not been opened successfully
	StateUnconfigured State = iota

	// StateReady is an opened handle that accepts transfers and spy polls
	StateReady

	// StateClosed is a released handle; every further call fails
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Handle owns one I2C session on a hardware bus.
// It applies the bus configuration, runs transfers and decodes spy captures.
//
// Handle is safe for concurrent use: every operation holds the handle's lock
// for its whole duration, so transactions on the bus never overlap.
type Handle struct {
	mu        sync.Mutex
	bus       hal.Bus
	config    Config
	id        uuid.UUID
	state     State
	busConfig BusConfig
	spying    bool
}

// New creates an unconfigured Handle over bus. Call Open before any transfer.
//
// Example:
//
//	h := i2c.New(bus,
//	    i2c.WithLogger(i2c.NewSlogLogger(slog.Default())),
//	    i2c.WithTimeout(time.Second),
//	)
//	if err := h.Open(ctx, i2c.DefaultBusConfig(0, 1)); err != nil && !protocol.IsNotAcknowledged(err) {
//	    log.Fatal(err)
//	}
//	defer h.Close(ctx)
func New(bus hal.Bus, opts ...Option) *Handle {
	if bus == nil {
		panic("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Handle{
		bus:    bus,
		config: cfg,
		id:     uuid.New(),
		state:  StateUnconfigured,
	}
}

// ID returns the session identifier of the handle.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// BusConfig returns the configuration applied by the last successful Open,
// or the zero value while the handle is not Ready.
func (h *Handle) BusConfig() BusConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.busConfig
}

// Open configures the bus and makes the handle Ready:
//  1. Reset any previous I2C state
//  2. Apply clock stretching and clock rate
//  3. Assign the SCL and SDA lines
//  4. Run the bus-clear probe; a stuck line fails with *BusLockupError
//  5. Send a zero-length write to address 0 as a liveness probe
//
// A NAK on the liveness probe is returned as *protocol.NotAcknowledgedError,
// but the handle is Ready and transfers may proceed.
//
// Open may be called again on a Ready handle; it re-runs every step. Any
// failure leaves the handle Unconfigured. Open on a Closed handle fails with
// *InvalidStateError.
func (h *Handle) Open(ctx context.Context, cfg BusConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == StateClosed {
		return &InvalidStateError{Op: "open", State: h.state}
	}

	if err := cfg.Validate(h.pinCount()); err != nil {
		return err
	}

	ctx, cancel := h.opContext(ctx)
	defer cancel()

	h.state = StateUnconfigured
	h.busConfig = BusConfig{}
	h.spying = false

	steps := []struct {
		name string
		run  func() error
	}{
		{"reset", func() error { return h.bus.Reset(ctx) }},
		{"clock stretching", func() error { return h.bus.SetClockStretching(ctx, cfg.ClockStretching) }},
		{"clock rate", func() error { return h.bus.SetClockRate(ctx, cfg.ClockRateHz()) }},
		{"assign scl", func() error { return h.bus.AssignSCL(ctx, cfg.SCL) }},
		{"assign sda", func() error { return h.bus.AssignSDA(ctx, cfg.SDA) }},
	}
	for _, step := range steps {
		if err := h.call(ctx, "open: "+step.name, step.run); err != nil {
			return err
		}
	}

	var free int
	err := h.call(ctx, "open: clear", func() (err error) {
		free, err = h.bus.Clear(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if free == protocol.BusLocked {
		h.logError("bus lockup", "session", h.id.String(), "sda", cfg.SDA, "scl", cfg.SCL)
		return &BusLockupError{SDA: cfg.SDA, SCL: cfg.SCL}
	}

	var nak int
	err = h.call(ctx, "open: probe", func() (err error) {
		nak, err = h.bus.Write(ctx, protocol.ProbeAddress.WireByte(protocol.Write), nil)
		return err
	})
	if err != nil {
		return err
	}

	h.busConfig = cfg
	h.state = StateReady

	probeErr := protocol.DecodeAck(nak).Err("probe", protocol.ProbeAddress)

	h.logInfo("bus opened",
		"session", h.id.String(),
		"sda", cfg.SDA,
		"scl", cfg.SCL,
		"clock_rate", cfg.ClockRate.String(),
		"clock_stretching", cfg.ClockStretching,
	)
	if probeErr != nil {
		h.logDebug("liveness probe not acknowledged", "session", h.id.String(), "nak_index", nak)
	}

	h.emit(Event{
		Kind:    EventOpen,
		Op:      "open",
		Address: protocol.ProbeAddress,
		Outcome: protocol.TransferOutcome{Ack: protocol.DecodeAck(nak)},
		Err:     probeErr,
	})

	return probeErr
}

// Close resets the I2C engine and releases the handle. The handle is Closed
// even if the reset fails; the failure is returned as *CommunicationError.
// Closing a Closed handle fails with *InvalidStateError.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == StateClosed {
		return &InvalidStateError{Op: "close", State: h.state}
	}

	ctx, cancel := h.opContext(ctx)
	defer cancel()

	err := h.call(ctx, "close: reset", func() error { return h.bus.Reset(ctx) })

	h.state = StateClosed
	h.spying = false

	h.logInfo("bus closed", "session", h.id.String())
	h.emit(Event{Kind: EventClose, Op: "close", Err: err})

	return err
}

// checkReady fails fast when the handle cannot run bus operations.
// Must be called with h.mu held.
func (h *Handle) checkReady(op string) error {
	if h.state != StateReady {
		return &InvalidStateError{Op: op, State: h.state}
	}
	return nil
}

// call runs one hardware primitive, mapping its failure (or an already
// expired context) to *CommunicationError.
func (h *Handle) call(ctx context.Context, op string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return &CommunicationError{Op: op, Err: err}
	}
	if err := fn(); err != nil {
		h.logError("hardware call failed", "session", h.id.String(), "op", op, "error", err)
		return &CommunicationError{Op: op, Err: err}
	}
	return nil
}

// opContext applies the configured timeout when ctx has no deadline of its own.
func (h *Handle) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if h.config.Timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			return context.WithTimeout(ctx, h.config.Timeout)
		}
	}
	return ctx, func() {}
}

func (h *Handle) pinCount() int {
	if pc, ok := h.bus.(hal.PinCounter); ok {
		return pc.PinCount()
	}
	return 0
}

// emit calls the event callback if configured.
func (h *Handle) emit(event Event) {
	if h.config.EventCallback == nil {
		return
	}
	event.Session = h.id
	event.Time = time.Now()
	h.config.EventCallback(event)
}

// logDebug logs a debug message if a logger is configured.
func (h *Handle) logDebug(msg string, keysAndValues ...interface{}) {
	if h.config.Logger != nil {
		h.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (h *Handle) logInfo(msg string, keysAndValues ...interface{}) {
	if h.config.Logger != nil {
		h.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (h *Handle) logError(msg string, keysAndValues ...interface{}) {
	if h.config.Logger != nil {
		h.config.Logger.Error(msg, keysAndValues...)
	}
}
