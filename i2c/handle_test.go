package i2c

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	"github.com/moffa90/go-i2cm/hal/mocks"
	"github.com/moffa90/go-i2cm/protocol"
	"github.com/moffa90/go-i2cm/simbus"
)

// recordLogger keeps every log call for inspection.
type recordLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *recordLogger) Debug(msg string, _ ...interface{}) { l.log("DEBUG", msg) }
func (l *recordLogger) Info(msg string, _ ...interface{})  { l.log("INFO", msg) }
func (l *recordLogger) Error(msg string, _ ...interface{}) { l.log("ERROR", msg) }

func (l *recordLogger) has(entry string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e == entry {
			return true
		}
	}
	return false
}

// openSim opens a handle on bus with the default config and clears the call log.
// A NAK on the liveness probe is accepted.
func openSim(t *testing.T, bus *simbus.Bus, opts ...Option) *Handle {
	t.Helper()

	h := New(bus, opts...)
	err := h.Open(context.Background(), DefaultBusConfig(0, 1))
	if err != nil {
		require.True(t, protocol.IsNotAcknowledged(err), "unexpected open error: %v", err)
	}
	require.Equal(t, StateReady, h.State())

	bus.ResetCalls()
	return h
}

// expectOpen registers the hardware calls of Open with the default config.
func expectOpen(bus *mocks.MockBus) {
	bus.EXPECT().Reset(mock.Anything).Return(nil).Once()
	bus.EXPECT().SetClockStretching(mock.Anything, true).Return(nil).Once()
	bus.EXPECT().SetClockRate(mock.Anything, 100000.0).Return(nil).Once()
	bus.EXPECT().AssignSCL(mock.Anything, 1).Return(nil).Once()
	bus.EXPECT().AssignSDA(mock.Anything, 0).Return(nil).Once()
	bus.EXPECT().Clear(mock.Anything).Return(1, nil).Once()
	bus.EXPECT().Write(mock.Anything, byte(0x00), []byte(nil)).Return(0, nil).Once()
}

func openMock(t *testing.T, opts ...Option) (*Handle, *mocks.MockBus) {
	t.Helper()

	bus := mocks.NewMockBus(t)
	expectOpen(bus)

	h := New(bus, opts...)
	require.NoError(t, h.Open(context.Background(), DefaultBusConfig(0, 1)))
	return h, bus
}

func TestNewPanicsOnNilBus(t *testing.T) {
	assert.PanicsWithValue(t, "bus cannot be nil", func() {
		New(nil)
	})
}

func TestNewHandleIsUnconfigured(t *testing.T) {
	h := New(simbus.New())

	assert.Equal(t, StateUnconfigured, h.State())
	assert.NotEqual(t, [16]byte{}, [16]byte(h.ID()))
}

func TestOpenSequence(t *testing.T) {
	bus := simbus.New(simbus.WithDevice(protocol.ProbeAddress, simbus.NewEcho()))
	h := New(bus)

	require.NoError(t, h.Open(context.Background(), DefaultBusConfig(0, 1)))

	assert.Equal(t, []string{
		simbus.MethodReset,
		simbus.MethodSetClockStretching,
		simbus.MethodSetClockRate,
		simbus.MethodAssignSCL,
		simbus.MethodAssignSDA,
		simbus.MethodClear,
		simbus.MethodWrite,
	}, bus.Methods())

	probe := bus.Calls()[6]
	assert.Equal(t, byte(0x00), probe.Wire)
	assert.Empty(t, probe.Data)

	assert.Equal(t, StateReady, h.State())
	assert.Equal(t, 100000.0, bus.ClockRate())
	assert.True(t, bus.ClockStretching())
}

func TestOpenAppliesConfig(t *testing.T) {
	bus := mocks.NewMockBus(t)
	bus.EXPECT().Reset(mock.Anything).Return(nil).Once()
	bus.EXPECT().SetClockStretching(mock.Anything, false).Return(nil).Once()
	bus.EXPECT().SetClockRate(mock.Anything, 400000.0).Return(nil).Once()
	bus.EXPECT().AssignSCL(mock.Anything, 7).Return(nil).Once()
	bus.EXPECT().AssignSDA(mock.Anything, 6).Return(nil).Once()
	bus.EXPECT().Clear(mock.Anything).Return(1, nil).Once()
	bus.EXPECT().Write(mock.Anything, byte(0x00), []byte(nil)).Return(0, nil).Once()

	cfg := BusConfig{SDA: 6, SCL: 7, ClockRate: 400 * physic.KiloHertz, ClockStretching: false}

	h := New(bus)
	require.NoError(t, h.Open(context.Background(), cfg))
	assert.Equal(t, cfg, h.BusConfig())
}

func TestOpenProbeNAKLeavesHandleReady(t *testing.T) {
	bus := simbus.New()
	h := New(bus)

	err := h.Open(context.Background(), DefaultBusConfig(0, 1))

	var nak *protocol.NotAcknowledgedError
	require.ErrorAs(t, err, &nak)
	assert.Equal(t, 1, nak.Index)
	assert.True(t, nak.AddressNAK())
	assert.Equal(t, StateReady, h.State())
}

func TestOpenBusLockup(t *testing.T) {
	bus := simbus.New()
	bus.SetLocked(true)
	log := &recordLogger{}
	h := New(bus, WithLogger(log))

	err := h.Open(context.Background(), DefaultBusConfig(2, 3))

	assert.ErrorIs(t, err, ErrBusLockup)
	var lockup *BusLockupError
	require.ErrorAs(t, err, &lockup)
	assert.Equal(t, 2, lockup.SDA)
	assert.Equal(t, 3, lockup.SCL)

	assert.Equal(t, StateUnconfigured, h.State())
	assert.NotContains(t, bus.Methods(), simbus.MethodWrite, "probe must not run on a locked bus")
	assert.True(t, log.has("ERROR: bus lockup"))

	// fixed wiring: Open can be retried
	bus.SetLocked(false)
	err = h.Open(context.Background(), DefaultBusConfig(2, 3))
	assert.True(t, err == nil || protocol.IsNotAcknowledged(err))
	assert.Equal(t, StateReady, h.State())
}

func TestOpenHardwareFailure(t *testing.T) {
	methods := []struct {
		method string
		op     string
	}{
		{simbus.MethodReset, "open: reset"},
		{simbus.MethodSetClockStretching, "open: clock stretching"},
		{simbus.MethodSetClockRate, "open: clock rate"},
		{simbus.MethodAssignSCL, "open: assign scl"},
		{simbus.MethodAssignSDA, "open: assign sda"},
		{simbus.MethodClear, "open: clear"},
		{simbus.MethodWrite, "open: probe"},
	}

	for _, tt := range methods {
		t.Run(tt.method, func(t *testing.T) {
			boom := errors.New("device disconnected")
			bus := simbus.New()
			bus.FailNext(tt.method, boom)
			h := New(bus)

			err := h.Open(context.Background(), DefaultBusConfig(0, 1))

			assert.ErrorIs(t, err, ErrCommunication)
			assert.ErrorIs(t, err, boom)
			var commErr *CommunicationError
			require.ErrorAs(t, err, &commErr)
			assert.Equal(t, tt.op, commErr.Op)
			assert.Equal(t, StateUnconfigured, h.State())
		})
	}
}

func TestOpenConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   BusConfig
		field string
	}{
		{"same pin", DefaultBusConfig(1, 1), "scl"},
		{"negative sda", DefaultBusConfig(-1, 1), "sda"},
		{"negative scl", DefaultBusConfig(0, -2), "scl"},
		{"sda out of range", DefaultBusConfig(16, 1), "sda"},
		{"scl out of range", DefaultBusConfig(0, 99), "scl"},
		{"zero clock rate", BusConfig{SDA: 0, SCL: 1}, "clock_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := simbus.New()
			h := New(bus)

			err := h.Open(context.Background(), tt.cfg)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Empty(t, bus.Calls(), "no hardware call on an invalid config")
			assert.Equal(t, StateUnconfigured, h.State())
		})
	}
}

func TestOpenTimeout(t *testing.T) {
	bus := simbus.New(simbus.WithLatency(time.Second))
	h := New(bus, WithTimeout(20*time.Millisecond))

	start := time.Now()
	err := h.Open(context.Background(), DefaultBusConfig(0, 1))

	assert.ErrorIs(t, err, ErrCommunication)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, StateUnconfigured, h.State())
}

func TestOpenBlockedPrimitiveHonorsContext(t *testing.T) {
	bus := mocks.NewMockBus(t)
	bus.EXPECT().Reset(mock.Anything).Return(nil).Once()
	bus.EXPECT().SetClockStretching(mock.Anything, true).Return(nil).Once()
	bus.EXPECT().SetClockRate(mock.Anything, 100000.0).Return(nil).Once()
	bus.EXPECT().AssignSCL(mock.Anything, 1).Return(nil).Once()
	bus.EXPECT().AssignSDA(mock.Anything, 0).Return(nil).Once()
	bus.EXPECT().Clear(mock.Anything).RunAndReturn(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}).Once()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	h := New(bus)
	err := h.Open(ctx, DefaultBusConfig(0, 1))

	var commErr *CommunicationError
	require.ErrorAs(t, err, &commErr)
	assert.Equal(t, "open: clear", commErr.Op)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpenCanceledContext(t *testing.T) {
	bus := simbus.New()
	h := New(bus)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Open(ctx, DefaultBusConfig(0, 1))
	assert.ErrorIs(t, err, ErrCommunication)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bus.Calls())
}

func TestOpenTwiceIsIdempotent(t *testing.T) {
	bus := simbus.New(simbus.WithDevice(protocol.ProbeAddress, simbus.NewEcho()))
	h := New(bus)
	cfg := DefaultBusConfig(0, 1)

	require.NoError(t, h.Open(context.Background(), cfg))
	first := bus.Methods()
	bus.ResetCalls()

	require.NoError(t, h.Open(context.Background(), cfg))

	assert.Equal(t, first, bus.Methods())
	assert.Equal(t, StateReady, h.State())
	assert.Equal(t, cfg, h.BusConfig())
}

func TestFailedReopenClearsBusConfig(t *testing.T) {
	bus := simbus.New()
	h := openSim(t, bus)
	require.Equal(t, DefaultBusConfig(0, 1), h.BusConfig())

	bus.FailNext(simbus.MethodSetClockRate, errors.New("device disconnected"))
	err := h.Open(context.Background(), DefaultBusConfig(2, 3))

	assert.ErrorIs(t, err, ErrCommunication)
	assert.Equal(t, StateUnconfigured, h.State())
	assert.Equal(t, BusConfig{}, h.BusConfig())
}

func TestReopenStopsCapture(t *testing.T) {
	h := openSim(t, simbus.New())
	ctx := context.Background()

	require.NoError(t, h.SpyStart(ctx))
	_ = h.Open(ctx, DefaultBusConfig(0, 1))

	_, err := h.SpyPoll(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestClose(t *testing.T) {
	bus := simbus.New()
	h := openSim(t, bus)

	require.NoError(t, h.Close(context.Background()))

	assert.Equal(t, StateClosed, h.State())
	assert.Equal(t, []string{simbus.MethodReset}, bus.Methods())
}

func TestCloseResetFailure(t *testing.T) {
	bus := simbus.New()
	h := openSim(t, bus)
	bus.FailNext(simbus.MethodReset, errors.New("stalled"))

	err := h.Close(context.Background())

	assert.ErrorIs(t, err, ErrCommunication)
	assert.Equal(t, StateClosed, h.State())
}

func TestCloseUnconfigured(t *testing.T) {
	h := New(simbus.New())

	require.NoError(t, h.Close(context.Background()))
	assert.Equal(t, StateClosed, h.State())
}

func TestClosedHandleRejectsEverything(t *testing.T) {
	bus := simbus.New()
	h := openSim(t, bus)
	ctx := context.Background()
	require.NoError(t, h.Close(ctx))
	bus.ResetCalls()

	calls := map[string]func() error{
		"open":      func() error { return h.Open(ctx, DefaultBusConfig(0, 1)) },
		"close":     func() error { return h.Close(ctx) },
		"write":     func() error { return h.Write(ctx, 0x48, protocol.Byte(1)) },
		"read":      func() error { _, err := h.Read(ctx, 0x48, 1); return err },
		"exchange":  func() error { _, err := h.Exchange(ctx, 0x48, protocol.Byte(1), 1); return err },
		"spy start": func() error { return h.SpyStart(ctx) },
		"spy poll":  func() error { _, err := h.SpyPoll(ctx, 16); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()

			assert.ErrorIs(t, err, ErrInvalidState)
			var stateErr *InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, StateClosed, stateErr.State)
		})
	}

	assert.Empty(t, bus.Calls(), "no hardware call after close")
}

func TestUnconfiguredHandleRejectsTransfers(t *testing.T) {
	h := New(simbus.New())

	err := h.Write(context.Background(), 0x48, protocol.Byte(1))

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateUnconfigured, stateErr.State)
	assert.Equal(t, "write", stateErr.Op)
}

func TestEvents(t *testing.T) {
	var (
		mu     sync.Mutex
		events []Event
	)
	record := func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	bus := simbus.New(simbus.WithDevice(0x50, simbus.NewEcho()))
	h := openSim(t, bus, WithEventCallback(record))
	ctx := context.Background()

	require.NoError(t, h.Write(ctx, 0x50, protocol.Bytes(0xAB)))
	require.NoError(t, h.Close(ctx))

	require.Len(t, events, 3)
	assert.Equal(t, EventOpen, events[0].Kind)
	assert.True(t, protocol.IsNotAcknowledged(events[0].Err), "probe NAK is reported")

	assert.Equal(t, EventTransfer, events[1].Kind)
	assert.Equal(t, "write", events[1].Op)
	assert.Equal(t, protocol.Address(0x50), events[1].Address)
	assert.Equal(t, []byte{0xAB}, events[1].Written)
	assert.True(t, events[1].Outcome.Ack.Acknowledged())

	assert.Equal(t, EventClose, events[2].Kind)

	for i, e := range events {
		assert.Equal(t, h.ID(), e.Session, fmt.Sprintf("event %d session", i))
		assert.False(t, e.Time.IsZero())
	}
}

func TestLogging(t *testing.T) {
	log := &recordLogger{}
	bus := simbus.New()
	h := openSim(t, bus, WithLogger(log))
	bus.FailNext(simbus.MethodRead, errors.New("boom"))

	_, err := h.Read(context.Background(), 0x48, 1)
	require.Error(t, err)

	assert.True(t, log.has("INFO: bus opened"))
	assert.True(t, log.has("ERROR: hardware call failed"))
}
