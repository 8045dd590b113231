package simbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-i2cm/hal"
	"github.com/moffa90/go-i2cm/protocol"
)

func TestBusNAKIndicators(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		addr    protocol.Address
		data    []byte
		wantNAK int
	}{
		{"absent device", 0x20, []byte{0x01}, 1},
		{"absent device empty write", 0x20, nil, 1},
		{"all accepted", 0x50, []byte{0x01, 0x02, 0x03}, 0},
		{"second data byte rejected", 0x51, []byte{0x01, 0x02, 0x03}, 3},
		{"first data byte rejected", 0x52, []byte{0x01}, 2},
	}

	bus := New(
		WithDevice(0x50, NewEcho()),
		WithDevice(0x51, &NakAfter{Device: NewEcho(), N: 1}),
		WithDevice(0x52, &NakAfter{Device: NewEcho(), N: 0}),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nak, err := bus.Write(ctx, tt.addr.WireByte(protocol.Write), tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNAK, nak)
		})
	}
}

func TestBusReadPadsWithIdleLevel(t *testing.T) {
	ctx := context.Background()
	echo := NewEcho()
	bus := New(WithDevice(0x50, echo))

	_, err := bus.Write(ctx, protocol.Address(0x50).WireByte(protocol.Write), []byte{0xAA})
	require.NoError(t, err)

	result, err := bus.Read(ctx, protocol.Address(0x50).WireByte(protocol.Read), 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xFF, 0xFF}, result.Data)
	assert.Equal(t, 0, result.NAK)
}

func TestBusRejectsWrongDirection(t *testing.T) {
	ctx := context.Background()
	bus := New()

	_, err := bus.Write(ctx, 0x91, nil)
	assert.Error(t, err)

	_, err = bus.Read(ctx, 0x90, 1)
	assert.Error(t, err)

	_, err = bus.WriteRead(ctx, 0x91, nil, 1)
	assert.Error(t, err)
}

func TestBusWriteReadMemory(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(8, []byte{0x10, 0x11, 0x12, 0x13})
	bus := New(WithDevice(0x50, mem))

	result, err := bus.WriteRead(ctx, protocol.Address(0x50).WireByte(protocol.Write), []byte{0x02}, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x13}, result.Data)

	result, err = bus.WriteRead(ctx, protocol.Address(0x51).WireByte(protocol.Write), []byte{0x02}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NAK)
	assert.Empty(t, result.Data)
}

func TestBusLockup(t *testing.T) {
	ctx := context.Background()
	bus := New(WithDevice(0x50, NewEcho()))

	free, err := bus.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, free)

	bus.SetLocked(true)
	free, err = bus.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, free)

	nak, err := bus.Write(ctx, protocol.Address(0x50).WireByte(protocol.Write), []byte{1})
	require.NoError(t, err)
	assert.Equal(t, 1, nak)
}

func TestBusFailNext(t *testing.T) {
	ctx := context.Background()
	bus := New()
	boom := errors.New("usb disconnected")

	bus.FailNext(MethodClear, boom)

	_, err := bus.Clear(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = bus.Clear(ctx)
	assert.NoError(t, err, "failure is consumed by the first call")
}

func TestBusLatencyHonorsContext(t *testing.T) {
	bus := New(WithLatency(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := bus.Reset(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestBusPinAssignment(t *testing.T) {
	ctx := context.Background()
	bus := New(WithPins(4))

	assert.Equal(t, 4, bus.PinCount())
	require.NoError(t, bus.AssignSDA(ctx, 0))
	require.NoError(t, bus.AssignSCL(ctx, 3))
	assert.Error(t, bus.AssignSCL(ctx, 4))

	sda, scl := bus.Lines()
	assert.Equal(t, 0, sda)
	assert.Equal(t, 3, scl)
}

func TestBusSpyQueue(t *testing.T) {
	ctx := context.Background()
	bus := New(WithDevice(0x48, NewEcho()))

	_, err := bus.SpyStatus(ctx, 16)
	assert.ErrorIs(t, err, ErrNotCapturing)

	require.NoError(t, bus.SpyStart(ctx))

	status, err := bus.SpyStatus(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Start, "empty queue reports no start")

	bus.Inject(hal.SpyStatus{Start: 1, Stop: 1, Data: []byte{0x91, 0x01, 0x02, 0x03}})
	status, err = bus.SpyStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x91, 0x01}, status.Data)

	// own traffic is mirrored while capturing
	_, err = bus.WriteRead(ctx, 0x90, []byte{0x00}, 1)
	require.NoError(t, err)

	first, err := bus.SpyStatus(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, protocol.SpyStartCondition, first.Start)
	assert.Equal(t, 0, first.Stop)
	assert.Equal(t, []byte{0x90, 0x00}, first.Data)

	second, err := bus.SpyStatus(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, protocol.SpyRestartCondition, second.Start)
	assert.Equal(t, 1, second.Stop)
	assert.Equal(t, []byte{0x91, 0x00}, second.Data)

	require.NoError(t, bus.Reset(ctx))
	assert.False(t, bus.Capturing())
}

func TestBusCallLog(t *testing.T) {
	ctx := context.Background()
	bus := New()

	require.NoError(t, bus.Reset(ctx))
	require.NoError(t, bus.SetClockRate(ctx, 400e3))
	_, err := bus.Write(ctx, 0x00, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{MethodReset, MethodSetClockRate, MethodWrite}, bus.Methods())
	assert.Equal(t, 400e3, bus.ClockRate())

	calls := bus.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, byte(0x00), calls[2].Wire)

	bus.ResetCalls()
	assert.Empty(t, bus.Calls())
}
