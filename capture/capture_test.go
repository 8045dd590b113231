package capture

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-i2cm/hal"
	"github.com/moffa90/go-i2cm/i2c"
	"github.com/moffa90/go-i2cm/protocol"
	"github.com/moffa90/go-i2cm/simbus"
)

func TestEncodeDecodeRecord(t *testing.T) {
	rec := Record{
		Timestamp: time.Date(2026, 10, 19, 8, 30, 0, 123456789, time.UTC),
		Session:   uuid.New(),
		Kind:      KindSpy,
		Op:        "spy",
		Address:   0x48,
		Direction: protocol.Read,
		Start:     protocol.Restart,
		Stop:      true,
		Data:      []byte{0x91, 0x12},
		NAK:       2,
		Error:     "spy 0x48: NAK: index 2",
	}

	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	got, err := DecodeRecord(data)
	require.NoError(t, err)

	assert.True(t, rec.Timestamp.Equal(got.Timestamp), "nanosecond timestamp survives")
	got.Timestamp = rec.Timestamp
	assert.Equal(t, rec, got)
}

func TestDecodeRecordGarbage(t *testing.T) {
	_, err := DecodeRecord([]byte{0xFF, 0x00})
	assert.Error(t, err)
}

func TestFromEvent(t *testing.T) {
	session := uuid.New()
	now := time.Now()

	tests := []struct {
		name  string
		event i2c.Event
		want  Record
	}{
		{
			name:  "open",
			event: i2c.Event{Kind: i2c.EventOpen, Session: session, Time: now, Op: "open"},
			want:  Record{Kind: KindLifecycle, Session: session, Timestamp: now, Op: "open"},
		},
		{
			name: "read with nak",
			event: i2c.Event{
				Kind: i2c.EventTransfer, Session: session, Time: now, Op: "read", Address: 0x4B,
				Outcome: protocol.TransferOutcome{Data: []byte{0x0C}, Ack: protocol.AckStatus{NAKIndex: 2}},
				Err:     errors.New("read 0x4B: NAK: index 2"),
			},
			want: Record{
				Kind: KindTransfer, Session: session, Timestamp: now, Op: "read", Address: 0x4B,
				Direction: protocol.Read, Data: []byte{0x0C}, NAK: 2, Error: "read 0x4B: NAK: index 2",
			},
		},
		{
			name: "write",
			event: i2c.Event{
				Kind: i2c.EventTransfer, Session: session, Time: now, Op: "write", Address: 0x4B,
				Written: []byte{0x03, 0x80},
			},
			want: Record{
				Kind: KindTransfer, Session: session, Timestamp: now, Op: "write", Address: 0x4B,
				Direction: protocol.Write, Written: []byte{0x03, 0x80},
			},
		},
		{
			name: "spy",
			event: i2c.Event{
				Kind: i2c.EventSpy, Session: session, Time: now, Op: "spy", Address: 0x48,
				Message: &protocol.SpyMessage{
					Start: protocol.Start, RawStart: 1, HasAddress: true, Address: 0x48,
					Direction: protocol.Read, Data: []byte{0x91, 0x01}, Stop: true,
				},
			},
			want: Record{
				Kind: KindSpy, Session: session, Timestamp: now, Op: "spy", Address: 0x48,
				Direction: protocol.Read, Start: protocol.Start, Stop: true, Data: []byte{0x91, 0x01},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromEvent(tt.event))
		})
	}
}

func TestFileRecorderWithHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus.i2clog")

	rec, err := NewFileRecorder(path)
	require.NoError(t, err)

	bus := simbus.New(simbus.WithDevice(0x4B, simbus.NewTMP2(25)))
	h := i2c.New(bus, i2c.WithEventCallback(rec.Observe))
	ctx := context.Background()

	_ = h.Open(ctx, i2c.DefaultBusConfig(0, 1))
	require.NoError(t, h.Write(ctx, 0x4B, protocol.Ints(0x03, 0x80)))
	require.NoError(t, h.Write(ctx, 0x4B, protocol.Bytes()))
	_, err = h.Read(ctx, 0x4B, 2)
	require.NoError(t, err)
	require.NoError(t, h.SpyStart(ctx))
	bus.Inject(hal.SpyStatus{Start: 1, Stop: 1, Data: []byte{0x90, 0x41}})
	_, err = h.SpyPoll(ctx, 16)
	require.NoError(t, err)
	require.NoError(t, h.Close(ctx))

	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close(), "close is idempotent")

	r, err := Open(path, Filter{})
	require.NoError(t, err)
	defer r.Close()

	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)

	kinds := make([]Kind, len(records))
	for i, rec := range records {
		kinds[i] = rec.Kind
		assert.Equal(t, h.ID(), rec.Session)
	}
	assert.Equal(t, []Kind{KindLifecycle, KindTransfer, KindTransfer, KindTransfer, KindSpy, KindLifecycle}, kinds)

	assert.Equal(t, []byte{0x0C, 0x80}, records[3].Data)
	assert.Equal(t, protocol.Address(0x48), records[4].Address)
}

func TestFileRecorderAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus.i2clog")

	for i := 0; i < 2; i++ {
		rec, err := NewFileRecorder(path)
		require.NoError(t, err)
		require.NoError(t, rec.Record(Record{Kind: KindTransfer, Op: "write", Address: protocol.Address(0x10 + i)}))
		require.NoError(t, rec.Close())
		assert.NoError(t, rec.Record(Record{}), "records after close are dropped")
	}

	r, err := Open(path, Filter{})
	require.NoError(t, err)
	defer r.Close()

	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestReaderFilter(t *testing.T) {
	sessionA := uuid.New()
	sessionB := uuid.New()
	all := []Record{
		{Session: sessionA, Kind: KindLifecycle, Op: "open"},
		{Session: sessionA, Kind: KindTransfer, Op: "write", Address: 0x48},
		{Session: sessionA, Kind: KindTransfer, Op: "read", Address: 0x4B, NAK: 1},
		{Session: sessionB, Kind: KindSpy, Op: "spy", Address: 0x48},
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, rec := range all {
		require.NoError(t, enc.Encode(rec))
	}

	transfer := KindTransfer
	addr := protocol.Address(0x48)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"open", "write", "read", "spy"}},
		{"kind", Filter{Kind: &transfer}, []string{"write", "read"}},
		{"address", Filter{Address: &addr}, []string{"write", "spy"}},
		{"session", Filter{Session: sessionB}, []string{"spy"}},
		{"nak only", Filter{NAKOnly: true}, []string{"read"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(buf.Bytes()), tt.filter)

			var ops []string
			for {
				rec, err := r.Next()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				ops = append(ops, rec.Op)
			}
			assert.Equal(t, tt.want, ops)
			assert.NoError(t, r.Close())
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), Filter{})
	assert.True(t, os.IsNotExist(err))
}

func TestFormat(t *testing.T) {
	session := uuid.MustParse("1a2b3c4d-0000-4000-8000-000000000000")
	ts := time.Date(2026, 10, 19, 15, 4, 5, 120000, time.UTC)

	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			"write",
			Record{Timestamp: ts, Session: session, Kind: KindTransfer, Op: "write", Address: 0x4B, Written: []byte{0x03, 0x80}},
			"15:04:05.000120 1a2b3c4d write    0x4B W out=[03 80] ACK",
		},
		{
			"read nak",
			Record{Timestamp: ts, Session: session, Kind: KindTransfer, Op: "read", Address: 0x4B, Direction: protocol.Read, NAK: 1},
			"15:04:05.000120 1a2b3c4d read     0x4B R in=[] NAK@1",
		},
		{
			"spy",
			Record{Timestamp: ts, Session: session, Kind: KindSpy, Op: "spy", Address: 0x48, Direction: protocol.Read, Start: protocol.Start, Stop: true, Data: []byte{0x91, 0x0C, 0x80}, NAK: 3},
			"15:04:05.000120 1a2b3c4d spy      0x48 R Start [91 0C 80] stop NAK@3",
		},
		{
			"lifecycle",
			Record{Timestamp: ts, Session: session, Kind: KindLifecycle, Op: "close"},
			"15:04:05.000120 1a2b3c4d close   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.rec))
		})
	}
}

func TestSummary(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	var s Summary
	s.Add(Record{Timestamp: start, Kind: KindLifecycle})
	s.Add(Record{Timestamp: start.Add(time.Second), Kind: KindTransfer, NAK: 1})
	s.Add(Record{Timestamp: start.Add(2 * time.Second), Kind: KindSpy})

	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 1, s.NAKs)
	assert.True(t, strings.HasPrefix(s.String(), "3 records (1 transfers, 1 spy), 1 NAK, 2s"))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("spy")
	assert.True(t, ok)
	assert.Equal(t, KindSpy, k)

	_, ok = ParseKind("bogus")
	assert.False(t, ok)
}
