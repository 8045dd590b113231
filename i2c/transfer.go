package i2c

import (
	"context"
	"fmt"

	"github.com/moffa90/go-i2cm/hal"
	"github.com/moffa90/go-i2cm/protocol"
)

type transferOp int

const (
	opWrite transferOp = iota
	opRead
	opExchange
)

func (op transferOp) String() string {
	switch op {
	case opRead:
		return "read"
	case opExchange:
		return "exchange"
	default:
		return "write"
	}
}

// Write sends payload to addr.
// If any byte (address or data) is rejected, it returns *protocol.NotAcknowledgedError
// whose Index identifies the first rejected byte, the address byte being 1.
//
// Example:
//
//	err := h.Write(ctx, 0x4B, protocol.Ints(0x03, 0x80))
func (h *Handle) Write(ctx context.Context, addr protocol.Address, payload protocol.Payload) error {
	data, err := payload.Encode()
	if err != nil {
		return fmt.Errorf("write %s: %w", addr, err)
	}

	_, err = h.transfer(ctx, opWrite, addr, data, 0)
	return err
}

// Read receives count bytes from addr.
// On a NAK the bytes captured so far are returned together with the
// *protocol.NotAcknowledgedError; a failed read does not imply empty data.
//
// Example:
//
//	raw, err := h.Read(ctx, 0x4B, 2)
func (h *Handle) Read(ctx context.Context, addr protocol.Address, count int) ([]byte, error) {
	outcome, err := h.transfer(ctx, opRead, addr, nil, count)
	return outcome.Data, err
}

// Exchange writes payload to addr, then reads count bytes after a repeated
// start, in a single bus transaction. It has the same partial-data semantics as Read.
//
// Example:
//
//	// set the register pointer to 0x00, then read two bytes
//	raw, err := h.Exchange(ctx, 0x4B, protocol.Byte(0x00), 2)
func (h *Handle) Exchange(ctx context.Context, addr protocol.Address, payload protocol.Payload, count int) ([]byte, error) {
	data, err := payload.Encode()
	if err != nil {
		return nil, fmt.Errorf("exchange %s: %w", addr, err)
	}

	outcome, err := h.transfer(ctx, opExchange, addr, data, count)
	return outcome.Data, err
}

// Transfer writes w and then reads count bytes from addr, returning the full
// outcome. With count == 0 it is a plain write, with an empty w a plain read,
// otherwise an exchange. The error is *protocol.NotAcknowledgedError exactly
// when Outcome.Ack is not acknowledged.
func (h *Handle) Transfer(ctx context.Context, addr protocol.Address, w []byte, count int) (protocol.TransferOutcome, error) {
	op := opExchange
	switch {
	case count == 0:
		op = opWrite
	case len(w) == 0:
		op = opRead
	}
	return h.transfer(ctx, op, addr, w, count)
}

func (h *Handle) transfer(ctx context.Context, op transferOp, addr protocol.Address, out []byte, count int) (protocol.TransferOutcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := op.String()
	if err := h.checkReady(name); err != nil {
		return protocol.TransferOutcome{}, err
	}
	if !addr.Valid() {
		return protocol.TransferOutcome{}, fmt.Errorf("%s: %w", name, &protocol.AddressRangeError{Value: int(addr)})
	}
	if count < 0 {
		return protocol.TransferOutcome{}, fmt.Errorf("%s %s: count must not be negative, got %d", name, addr, count)
	}

	ctx, cancel := h.opContext(ctx)
	defer cancel()

	var result hal.ReadResult
	err := h.call(ctx, name, func() (err error) {
		switch op {
		case opRead:
			result, err = h.bus.Read(ctx, addr.WireByte(protocol.Read), count)
		case opExchange:
			result, err = h.bus.WriteRead(ctx, addr.WireByte(protocol.Write), out, count)
		default:
			result.NAK, err = h.bus.Write(ctx, addr.WireByte(protocol.Write), out)
		}
		return err
	})
	if err != nil {
		return protocol.TransferOutcome{}, err
	}

	data := result.Data
	if len(data) > count {
		data = data[:count]
	}
	outcome := protocol.TransferOutcome{
		Data: data,
		Ack:  protocol.DecodeAck(result.NAK),
	}
	nakErr := outcome.Ack.Err(name, addr)

	h.logDebug("transfer",
		"session", h.id.String(),
		"op", name,
		"address", addr.String(),
		"written", len(out),
		"read", len(outcome.Data),
		"ack", outcome.Ack.String(),
	)

	h.emit(Event{
		Kind:    EventTransfer,
		Op:      name,
		Address: addr,
		Written: append([]byte(nil), out...),
		Outcome: outcome,
		Err:     nakErr,
	})

	return outcome, nakErr
}
