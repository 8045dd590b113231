package i2c

import (
	"context"
	"errors"
	"time"

	"github.com/moffa90/go-i2cm/hal"
	"github.com/moffa90/go-i2cm/protocol"
)

// SpyStart puts the bus into passive capture mode. The master stops driving
// the bus; SpyPoll then reports the traffic of other masters. Capture lasts
// until Close or the next Open.
func (h *Handle) SpyStart(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkReady("spy start"); err != nil {
		return err
	}

	ctx, cancel := h.opContext(ctx)
	defer cancel()

	if err := h.call(ctx, "spy start", func() error { return h.bus.SpyStart(ctx) }); err != nil {
		return err
	}

	h.spying = true
	h.logDebug("spy started", "session", h.id.String())
	return nil
}

// SpyPoll reads what was captured since the previous poll and decodes it.
// maxBytes caps the capture window; values <= 0 use the configured buffer size.
//
// It returns (nil, nil) when no start condition was seen. A capture that
// carries a NAK returns the decoded message together with a
// *protocol.NotAcknowledgedError. A failed capture returns *CommunicationError.
//
// Example:
//
//	for {
//	    msg, err := h.SpyPoll(ctx, 16)
//	    if errors.Is(err, i2c.ErrCommunication) {
//	        return err
//	    }
//	    if msg != nil {
//	        fmt.Printf("%s %s %s % X\n", msg.Start, msg.Address, msg.Direction, msg.Payload())
//	    }
//	}
func (h *Handle) SpyPoll(ctx context.Context, maxBytes int) (*protocol.SpyMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkReady("spy poll"); err != nil {
		return nil, err
	}
	if !h.spying {
		return nil, &InvalidStateError{Op: "spy poll", State: h.state, Reason: "capture not started"}
	}
	if maxBytes <= 0 {
		maxBytes = h.config.SpyBufferSize
	}

	ctx, cancel := h.opContext(ctx)
	defer cancel()

	var status hal.SpyStatus
	err := h.call(ctx, "spy poll", func() (err error) {
		status, err = h.bus.SpyStatus(ctx, maxBytes)
		return err
	})
	if err != nil {
		return nil, err
	}

	data := status.Data
	if len(data) > maxBytes {
		data = data[:maxBytes]
	}

	msg, nakErr := protocol.DecodeSpy(protocol.SpyFrame{
		Start: status.Start,
		Stop:  status.Stop,
		Data:  data,
		NAK:   status.NAK,
	})
	if msg == nil {
		return nil, nakErr
	}

	if msg.RawStart != protocol.SpyStartCondition && msg.RawStart != protocol.SpyRestartCondition {
		h.logDebug("unrecognized start code decoded as start", "session", h.id.String(), "code", msg.RawStart)
	}

	h.emit(Event{
		Kind:    EventSpy,
		Op:      "spy",
		Address: msg.Address,
		Outcome: protocol.TransferOutcome{Data: msg.Data, Ack: protocol.DecodeAck(status.NAK)},
		Message: msg,
		Err:     nakErr,
	})

	return msg, nakErr
}

// DefaultPollInterval is the Monitor polling period when none is given.
const DefaultPollInterval = 10 * time.Millisecond

// Monitor repeatedly polls a handle in capture mode.
type Monitor struct {
	handle   *Handle
	interval time.Duration
	maxBytes int
}

// NewMonitor creates a Monitor polling h every interval for up to maxBytes
// per message. Non-positive values select DefaultPollInterval and the
// handle's spy buffer size.
func NewMonitor(h *Handle, interval time.Duration, maxBytes int) *Monitor {
	if h == nil {
		panic("handle cannot be nil")
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{
		handle:   h,
		interval: interval,
		maxBytes: maxBytes,
	}
}

// Run starts capture and polls until ctx is done or fn returns false.
// fn receives every decoded message, including those that carry a NAK error.
// Run returns nil when fn stops it, ctx.Err() when the context ends, and the
// error itself for anything other than a NAK.
//
// Example:
//
//	mon := i2c.NewMonitor(h, 10*time.Millisecond, 16)
//	err := mon.Run(ctx, func(msg *protocol.SpyMessage, err error) bool {
//	    fmt.Println(msg.Address, msg.Direction, err)
//	    return true
//	})
func (m *Monitor) Run(ctx context.Context, fn func(*protocol.SpyMessage, error) bool) error {
	if err := m.handle.SpyStart(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := m.handle.SpyPoll(ctx, m.maxBytes)
		if err != nil && !errors.Is(err, protocol.ErrNotAcknowledged) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if msg != nil || err != nil {
			if !fn(msg, err) {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
