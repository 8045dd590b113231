package protocol

// SpyFrame is the raw result of one capture poll, as reported by the hardware.
type SpyFrame struct {
	// Start is the start indicator (0 none, 1 start, 2 restart)
	Start int

	// Stop is nonzero when a stop condition was seen
	Stop int

	// Data is the captured byte window
	Data []byte

	// NAK is the 1-based index of the first unacknowledged byte, 0 if none
	NAK int
}

// DecodeSpy turns a raw capture into a SpyMessage.
//
// It returns (nil, nil) when no start condition was observed. When the frame
// carries a NAK indicator the decoded message is returned together with a
// *NotAcknowledgedError, so callers see both the traffic and the rejection.
//
// The message Data keeps the address byte at index 0.
//
// Example:
//
//	msg, err := protocol.DecodeSpy(protocol.SpyFrame{Start: 1, Data: []byte{0x91, 0x12}})
//	// msg.Address == 0x48, msg.Direction == protocol.Read
func DecodeSpy(frame SpyFrame) (*SpyMessage, error) {
	if frame.Start == SpyStartNone {
		return nil, nil
	}

	msg := &SpyMessage{
		Start:    decodeStart(frame.Start),
		RawStart: frame.Start,
		Data:     append([]byte{}, frame.Data...),
		Stop:     frame.Stop != 0,
	}

	if len(frame.Data) > 0 {
		msg.HasAddress = true
		msg.Address, msg.Direction = SplitWireByte(frame.Data[0])
	}

	if frame.NAK != NAKNone {
		return msg, &NotAcknowledgedError{
			Operation: "spy",
			Address:   msg.Address,
			Index:     frame.NAK,
		}
	}

	return msg, nil
}

// decodeStart maps the hardware start code; codes other than 2 that are
// nonzero are reported as a plain start.
func decodeStart(code int) StartKind {
	switch code {
	case SpyStartNone:
		return StartNone
	case SpyRestartCondition:
		return Restart
	default:
		return Start
	}
}
