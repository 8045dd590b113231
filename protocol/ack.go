package protocol

// DecodeAck converts a hardware NAK indicator into an AckStatus.
// Any nonzero indicator is a NAK and is kept as reported.
func DecodeAck(indicator int) AckStatus {
	if indicator == NAKNone {
		return AckStatus{}
	}
	return AckStatus{NAKIndex: indicator}
}

// Err returns a *NotAcknowledgedError for a NAK status, or nil when acknowledged.
func (s AckStatus) Err(operation string, addr Address) error {
	if s.Acknowledged() {
		return nil
	}
	return &NotAcknowledgedError{
		Operation: operation,
		Address:   addr,
		Index:     s.NAKIndex,
	}
}
