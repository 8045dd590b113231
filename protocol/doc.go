// Package protocol implements the I2C wire rules used by the master driver.
//
// It is pure: nothing here touches hardware. The i2c package drives a bus and
// uses these helpers to encode what it sends and decode what it gets back.
//
// # Addresses
//
// Slave addresses are 7-bit values. The byte on the wire carries the address in
// bits 7..1 and the direction in bit 0:
//
//	wire := protocol.Address(0x48).WireByte(protocol.Read) // 0x91
//	addr, dir := protocol.SplitWireByte(0x91)             // 0x48, Read
//
// # Payloads
//
// Payload is a tagged union of the representations callers use for outbound
// data. Encode normalizes every form to the same bytes and rejects values that
// do not fit in a byte instead of truncating them:
//
//	protocol.Byte(65).Encode()   // [0x41]
//	protocol.Ints(65).Encode()   // [0x41]
//	protocol.Text("A").Encode()  // [0x41]
//	protocol.Text("é€").Encode() // *PayloadRangeError (U+20AC > 0xFF)
//
// # Acknowledgment
//
// The hardware reports a NAK indicator per transaction: 0 when every byte was
// acknowledged, otherwise the 1-based index of the first rejected byte, the
// address byte being byte 1. DecodeAck and AckStatus.Err turn it into a
// *NotAcknowledgedError:
//
//	if err := protocol.DecodeAck(nak).Err("write", addr); err != nil {
//	    // errors.Is(err, protocol.ErrNotAcknowledged)
//	}
//
// # Bus spy
//
// DecodeSpy decodes one raw capture poll into a SpyMessage. The message Data
// keeps the address byte at index 0, matching what the capture hardware
// delivers; SpyMessage.Payload returns the bytes after it.
package protocol
