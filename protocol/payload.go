package protocol

import "fmt"

type payloadKind uint8

const (
	kindEmpty payloadKind = iota
	kindByte
	kindBytes
	kindInts
	kindText
)

// Payload is data to transmit in a write or exchange. It is built with
// Byte, Bytes, Ints or Text and normalized to bytes by Encode.
//
// The zero Payload is empty and encodes to no bytes.
//
// Example:
//
//	protocol.Byte(0x41)         // [0x41]
//	protocol.Ints(0x03, 0x80)   // [0x03 0x80]
//	protocol.Text("A")          // [0x41]
type Payload struct {
	kind  payloadKind
	b     byte
	bytes []byte
	ints  []int
	text  string
}

// Byte returns a one-byte payload.
func Byte(b byte) Payload {
	return Payload{kind: kindByte, b: b}
}

// Bytes returns a payload transmitted as-is. The slice is copied.
func Bytes(b ...byte) Payload {
	return Payload{kind: kindBytes, bytes: append([]byte(nil), b...)}
}

// Ints returns a payload of integer values, each of which must be 0-255.
// Range is checked by Encode.
func Ints(v ...int) Payload {
	return Payload{kind: kindInts, ints: append([]int(nil), v...)}
}

// Text returns a payload whose characters are sent as bytes equal to their
// code points. Characters above U+00FF are rejected by Encode.
func Text(s string) Payload {
	return Payload{kind: kindText, text: s}
}

// Encode normalizes the payload to the byte sequence placed on the bus.
func (p Payload) Encode() ([]byte, error) {
	switch p.kind {
	case kindEmpty:
		return []byte{}, nil

	case kindByte:
		return []byte{p.b}, nil

	case kindBytes:
		return append([]byte{}, p.bytes...), nil

	case kindInts:
		out := make([]byte, len(p.ints))
		for i, v := range p.ints {
			if v < 0 || v > MaxPayloadValue {
				return nil, &PayloadRangeError{Index: i, Value: v}
			}
			out[i] = byte(v)
		}
		return out, nil

	case kindText:
		out := make([]byte, 0, len(p.text))
		i := 0
		for _, r := range p.text {
			if r < 0 || r > MaxPayloadValue {
				return nil, &PayloadRangeError{Index: i, Value: int(r)}
			}
			out = append(out, byte(r))
			i++
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown payload kind %d", p.kind)
	}
}

// Len returns the number of elements in the payload, before encoding.
func (p Payload) Len() int {
	switch p.kind {
	case kindByte:
		return 1
	case kindBytes:
		return len(p.bytes)
	case kindInts:
		return len(p.ints)
	case kindText:
		return len([]rune(p.text))
	default:
		return 0
	}
}

// String describes the payload for logs.
func (p Payload) String() string {
	switch p.kind {
	case kindByte:
		return fmt.Sprintf("byte(0x%02X)", p.b)
	case kindBytes:
		return fmt.Sprintf("bytes(% X)", p.bytes)
	case kindInts:
		return fmt.Sprintf("ints(%v)", p.ints)
	case kindText:
		return fmt.Sprintf("text(%q)", p.text)
	default:
		return "empty"
	}
}
