package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestPayloadEncode(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    []byte
		wantErr bool
	}{
		{
			name:    "empty payload",
			payload: Payload{},
			want:    []byte{},
		},
		{
			name:    "single byte",
			payload: Byte(0x41),
			want:    []byte{0x41},
		},
		{
			name:    "byte sequence",
			payload: Bytes(0x03, 0x80),
			want:    []byte{0x03, 0x80},
		},
		{
			name:    "integer sequence",
			payload: Ints(0x1B, 0x5B, 0x6A),
			want:    []byte{0x1B, 0x5B, 0x6A},
		},
		{
			name:    "text",
			payload: Text("Temp: "),
			want:    []byte{'T', 'e', 'm', 'p', ':', ' '},
		},
		{
			name:    "latin-1 text maps code points directly",
			payload: Text("ßC"),
			want:    []byte{0xDF, 0x43},
		},
		{
			name:    "empty text",
			payload: Text(""),
			want:    []byte{},
		},
		{
			name:    "integer above 255",
			payload: Ints(0x10, 0x100),
			wantErr: true,
		},
		{
			name:    "negative integer",
			payload: Ints(-1),
			wantErr: true,
		},
		{
			name:    "code point above 255",
			payload: Text("A€"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.payload.Encode()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %X", got)
				}
				var rangeErr *PayloadRangeError
				if !errors.As(err, &rangeErr) {
					t.Errorf("error type = %T, want *PayloadRangeError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestPayloadNormalizationIsIdentical(t *testing.T) {
	forms := []Payload{Byte(65), Ints(65), Bytes(65), Text("A")}

	for _, p := range forms {
		got, err := p.Encode()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if !bytes.Equal(got, []byte{0x41}) {
			t.Errorf("%s: Encode() = % X, want 41", p, got)
		}
	}
}

func TestPayloadRangeErrorPosition(t *testing.T) {
	_, err := Text("abĀc").Encode()

	var rangeErr *PayloadRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want *PayloadRangeError", err)
	}
	if rangeErr.Index != 2 {
		t.Errorf("Index = %d, want 2", rangeErr.Index)
	}
	if rangeErr.Value != 0x100 {
		t.Errorf("Value = 0x%X, want 0x100", rangeErr.Value)
	}
}

func TestBytesCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	p := Bytes(src...)
	src[0] = 0xFF

	got, _ := p.Encode()
	if got[0] != 1 {
		t.Errorf("payload aliases caller slice: got % X", got)
	}
}

func TestPayloadLen(t *testing.T) {
	tests := []struct {
		payload Payload
		want    int
	}{
		{Payload{}, 0},
		{Byte(1), 1},
		{Bytes(1, 2), 2},
		{Ints(1, 2, 3), 3},
		{Text("été"), 3},
	}

	for _, tt := range tests {
		if got := tt.payload.Len(); got != tt.want {
			t.Errorf("%s.Len() = %d, want %d", tt.payload, got, tt.want)
		}
	}
}
