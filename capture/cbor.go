package capture

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// recordEncMode is the CBOR encoder mode for records.
// Configured for nanosecond-precision timestamps and deterministic encoding.
var recordEncMode cbor.EncMode

// recordDecMode is the CBOR decoder mode for records.
var recordDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	recordEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	recordDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR decoder mode: %v", err))
	}
}

// EncodeRecord encodes a Record to CBOR bytes.
func EncodeRecord(r Record) ([]byte, error) {
	return recordEncMode.Marshal(r)
}

// DecodeRecord decodes CBOR bytes into a Record.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if err := recordDecMode.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// NewEncoder creates a CBOR encoder for records that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return recordEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for records that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return recordDecMode.NewDecoder(r)
}
