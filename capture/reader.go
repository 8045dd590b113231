package capture

import (
	"errors"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/moffa90/go-i2cm/protocol"
)

// Filter specifies criteria for selecting records.
// Empty/nil fields match all records for that criterion.
type Filter struct {
	// Kind filters by record kind.
	Kind *Kind

	// Address filters by slave address.
	Address *protocol.Address

	// Session filters by handle session; uuid.Nil matches every session.
	Session uuid.UUID

	// NAKOnly keeps only records that carry a NAK.
	NAKOnly bool
}

// Matches returns true if r matches all filter criteria.
func (f *Filter) Matches(r Record) bool {
	if f.Kind != nil && r.Kind != *f.Kind {
		return false
	}
	if f.Address != nil && r.Address != *f.Address {
		return false
	}
	if f.Session != uuid.Nil && r.Session != f.Session {
		return false
	}
	if f.NAKOnly && r.NAK == protocol.NAKNone {
		return false
	}
	return true
}

// Reader reads records from a CBOR capture stream.
type Reader struct {
	closer  io.Closer
	decoder *cbor.Decoder
	filter  Filter
}

// Open creates a Reader over the capture file at path.
func Open(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f, filter)
	r.closer = f
	return r, nil
}

// NewReader creates a Reader over an already open stream.
func NewReader(r io.Reader, filter Filter) *Reader {
	return &Reader{
		decoder: NewDecoder(r),
		filter:  filter,
	}
}

// Next returns the next record that matches the filter.
// Returns io.EOF when no more records are available.
func (r *Reader) Next() (Record, error) {
	for {
		var rec Record
		if err := r.decoder.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, err
		}

		if r.filter.Matches(rec) {
			return rec, nil
		}
	}
}

// ReadAll returns every remaining record that matches the filter.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// Close closes the underlying file, if the Reader opened one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
