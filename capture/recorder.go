package capture

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/moffa90/go-i2cm/i2c"
)

// FileRecorder appends records to a capture file.
// It is safe for concurrent use from multiple goroutines.
type FileRecorder struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewFileRecorder opens path for appending, creating it with permissions
// 0644 if it doesn't exist.
func NewFileRecorder(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileRecorder{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Record writes r to the file. Records written after Close are dropped.
func (fr *FileRecorder) Record(r Record) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return nil
	}
	return fr.encoder.Encode(r)
}

// Observe records a handle event. Its signature matches i2c.EventCallback.
// Encoding errors are dropped so that recording never disturbs the bus.
func (fr *FileRecorder) Observe(e i2c.Event) {
	_ = fr.Record(FromEvent(e))
}

// Close closes the capture file. It is safe to call Close multiple times.
func (fr *FileRecorder) Close() error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return nil
	}

	fr.closed = true
	return fr.file.Close()
}

// Compile-time check that Observe can be installed with i2c.WithEventCallback.
var _ i2c.EventCallback = (*FileRecorder)(nil).Observe
