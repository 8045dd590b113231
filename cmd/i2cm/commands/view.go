package commands

import (
	"fmt"
	"io"

	"github.com/moffa90/go-i2cm/capture"
	"github.com/moffa90/go-i2cm/protocol"
)

// RunView prints every record of the capture file at path that matches
// filter, followed by a summary line.
func RunView(path string, filter capture.Filter, output io.Writer) error {
	reader, err := capture.Open(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	var summary capture.Summary
	for {
		r, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}

		fmt.Fprintln(output, capture.Format(r))
		summary.Add(r)
	}

	fmt.Fprintln(output, summary.String())
	return nil
}

// ParseKindFlag parses a record kind (lifecycle, transfer or spy).
func ParseKindFlag(s string) (capture.Kind, error) {
	k, ok := capture.ParseKind(s)
	if !ok {
		return 0, fmt.Errorf("invalid kind: %s (must be lifecycle, transfer, or spy)", s)
	}
	return k, nil
}

// ParseAddressFlag parses a slave address (0x4B, 4Bh or 75).
func ParseAddressFlag(s string) (protocol.Address, error) {
	addr, err := protocol.ParseAddress(s)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %w", err)
	}
	return addr, nil
}
