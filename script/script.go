package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/moffa90/go-i2cm/protocol"
)

// Op is the command of a script step.
type Op int

const (
	// OpWrite sends bytes to a slave
	OpWrite Op = iota

	// OpRead receives bytes from a slave
	OpRead

	// OpExchange writes then reads after a repeated start
	OpExchange

	// OpDelay pauses the script
	OpDelay
)

// String returns the command keyword.
func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	case OpExchange:
		return "exchange"
	case OpDelay:
		return "delay"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Step is one parsed script line.
type Step struct {
	// Line is the 1-based source line
	Line int

	// Op is the command
	Op Op

	// Address is the slave address (not used by delay)
	Address protocol.Address

	// Payload holds the bytes sent by write and exchange
	Payload protocol.Payload

	// Count is the number of bytes received by read and exchange
	Count int

	// Delay is the pause of a delay step
	Delay time.Duration
}

// String renders the step in script syntax.
func (s Step) String() string {
	var b strings.Builder
	b.WriteString(s.Op.String())

	if s.Op == OpDelay {
		b.WriteString(" " + s.Delay.String())
		return b.String()
	}

	b.WriteString(" " + s.Address.String())
	if s.Op == OpWrite || s.Op == OpExchange {
		data, _ := s.Payload.Encode()
		for _, v := range data {
			fmt.Fprintf(&b, " %02X", v)
		}
	}
	if s.Op == OpRead || s.Op == OpExchange {
		fmt.Fprintf(&b, " %d", s.Count)
	}
	return b.String()
}

// Script is a parsed sequence of bus steps.
type Script struct {
	// Name is the source file name, if any
	Name string

	// Steps in execution order
	Steps []Step
}

// Duration returns the total time spent in delay steps.
func (s *Script) Duration() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		if step.Op == OpDelay {
			total += step.Delay
		}
	}
	return total
}
