package capture

import (
	"fmt"
	"strings"
	"time"

	"github.com/moffa90/go-i2cm/protocol"
)

// Format renders a record as one line of text:
//
//	15:04:05.000000 1a2b3c4d write    0x4B W out=[03 80] ACK
//	15:04:05.000120 1a2b3c4d spy      0x48 R Start [91 0C 80] stop NAK@3
func Format(r Record) string {
	var b strings.Builder

	b.WriteString(r.Timestamp.Format("15:04:05.000000"))
	b.WriteByte(' ')
	b.WriteString(r.Session.String()[:8])
	fmt.Fprintf(&b, " %-8s", r.Op)

	switch r.Kind {
	case KindTransfer:
		fmt.Fprintf(&b, " %s %s", r.Address, dirLetter(r.Direction))
		if len(r.Written) > 0 || r.Op == "write" {
			fmt.Fprintf(&b, " out=[% X]", r.Written)
		}
		if r.Op != "write" {
			fmt.Fprintf(&b, " in=[% X]", r.Data)
		}
		b.WriteString(" " + protocol.DecodeAck(r.NAK).String())
	case KindSpy:
		if len(r.Data) > 0 {
			fmt.Fprintf(&b, " %s %s", r.Address, dirLetter(r.Direction))
		} else {
			b.WriteString(" ---- -")
		}
		fmt.Fprintf(&b, " %s [% X]", r.Start, r.Data)
		if r.Stop {
			b.WriteString(" stop")
		}
		if r.NAK != protocol.NAKNone {
			b.WriteString(" " + protocol.DecodeAck(r.NAK).String())
		}
	default:
		if r.Error != "" {
			fmt.Fprintf(&b, " %s", r.Error)
		}
		return b.String()
	}

	return b.String()
}

func dirLetter(d protocol.Direction) string {
	if d == protocol.Read {
		return "R"
	}
	return "W"
}

// Summary counts records by kind and NAK status.
type Summary struct {
	Records   int
	Transfers int
	Spy       int
	NAKs      int
	First     time.Time
	Last      time.Time
}

// Add accounts for r.
func (s *Summary) Add(r Record) {
	if s.Records == 0 || r.Timestamp.Before(s.First) {
		s.First = r.Timestamp
	}
	if r.Timestamp.After(s.Last) {
		s.Last = r.Timestamp
	}
	s.Records++
	switch r.Kind {
	case KindTransfer:
		s.Transfers++
	case KindSpy:
		s.Spy++
	}
	if r.NAK != protocol.NAKNone {
		s.NAKs++
	}
}

// String renders the summary on one line.
func (s Summary) String() string {
	return fmt.Sprintf("%d records (%d transfers, %d spy), %d NAK, %s",
		s.Records, s.Transfers, s.Spy, s.NAKs, s.Last.Sub(s.First).Round(time.Millisecond))
}
