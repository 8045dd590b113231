package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/moffa90/go-i2cm/i2c"
	"github.com/moffa90/go-i2cm/protocol"
)

// SpyOptions configures RunSpy.
type SpyOptions struct {
	// Duration bounds the capture; zero runs until ctx is done
	Duration time.Duration

	// Script is run on the same handle while capturing (optional)
	Script string

	// Limit stops after this many messages; zero means no limit
	Limit int
}

// RunSpy monitors the bus and prints every decoded message to w. It returns
// the number of messages printed. Reaching the duration, the limit or the
// end of ctx is a normal end of the capture.
func RunSpy(ctx context.Context, s *Session, opts SpyOptions, w io.Writer) (int, error) {
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interval := s.Config.Spy.PollInterval
	mon := i2c.NewMonitor(s.Handle, interval, s.Config.Spy.MaxBytes)

	scriptDone := make(chan error, 1)
	if opts.Script != "" {
		// capture must be on before the script puts traffic on the bus
		if err := s.Handle.SpyStart(ctx); err != nil {
			return 0, err
		}
		go func() {
			scriptDone <- RunScript(ctx, s, opts.Script, true, io.Discard)
			if opts.Duration == 0 {
				time.Sleep(5 * interval)
				cancel()
			}
		}()
	}

	count := 0
	err := mon.Run(ctx, func(msg *protocol.SpyMessage, err error) bool {
		count++
		fmt.Fprintln(w, FormatSpy(msg, err))
		return opts.Limit == 0 || count < opts.Limit
	})
	cancel()

	if isContextEnd(err) {
		err = nil
	}
	if opts.Script != "" {
		if serr := <-scriptDone; err == nil && !isContextEnd(serr) {
			err = serr
		}
	}
	return count, err
}

func isContextEnd(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// FormatSpy renders one decoded bus message.
//
//	Start   0x4B W [96 03 80] stop
//	Restart 0x4B R [97 0C 80] stop NAK@3
func FormatSpy(msg *protocol.SpyMessage, err error) string {
	var b strings.Builder

	if msg == nil {
		b.WriteString("-")
	} else {
		fmt.Fprintf(&b, "%-7s", msg.Start)
		if msg.HasAddress {
			dir := "W"
			if msg.Direction == protocol.Read {
				dir = "R"
			}
			fmt.Fprintf(&b, " %s %s", msg.Address, dir)
		} else {
			b.WriteString(" ---- -")
		}
		fmt.Fprintf(&b, " [% X]", msg.Data)
		if msg.Stop {
			b.WriteString(" stop")
		}
	}

	if err != nil {
		if protocol.IsNotAcknowledged(err) {
			fmt.Fprintf(&b, " NAK@%d", protocol.NAKIndex(err))
		} else {
			fmt.Fprintf(&b, " error: %v", err)
		}
	}
	return b.String()
}
