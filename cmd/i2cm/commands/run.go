package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-i2cm/protocol"
	"github.com/moffa90/go-i2cm/script"
)

// RunScript parses the script at path and runs it on the session handle,
// printing one line per step to w.
func RunScript(ctx context.Context, s *Session, path string, continueOnNAK bool, w io.Writer) error {
	sc, err := script.Parse(path)
	if err != nil {
		return err
	}

	r := &script.Runner{
		Handle:        s.Handle,
		ContinueOnNAK: continueOnNAK,
		OnStep:        func(res script.StepResult) { fmt.Fprintln(w, FormatStep(res)) },
	}

	results, err := r.Run(ctx, sc)
	fmt.Fprintf(w, "%s: %d/%d steps\n", sc.Name, len(results), len(sc.Steps))
	return err
}

// FormatStep renders the result of one script step.
//
//	line 4   read 0x4B 2            -> [0C 80] (1.2ms)
//	line 5   write 0x51 01          NAK@1
func FormatStep(res script.StepResult) string {
	prefix := fmt.Sprintf("line %-3d %-22s", res.Step.Line, res.Step.String())

	switch {
	case res.Err != nil && protocol.IsNotAcknowledged(res.Err):
		return fmt.Sprintf("%s NAK@%d", prefix, protocol.NAKIndex(res.Err))
	case res.Err != nil:
		return fmt.Sprintf("%s error: %v", prefix, res.Err)
	case res.Step.Op == script.OpRead || res.Step.Op == script.OpExchange:
		return fmt.Sprintf("%s -> [% X] (%s)", prefix, res.Data, res.Elapsed.Round(time.Microsecond))
	default:
		return fmt.Sprintf("%s ok (%s)", prefix, res.Elapsed.Round(time.Microsecond))
	}
}
