package script

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-i2cm/protocol"
)

// Master is the part of an i2c.Handle a script drives.
type Master interface {
	Write(ctx context.Context, addr protocol.Address, payload protocol.Payload) error
	Read(ctx context.Context, addr protocol.Address, count int) ([]byte, error)
	Exchange(ctx context.Context, addr protocol.Address, payload protocol.Payload, count int) ([]byte, error)
}

// StepResult is the outcome of one executed step.
type StepResult struct {
	Step    Step
	Data    []byte
	Err     error
	Elapsed time.Duration
}

// Runner executes scripts against a master.
type Runner struct {
	// Handle runs the bus steps, typically an *i2c.Handle
	Handle Master

	// ContinueOnNAK keeps going after a step that was not acknowledged.
	// Other errors always stop the script.
	ContinueOnNAK bool

	// OnStep is called after every step (optional)
	OnStep func(StepResult)
}

// Run executes every step of s in order and returns the results of the
// steps that ran. The returned error names the line of the failing step.
//
// Example:
//
//	r := &script.Runner{Handle: h, ContinueOnNAK: true}
//	results, err := r.Run(ctx, s)
func (r *Runner) Run(ctx context.Context, s *Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))

	for _, step := range s.Steps {
		res := r.Exec(ctx, step)
		results = append(results, res)

		if res.Err == nil {
			continue
		}
		if r.ContinueOnNAK && protocol.IsNotAcknowledged(res.Err) {
			continue
		}
		return results, fmt.Errorf("line %d: %s: %w", step.Line, step.Op, res.Err)
	}

	return results, nil
}

// Exec executes a single step.
func (r *Runner) Exec(ctx context.Context, step Step) StepResult {
	start := time.Now()
	res := StepResult{Step: step}

	switch step.Op {
	case OpWrite:
		res.Err = r.Handle.Write(ctx, step.Address, step.Payload)
	case OpRead:
		res.Data, res.Err = r.Handle.Read(ctx, step.Address, step.Count)
	case OpExchange:
		res.Data, res.Err = r.Handle.Exchange(ctx, step.Address, step.Payload, step.Count)
	case OpDelay:
		res.Err = sleep(ctx, step.Delay)
	default:
		res.Err = fmt.Errorf("unsupported step %s", step.Op)
	}

	res.Elapsed = time.Since(start)
	if r.OnStep != nil {
		r.OnStep(res)
	}
	return res
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
