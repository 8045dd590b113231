package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/moffa90/go-i2cm/protocol"
	"github.com/moffa90/go-i2cm/script"
)

// Console is the interactive bus console.
type Console struct {
	session *Session
	runner  *script.Runner
	out     io.Writer
	rl      *readline.Instance
}

// NewConsole creates a console on s. When rl is nil the console only
// executes lines passed to Exec, writing to out.
func NewConsole(s *Session, rl *readline.Instance, out io.Writer) *Console {
	if rl != nil {
		out = rl.Stdout()
	}
	return &Console{
		session: s,
		runner:  &script.Runner{Handle: s.Handle},
		out:     out,
		rl:      rl,
	}
}

// NewReadline creates the line editor used by the console.
func NewReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "i2cm> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

// Run starts the interactive command loop. It returns when the user quits,
// on end of input, or when ctx is done.
func (c *Console) Run(ctx context.Context) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			return
		}

		if !c.Exec(ctx, line) {
			fmt.Fprintln(c.out, "Exiting...")
			return
		}
	}
}

// Exec executes one console line and reports whether the console should
// keep running.
func (c *Console) Exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" || strings.HasPrefix(input, "#") {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "open":
		c.cmdOpen(ctx)

	case "close":
		c.cmdClose(ctx)

	case "state", "status":
		c.cmdState()

	case "spy":
		c.cmdSpy(ctx, args)

	case "scan":
		c.cmdScan(ctx)

	case "quit", "exit", "q":
		return false

	default:
		c.cmdStep(ctx, input)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
i2cm Console Commands:
  Transfers:
    write <addr> [bytes...]          - Write bytes or "text" to a device
    read <addr> <count>              - Read count bytes from a device
    exchange <addr> <bytes...> <n>   - Write then read n bytes (repeated start)
    delay <duration>                 - Wait, e.g. 250ms

  Bus:
    open               - Reconfigure the bus from the configuration file
    close              - Release the bus
    state              - Show handle state and bus configuration
    scan               - Probe every address with an empty write
    spy [count]        - Start capture and poll count messages (default 1)

  General:
    help               - Show this help
    quit               - Exit console

  Addresses: 0x4B, 4Bh or 75. Bytes: 03 0x80 "Temp: "`)
}

func (c *Console) cmdOpen(ctx context.Context) {
	cfg, err := c.session.Config.BusConfig()
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	err = c.session.Handle.Open(ctx, cfg)
	if err != nil && !protocol.IsNotAcknowledged(err) {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Bus open: SDA=%d SCL=%d %s\n", cfg.SDA, cfg.SCL, cfg.ClockRate)
}

func (c *Console) cmdClose(ctx context.Context) {
	if err := c.session.Handle.Close(ctx); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Bus closed")
}

func (c *Console) cmdState() {
	h := c.session.Handle
	cfg := h.BusConfig()
	fmt.Fprintf(c.out, "Session: %s\n", h.ID())
	fmt.Fprintf(c.out, "State:   %s\n", h.State())
	fmt.Fprintf(c.out, "Bus:     SDA=%d SCL=%d %s stretching=%v\n",
		cfg.SDA, cfg.SCL, cfg.ClockRate, cfg.ClockStretching)
}

func (c *Console) cmdScan(ctx context.Context) {
	var found []string
	for a := protocol.Address(1); a <= protocol.MaxAddress; a++ {
		err := c.session.Handle.Write(ctx, a, protocol.Bytes())
		switch {
		case err == nil:
			found = append(found, a.String())
		case !protocol.IsNotAcknowledged(err):
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
	}
	if len(found) == 0 {
		fmt.Fprintln(c.out, "No devices found")
		return
	}
	fmt.Fprintf(c.out, "Devices: %s\n", strings.Join(found, " "))
}

func (c *Console) cmdSpy(ctx context.Context, args []string) {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(c.out, "Error: invalid count %q\n", args[0])
			return
		}
		count = n
	}

	h := c.session.Handle
	if err := h.SpyStart(ctx); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	for i := 0; i < count; i++ {
		msg, err := h.SpyPoll(ctx, c.session.Config.Spy.MaxBytes)
		if err != nil && !protocol.IsNotAcknowledged(err) {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		if msg == nil && err == nil {
			fmt.Fprintln(c.out, "(no traffic)")
			return
		}
		fmt.Fprintln(c.out, FormatSpy(msg, err))
	}
}

func (c *Console) cmdStep(ctx context.Context, line string) {
	step, err := script.ParseLine(line)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v (type 'help' for commands)\n", err)
		return
	}

	res := c.runner.Exec(ctx, step)
	switch {
	case res.Err != nil && protocol.IsNotAcknowledged(res.Err):
		fmt.Fprintf(c.out, "NAK at byte %d\n", protocol.NAKIndex(res.Err))
	case res.Err != nil:
		fmt.Fprintf(c.out, "Error: %v\n", res.Err)
	case step.Op == script.OpRead || step.Op == script.OpExchange:
		fmt.Fprintf(c.out, "% X\n", res.Data)
	default:
		fmt.Fprintln(c.out, "OK")
	}
}
