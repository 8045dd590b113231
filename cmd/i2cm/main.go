// Command i2cm drives an I2C bus as master and monitors its traffic.
//
// The bus is described by a YAML configuration file; without one, i2cm runs
// against a simulated bus holding a Pmod TMP2 at 0x4B and a Pmod CLS at 0x48.
//
// Usage:
//
//	i2cm <command> [flags] [args]
//
// Commands:
//
//	console  Interactive bus console
//	run      Run a bus script
//	spy      Monitor bus traffic
//	view     View a capture file
//
// Examples:
//
//	# Read the TMP2 temperature registers
//	i2cm console
//	i2cm> read 0x4B 2
//
//	# Run a script and record every transfer
//	i2cm run -config bus.yaml tmp2.i2c
//
//	# Watch the bus while a script runs
//	i2cm spy -script tmp2.i2c
//
//	# Show only NAKed transfers of a capture
//	i2cm view -kind transfer -nak bus.i2cap
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moffa90/go-i2cm/capture"
	"github.com/moffa90/go-i2cm/cmd/i2cm/commands"
)

const usage = `i2cm - I2C Bus Master

Usage:
  i2cm <command> [flags] [args]

Commands:
  console  Interactive bus console
  run      Run a bus script
  spy      Monitor bus traffic
  view     View a capture file

Use "i2cm <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "console":
		runConsole(args)
	case "run":
		runScript(args)
	case "spy":
		runSpy(args)
	case "view":
		runView(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// openSession loads the configuration and opens the bus. The returned
// context is canceled on SIGINT or SIGTERM.
func openSession(configPath, capturePath string) (context.Context, context.CancelFunc, *commands.Session) {
	f, err := commands.LoadConfig(configPath)
	if err != nil {
		fatal(err)
	}
	if capturePath != "" {
		f.Capture.Path = capturePath
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	s, err := commands.OpenSession(ctx, f, os.Stderr)
	if err != nil {
		cancel()
		fatal(err)
	}
	return ctx, cancel, s
}

func runConsole(args []string) {
	fs := flag.NewFlagSet("console", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `i2cm console - Interactive bus console

Usage:
  i2cm console [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Configuration file (default: simulated bus)")
	capturePath := fs.String("capture", "", "Record events to this capture file")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	rl, err := commands.NewReadline()
	if err != nil {
		fatal(err)
	}

	ctx, cancel, s := openSession(*configPath, *capturePath)
	defer cancel()

	commands.NewConsole(s, rl, nil).Run(ctx)

	if err := s.Close(context.Background()); err != nil {
		fatal(err)
	}
}

func runScript(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `i2cm run - Run a bus script

Usage:
  i2cm run [flags] <script>

Flags:
`)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Configuration file (default: simulated bus)")
	capturePath := fs.String("capture", "", "Record events to this capture file")
	continueOnNAK := fs.Bool("continue", false, "Keep going after a step that was not acknowledged")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: script path required")
		fs.Usage()
		os.Exit(1)
	}

	ctx, cancel, s := openSession(*configPath, *capturePath)
	defer cancel()

	runErr := commands.RunScript(ctx, s, fs.Arg(0), *continueOnNAK, os.Stdout)
	closeErr := s.Close(context.Background())

	if runErr != nil {
		fatal(runErr)
	}
	if closeErr != nil {
		fatal(closeErr)
	}
}

func runSpy(args []string) {
	fs := flag.NewFlagSet("spy", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `i2cm spy - Monitor bus traffic

Usage:
  i2cm spy [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Configuration file (default: simulated bus)")
	capturePath := fs.String("capture", "", "Record events to this capture file")
	duration := fs.Duration("duration", 0, "Stop after this long (default: until interrupted)")
	scriptPath := fs.String("script", "", "Run this script while capturing")
	limit := fs.Int("n", 0, "Stop after this many messages")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel, s := openSession(*configPath, *capturePath)
	defer cancel()

	n, spyErr := commands.RunSpy(ctx, s, commands.SpyOptions{
		Duration: *duration,
		Script:   *scriptPath,
		Limit:    *limit,
	}, os.Stdout)
	fmt.Fprintf(os.Stderr, "%d messages\n", n)
	closeErr := s.Close(context.Background())

	if spyErr != nil {
		fatal(spyErr)
	}
	if closeErr != nil {
		fatal(closeErr)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `i2cm view - View a capture file

Usage:
  i2cm view [flags] <file>

Flags:
`)
		fs.PrintDefaults()
	}

	kind := fs.String("kind", "", "Filter by kind (lifecycle, transfer, spy)")
	address := fs.String("address", "", "Filter by slave address")
	nakOnly := fs.Bool("nak", false, "Show only records with a NAK")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter := capture.Filter{NAKOnly: *nakOnly}

	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fatal(err)
		}
		filter.Kind = &k
	}

	if *address != "" {
		a, err := commands.ParseAddressFlag(*address)
		if err != nil {
			fatal(err)
		}
		filter.Address = &a
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fatal(err)
	}
}
