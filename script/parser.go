package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/moffa90/go-i2cm/protocol"
)

// Parse parses a script file from the given path.
//
// Example:
//
//	s, err := script.Parse("tmp2.i2c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d steps\n", len(s.Steps))
func Parse(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := ParseReader(f)
	if err != nil {
		return nil, err
	}
	s.Name = filepath.Base(path)
	return s, nil
}

// ParseReader parses a script from any io.Reader.
//
// Script syntax, one command per line, '#' starts a comment:
//
//	write    ADDR [BYTES...]
//	read     ADDR COUNT
//	exchange ADDR BYTES... COUNT
//	delay    DURATION
//
// ADDR accepts 0x4B, 4Bh or 75. BYTES are hex values (03, 0x80) or quoted
// strings ("Temp: ", "\x1b[j") in any mix. COUNT is decimal. DURATION uses
// Go syntax (500ms, 1s).
//
// Example:
//
//	s, err := script.ParseReader(strings.NewReader("write 0x4B 03 80\nread 0x4B 2\n"))
func ParseReader(r io.Reader) (*Script, error) {
	scanner := bufio.NewScanner(r)
	s := &Script{}

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		fields, err := tokenize(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(fields) == 0 {
			continue
		}

		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		step.Line = lineNum
		s.Steps = append(s.Steps, step)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("no steps found in script")
	}

	return s, nil
}

// ParseLine parses a single command, as typed at the console.
func ParseLine(line string) (Step, error) {
	fields, err := tokenize(line)
	if err != nil {
		return Step{}, err
	}
	if len(fields) == 0 {
		return Step{}, fmt.Errorf("empty command")
	}
	return parseStep(fields)
}

// token is one word of a line; quoted tokens keep their unquoted text.
type token struct {
	text   string
	quoted bool
}

func tokenize(line string) ([]token, error) {
	var tokens []token
	rest := line

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" || rest[0] == '#' {
			return tokens, nil
		}

		if rest[0] == '"' {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("unterminated or invalid string: %s", rest)
			}
			text, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("invalid string %s: %w", quoted, err)
			}
			tokens = append(tokens, token{text: text, quoted: true})
			rest = rest[len(quoted):]
			continue
		}

		end := strings.IndexAny(rest, " \t#\"")
		if end < 0 {
			end = len(rest)
		}
		tokens = append(tokens, token{text: rest[:end]})
		rest = rest[end:]
	}
}

func parseStep(fields []token) (Step, error) {
	if fields[0].quoted {
		return Step{}, fmt.Errorf("expected a command, got string %q", fields[0].text)
	}

	cmd := strings.ToLower(fields[0].text)
	args := fields[1:]

	switch cmd {
	case "delay", "sleep":
		if len(args) != 1 || args[0].quoted {
			return Step{}, fmt.Errorf("delay: expected one duration")
		}
		d, err := time.ParseDuration(args[0].text)
		if err != nil {
			return Step{}, fmt.Errorf("delay: %w", err)
		}
		if d < 0 {
			return Step{}, fmt.Errorf("delay: duration must not be negative")
		}
		return Step{Op: OpDelay, Delay: d}, nil

	case "write", "read", "exchange":
	default:
		return Step{}, fmt.Errorf("unknown command %q", fields[0].text)
	}

	if len(args) == 0 || args[0].quoted {
		return Step{}, fmt.Errorf("%s: missing address", cmd)
	}
	addr, err := protocol.ParseAddress(args[0].text)
	if err != nil {
		return Step{}, fmt.Errorf("%s: %w", cmd, err)
	}
	args = args[1:]

	switch cmd {
	case "write":
		payload, err := parseBytes(args)
		if err != nil {
			return Step{}, fmt.Errorf("write: %w", err)
		}
		return Step{Op: OpWrite, Address: addr, Payload: payload}, nil

	case "read":
		if len(args) != 1 {
			return Step{}, fmt.Errorf("read: expected a byte count")
		}
		count, err := parseCount(args[0])
		if err != nil {
			return Step{}, fmt.Errorf("read: %w", err)
		}
		return Step{Op: OpRead, Address: addr, Count: count}, nil

	default:
		if len(args) < 1 {
			return Step{}, fmt.Errorf("exchange: expected bytes and a byte count")
		}
		count, err := parseCount(args[len(args)-1])
		if err != nil {
			return Step{}, fmt.Errorf("exchange: %w", err)
		}
		payload, err := parseBytes(args[:len(args)-1])
		if err != nil {
			return Step{}, fmt.Errorf("exchange: %w", err)
		}
		return Step{Op: OpExchange, Address: addr, Payload: payload, Count: count}, nil
	}
}

// parseBytes builds the payload of a write or exchange. A single quoted
// string stays a text payload; anything else is flattened to bytes. Strings
// holding \x escapes that are not valid UTF-8 are sent byte for byte.
func parseBytes(args []token) (protocol.Payload, error) {
	if len(args) == 1 && args[0].quoted && utf8.ValidString(args[0].text) {
		p := protocol.Text(args[0].text)
		if _, err := p.Encode(); err != nil {
			return protocol.Payload{}, err
		}
		return p, nil
	}

	data := make([]byte, 0, len(args))
	for _, arg := range args {
		if arg.quoted && !utf8.ValidString(arg.text) {
			data = append(data, arg.text...)
			continue
		}
		if arg.quoted {
			text, err := protocol.Text(arg.text).Encode()
			if err != nil {
				return protocol.Payload{}, err
			}
			data = append(data, text...)
			continue
		}

		hex := strings.TrimPrefix(strings.TrimPrefix(arg.text, "0x"), "0X")
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return protocol.Payload{}, fmt.Errorf("invalid byte %q", arg.text)
		}
		data = append(data, byte(v))
	}
	return protocol.Bytes(data...), nil
}

func parseCount(t token) (int, error) {
	if t.quoted {
		return 0, fmt.Errorf("invalid byte count %q", t.text)
	}
	n, err := strconv.Atoi(t.text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid byte count %q", t.text)
	}
	return n, nil
}
