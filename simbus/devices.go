package simbus

import (
	"math"
	"strings"
	"sync"
)

// Device is a simulated slave.
type Device interface {
	// Write receives the data bytes of a write phase and returns how many it
	// acknowledged. Returning fewer than len(data) NAKs the next byte.
	Write(data []byte) int

	// Read returns up to count bytes for a read phase.
	Read(count int) []byte
}

// Echo returns the last bytes written to it.
type Echo struct {
	mu   sync.Mutex
	last []byte
}

// NewEcho creates an Echo device.
func NewEcho() *Echo {
	return &Echo{}
}

func (e *Echo) Write(data []byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(data) > 0 {
		e.last = append([]byte(nil), data...)
	}
	return len(data)
}

func (e *Echo) Read(count int) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	if count > len(e.last) {
		count = len(e.last)
	}
	return append([]byte(nil), e.last[:count]...)
}

// Memory is a register file addressed by an auto-incrementing pointer, like
// a small EEPROM or most sensor register maps. The first byte of a write sets
// the pointer; following bytes are stored from there.
type Memory struct {
	mu      sync.Mutex
	data    []byte
	pointer int
}

// NewMemory creates a register file of size bytes (256 when size <= 0),
// pre-loaded with contents.
func NewMemory(size int, contents []byte) *Memory {
	if size <= 0 {
		size = 256
	}
	if len(contents) > size {
		size = len(contents)
	}
	data := make([]byte, size)
	copy(data, contents)
	return &Memory{data: data}
}

func (m *Memory) Write(data []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(data) == 0 {
		return 0
	}
	m.pointer = int(data[0]) % len(m.data)
	for _, b := range data[1:] {
		m.data[m.pointer] = b
		m.pointer = (m.pointer + 1) % len(m.data)
	}
	return len(data)
}

func (m *Memory) Read(count int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, count)
	for i := range out {
		out[i] = m.data[m.pointer]
		m.pointer = (m.pointer + 1) % len(m.data)
	}
	return out
}

// Bytes returns a copy of the register file.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// NakAfter wraps a device so that only the first N data bytes of each write
// are acknowledged.
type NakAfter struct {
	Device Device
	N      int
}

func (n *NakAfter) Write(data []byte) int {
	if len(data) > n.N {
		data = data[:n.N]
	}
	accepted := n.Device.Write(data)
	if accepted > n.N {
		accepted = n.N
	}
	return accepted
}

func (n *NakAfter) Read(count int) []byte {
	return n.Device.Read(count)
}

// Register map of the TMP2 temperature sensor.
const (
	TMP2RegTempMSB = 0x00
	TMP2RegTempLSB = 0x01
	TMP2RegStatus  = 0x02
	TMP2RegConfig  = 0x03
	TMP2RegID      = 0x0B
)

// TMP2 simulates the Digilent Pmod TMP2 sensor (ADT7420-compatible) in
// 16-bit mode: the temperature register holds degrees Celsius times 128 as a
// signed big-endian value. An empty write rewinds the register pointer to
// the temperature register.
type TMP2 struct {
	mu      sync.Mutex
	regs    [16]byte
	pointer int
}

// NewTMP2 creates a sensor reading celsius.
func NewTMP2(celsius float64) *TMP2 {
	t := &TMP2{}
	t.regs[TMP2RegID] = 0xCB
	t.setTemperature(celsius)
	return t
}

// SetTemperature changes the reported temperature.
func (t *TMP2) SetTemperature(celsius float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setTemperature(celsius)
}

func (t *TMP2) setTemperature(celsius float64) {
	raw := int16(math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(celsius*128))))
	t.regs[TMP2RegTempMSB] = byte(uint16(raw) >> 8)
	t.regs[TMP2RegTempLSB] = byte(uint16(raw))
}

// Config returns the configuration register.
func (t *TMP2) Config() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.regs[TMP2RegConfig]
}

func (t *TMP2) Write(data []byte) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(data) == 0 {
		t.pointer = TMP2RegTempMSB
		return 0
	}
	if int(data[0]) >= len(t.regs) {
		return 0
	}
	t.pointer = int(data[0])
	for i, b := range data[1:] {
		reg := t.pointer + i
		if reg >= len(t.regs) {
			return i + 1
		}
		if reg == TMP2RegConfig {
			t.regs[reg] = b
		}
	}
	return len(data)
}

func (t *TMP2) Read(count int) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]byte, count)
	for i := range out {
		out[i] = t.regs[t.pointer]
		t.pointer = (t.pointer + 1) % len(t.regs)
	}
	return out
}

// DecodeTMP2 converts the two temperature register bytes to degrees Celsius.
func DecodeTMP2(msb, lsb byte) float64 {
	return float64(int16(uint16(msb)<<8|uint16(lsb))) / 128
}

// Display simulates the Digilent Pmod CLS character display. Text written to
// it is appended to the screen; the escape sequence "\x1b[j" clears it.
type Display struct {
	mu     sync.Mutex
	screen strings.Builder
}

// DisplayClear is the escape sequence that clears the screen and homes the cursor.
const DisplayClear = "\x1b[j"

// NewDisplay creates an empty display.
func NewDisplay() *Display {
	return &Display{}
}

func (d *Display) Write(data []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	text := string(data)
	if i := strings.LastIndex(text, DisplayClear); i >= 0 {
		d.screen.Reset()
		text = text[i+len(DisplayClear):]
	}
	d.screen.WriteString(text)
	return len(data)
}

func (d *Display) Read(count int) []byte {
	return nil
}

// Text returns what is on the screen.
func (d *Display) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.screen.String()
}
