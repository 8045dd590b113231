// Package i2c provides a master-side I2C driver on top of a digital-I/O instrument.
//
// # Overview
//
// A Handle owns one session on a hal.Bus and walks it through its lifecycle:
//   - Open configures the clock and lines, clears the bus and probes it
//   - Write, Read and Exchange run transactions against a 7-bit slave address
//   - SpyStart and SpyPoll turn the master into a passive bus monitor
//   - Close resets the engine and releases the handle
//
// # Basic Usage
//
//	bus := simbus.New() // or any hal.Bus implementation
//	h := i2c.New(bus)
//
//	err := h.Open(ctx, i2c.DefaultBusConfig(0, 1))
//	if err != nil && !protocol.IsNotAcknowledged(err) {
//	    log.Fatal(err)
//	}
//	defer h.Close(ctx)
//
//	// TMP2: select 16-bit resolution, then read the temperature register
//	if err := h.Write(ctx, 0x4B, protocol.Ints(0x03, 0x80)); err != nil {
//	    log.Fatal(err)
//	}
//	raw, err := h.Read(ctx, 0x4B, 2)
//
// # Acknowledgment
//
// A rejected byte is not a hardware failure. Transfers return
// *protocol.NotAcknowledgedError, whose Index is 1 for the address byte and
// k+1 for the k-th data byte. Read and Exchange still return whatever data was
// clocked in before the NAK.
//
// # Error Handling
//
//	err := h.Open(ctx, cfg)
//	switch {
//	case errors.Is(err, i2c.ErrBusLockup):
//	    // a line is held low; fix the wiring and Open again
//	case errors.Is(err, i2c.ErrCommunication):
//	    // the instrument call itself failed or timed out
//	case protocol.IsNotAcknowledged(err):
//	    // nothing answered the liveness probe; the handle is Ready anyway
//	}
//
// # Bus Monitoring
//
// Monitor wraps SpyStart and SpyPoll in a polling loop:
//
//	mon := i2c.NewMonitor(h, 10*time.Millisecond, 16)
//	err := mon.Run(ctx, func(msg *protocol.SpyMessage, err error) bool {
//	    fmt.Printf("%s %s %s % X\n", msg.Start, msg.Address, msg.Direction, msg.Payload())
//	    return true
//	})
//
// # Observability
//
// WithLogger accepts any Debug/Info/Error logger; NewSlogLogger adapts
// log/slog. WithEventCallback observes every completed operation, which is how
// the capture package records sessions to disk.
//
// # periph.io
//
// NewPeriphBus adapts a Handle to periph.io/x/conn/v3/i2c.Bus so periph device
// drivers can use it unchanged.
//
// # Thread Safety
//
// Handle methods are safe for concurrent use. Each operation holds the handle
// lock, so bus transactions are serialized.
package i2c
