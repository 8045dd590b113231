// Package script parses and runs line-oriented I2C bus scripts.
//
// A script reproduces a bus session step by step:
//
//	# Pmod TMP2 at 0x4B, Pmod CLS at 0x48
//	write 0x4B 03 80          # 16-bit resolution
//	write 0x48 "\x1b[j"       # clear the display
//	write 0x4B                # rewind the register pointer
//	read  0x4B 2
//	exchange 0x50 00 4        # set pointer 0, read 4 bytes
//	delay 1s
//
// Parse and ParseReader report the line of the first error. Runner executes
// the steps on an i2c.Handle.
package script
