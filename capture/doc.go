// Package capture records I2C bus activity to CBOR files and reads it back.
//
// A FileRecorder plugs into a handle as its event callback:
//
//	rec, err := capture.NewFileRecorder("bus.i2clog")
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	h := i2c.New(bus, i2c.WithEventCallback(rec.Observe))
//
// Each record is a CBOR map with integer keys, appended to the file; a
// capture file is a plain sequence of records. Reader streams them back,
// optionally filtered:
//
//	spy := capture.KindSpy
//	r, err := capture.Open("bus.i2clog", capture.Filter{Kind: &spy})
//	for {
//	    rec, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    fmt.Println(capture.Format(rec))
//	}
package capture
