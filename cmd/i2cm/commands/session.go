// Package commands implements the i2cm CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/moffa90/go-i2cm/capture"
	"github.com/moffa90/go-i2cm/config"
	"github.com/moffa90/go-i2cm/i2c"
	"github.com/moffa90/go-i2cm/protocol"
	"github.com/moffa90/go-i2cm/simbus"
)

// LoadConfig reads the configuration file at path, or returns the defaults
// when path is empty.
func LoadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// Session is an opened handle on the configured bus.
type Session struct {
	Config *config.File
	Bus    *simbus.Bus
	Handle *i2c.Handle
	Logger *slog.Logger

	recorder *capture.FileRecorder
}

// OpenSession builds the simulated bus described by f, opens a handle on it
// and starts recording events when a capture path is set. Log output goes
// to logOut.
func OpenSession(ctx context.Context, f *config.File, logOut io.Writer) (*Session, error) {
	logger := f.NewLogger(logOut)

	bus, err := f.Simulation.NewBus()
	if err != nil {
		return nil, err
	}

	cfg, err := f.BusConfig()
	if err != nil {
		return nil, err
	}

	s := &Session{Config: f, Bus: bus, Logger: logger}

	opts := append(f.HandleOptions(), i2c.WithLogger(i2c.NewSlogLogger(logger)))
	if f.Capture.Path != "" {
		s.recorder, err = capture.NewFileRecorder(f.Capture.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open capture file: %w", err)
		}
		opts = append(opts, i2c.WithEventCallback(s.recorder.Observe))
		logger.Info("recording", "path", f.Capture.Path)
	}

	s.Handle = i2c.New(bus, opts...)
	if err := s.Handle.Open(ctx, cfg); err != nil && !protocol.IsNotAcknowledged(err) {
		s.closeRecorder()
		return nil, err
	}

	return s, nil
}

// Close releases the handle and the capture file.
func (s *Session) Close(ctx context.Context) error {
	var err error
	if s.Handle.State() != i2c.StateClosed {
		err = s.Handle.Close(ctx)
	}
	if cerr := s.closeRecorder(); err == nil {
		err = cerr
	}
	return err
}

func (s *Session) closeRecorder() error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Close()
}
