package i2c

import "log/slog"

// SlogLogger writes handle log messages to an slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a Logger backed by logger. A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger.With("component", "i2c")}
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogLogger)(nil)
