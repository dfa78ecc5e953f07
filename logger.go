package rtverify

// Logger defines the interface for validator logging.
// Messages carry structured key-value pairs:
//
//	logger.Info("message", "key1", "value1", "key2", "value2")
//
// This is compatible with slog, logrus, zap and similar libraries. A slog
// adapter is a few lines:
//
//	type SlogLogger struct{ logger *slog.Logger }
//
//	func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
//	func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
//	func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
//	func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
type Logger interface {
	// Info logs a verdict or other normal event.
	Info(msg string, args ...any)

	// Error logs a failed verdict.
	Error(msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(msg string, args ...any)

	// Debug logs per-check progress.
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
