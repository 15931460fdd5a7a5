//go:build !debug

package log

import "log/slog"

func Debug(_ string, _ ...any) {}

// SetHandler replaces the handler of the default logger.
func SetHandler(h Handler) {
	defaultLogger = slog.New(h)
}

func DebugLogger() Logger {
	return debugLogger{}
}

type debugLogger struct{}

func (debugLogger) Println(v ...any)               {}
func (debugLogger) Printf(format string, v ...any) {}
