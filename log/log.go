// Package log is a small wrapper around a process-wide [slog.Logger].
//
// Debug output is only compiled in with the "debug" build tag.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Handler = slog.Handler

// DiscardHandler drops every record.
var DiscardHandler Handler = slog.DiscardHandler

// Logger is the printf-style interface expected by the MQTT client.
type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
}

var (
	level          slog.LevelVar
	defaultHandler Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level})
	defaultLogger          = slog.New(defaultHandler)
)

// SetLogLevel sets the minimum level of the text and JSON handlers.
func SetLogLevel(l Level) {
	level.Set(slog.Level(l))
}

// GetLogLevel returns the current minimum level.
func GetLogLevel() Level {
	return Level(level.Level())
}

// SetTextHandler logs to w in [slog.TextHandler] format.
func SetTextHandler(w io.Writer) {
	SetHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level}))
}

// SetJSONHandler logs to w in [slog.JSONHandler] format.
func SetJSONHandler(w io.Writer) {
	SetHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &level}))
}

// Error logs msg at [LevelError], with err recorded under "cause".
func Error(msg string, err error, args ...any) {
	if err != nil {
		args = append([]any{"cause", err}, args...)
	}
	defaultLogger.Error(msg, args...)
}

// Fatal logs like [Error] and exits with status 1.
func Fatal(msg string, err error, args ...any) {
	Error(msg, err, args...)
	os.Exit(1)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

type warnLogger struct{}

// WarnLogger returns a [Logger] that logs at [LevelWarn].
func WarnLogger() Logger { return warnLogger{} }

func (warnLogger) Println(v ...any)               { Warn(sprintln(v...)) }
func (warnLogger) Printf(format string, v ...any) { Warn(fmt.Sprintf(format, v...)) }

type errorLogger struct{}

// ErrorLogger returns a [Logger] that logs at [LevelError].
func ErrorLogger() Logger { return errorLogger{} }

func (errorLogger) Println(v ...any)               { Error(sprintln(v...), nil) }
func (errorLogger) Printf(format string, v ...any) { Error(fmt.Sprintf(format, v...), nil) }

// sprintln is fmt.Sprintln without the trailing newline.
func sprintln(v ...any) string {
	s := fmt.Sprintln(v...)
	return s[:len(s)-1]
}
