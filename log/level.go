package log

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// A Level is the severity of a log event. It extends [slog.Level] with
// [LevelDisabled], which silences the logger entirely.
type Level slog.Level

const (
	LevelDebug    = Level(slog.LevelDebug)
	LevelInfo     = Level(slog.LevelInfo)
	LevelWarn     = Level(slog.LevelWarn)
	LevelError    = Level(slog.LevelError)
	LevelDisabled = Level(1<<31 - 1)
)

// String returns the uppercase name of the level, e.g. "WARN". Levels at or
// above [LevelDisabled] are named "DISABLED".
func (l Level) String() string {
	if l >= LevelDisabled {
		return "DISABLED"
	}
	return slog.Level(l).String()
}

// MarshalJSON implements [encoding/json.Marshaler].
func (l Level) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, l.String()), nil
}

// UnmarshalJSON implements [encoding/json.Unmarshaler], accepting the same
// strings as [Level.UnmarshalText].
func (l *Level) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	return l.UnmarshalText([]byte(s))
}

// AppendText implements [encoding.TextAppender].
func (l Level) AppendText(b []byte) ([]byte, error) {
	return append(b, l.String()...), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	return l.AppendText(nil)
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Besides anything
// [slog.Level.UnmarshalText] accepts, "disable", "disabled", "off" and
// "false" select [LevelDisabled]. Case is ignored.
func (l *Level) UnmarshalText(data []byte) error {
	switch strings.TrimSpace(string(bytes.ToLower(data))) {
	case "disable", "disabled", "off", "false":
		*l = LevelDisabled
		return nil
	}
	return (*slog.Level)(l).UnmarshalText(data)
}

// Level implements [slog.Leveler].
func (l Level) Level() slog.Level { return slog.Level(l) }

// LevelFlag adapts a *Level to [pflag.Value].
type LevelFlag Level

var _ pflag.Value = (*LevelFlag)(nil)

func (lf *LevelFlag) String() string { return Level(*lf).String() }

func (lf *LevelFlag) Set(s string) error { return (*Level)(lf).UnmarshalText([]byte(s)) }

func (lf *LevelFlag) Type() string { return "level" }
