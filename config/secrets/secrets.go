// Package secrets reads Docker-style secret files.
package secrets

import (
	"bytes"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Dir is the directory secrets are read from.
var Dir = "/run/secrets"

// Prefix marks a config string that should be replaced with a secret:
//
//	"!secret broker_password" -> contents of /run/secrets/broker_password
const Prefix = "!secret "

// CutPrefix is equivalent to [strings.CutPrefix](s, [Prefix]).
func CutPrefix(s string) (secret string, ok bool) {
	return strings.CutPrefix(s, Prefix)
}

// Read returns the contents of the secret file, with surrounding whitespace
// removed. Secrets are limited to 512 bytes.
func Read(secret string) (string, error) {
	var buf [512]byte
	fd, err := unix.Open(filepath.Join(Dir, filepath.Base(secret)), unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return "", err
	}
	defer unix.Close(fd)
	n, err := unix.Read(fd, buf[:])
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(buf[:n])), nil
}

// MustRead is like [Read] but returns fallback if the secret can't be read.
func MustRead(secret, fallback string) string {
	s, err := Read(secret)
	if err != nil {
		return fallback
	}
	return s
}
