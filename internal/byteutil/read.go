// Package byteutil provides readers over groups of files.
package byteutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MultiFileReader implements [io.ReadCloser] by reading the contents of
// multiple files in turn. Directories are replaced by the YAML files they
// contain, in lexical order. A newline is inserted between files so that
// each one starts on a new line.
type MultiFileReader struct {
	names []string
	f     *os.File
	sep   bool
}

// NewMultiFileReader returns a new [MultiFileReader] that reads from the given files.
func NewMultiFileReader(name ...string) *MultiFileReader {
	return &MultiFileReader{names: name}
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (r *MultiFileReader) openNext() error {
	for len(r.names) > 0 {
		name := r.names[0]
		r.names = r.names[1:]

		fi, err := os.Stat(name)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			r.f = f
			return nil
		}

		entries, err := os.ReadDir(name)
		if err != nil {
			return err
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && isYAML(e.Name()) {
				names = append(names, filepath.Join(name, e.Name()))
			}
		}
		r.names = append(names, r.names...)
	}
	return io.EOF
}

// Read implements [io.Reader]. Errors opening a file are returned as is, and
// [io.EOF] is returned once every file has been read.
func (r *MultiFileReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.sep {
		r.sep = false
		p[0] = '\n'
		return 1, nil
	}
	if r.f == nil {
		if err = r.openNext(); err != nil {
			return
		}
	}
	n, err = r.f.Read(p)
	if err == io.EOF {
		r.f.Close()
		r.f = nil
		r.sep = len(r.names) > 0
		err = nil
		if n == 0 {
			return r.Read(p)
		}
	}
	return
}

// Close implements [io.Closer]. It closes the currently open file.
func (r *MultiFileReader) Close() (err error) {
	if r.f != nil {
		err = r.f.Close()
		r.f = nil
	}
	return
}
