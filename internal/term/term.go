// Package term provides terminal detection for console log output.
package term

import (
	"os"
	"strings"
)

// ColorEnabled reports whether ANSI colors should be written to f: it must
// be a TTY, NO_COLOR (https://no-color.org) must be unset, and TERM must not
// be "dumb".
func ColorEnabled(f *os.File) bool {
	return IsTerminal(f) &&
		os.Getenv("NO_COLOR") == "" &&
		strings.ToLower(os.Getenv("TERM")) != "dumb"
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
