package ogr

import (
	"errors"
	"regexp"
	"strings"
)

// ErrOgr2ogrNotFound is returned when the conversion tool is not on PATH.
var ErrOgr2ogrNotFound = errors.New("ogr2ogr not found on PATH")

// ToolError reports a failed conversion. Err is the exec error (or
// ErrOgr2ogrNotFound); Stderr holds the tool's diagnostic output.
type ToolError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := strings.Join(e.Args, " ") + " failed"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if first := FirstErrorLine(e.Stderr); first != "" {
		msg += ": " + first
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// Pre-compiled classifiers for GDAL/OGR diagnostic lines.
var (
	reErrorLine   = regexp.MustCompile(`^(ERROR \d+:|FAILURE:)`)
	reWarningLine = regexp.MustCompile(`^Warning \d+:`)
)

// MatchErrorLine reports whether line is a GDAL error or failure report.
func MatchErrorLine(line string) bool {
	return reErrorLine.MatchString(strings.TrimSpace(line))
}

// MatchWarningLine reports whether line is a GDAL warning.
func MatchWarningLine(line string) bool {
	return reWarningLine.MatchString(strings.TrimSpace(line))
}

// FirstErrorLine returns the first error or failure line in stderr, or "".
func FirstErrorLine(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		if MatchErrorLine(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
