// Package check provides the --check diagnostics: whether ogr2ogr is on
// PATH, which GDAL release it belongs to, and whether the drivers vectorgen
// relies on are compiled in.
package check

import (
	"bufio"
	"context"
	"os/exec"
	"strings"

	"github.com/backmassage/vectorgen/internal/ogr"
)

// RequiredDrivers are the OGR drivers needed to read Shapefile inputs and
// write GeoJSON output.
var RequiredDrivers = []string{"ESRI Shapefile", ogr.GeoJSONDriver}

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck logs tool availability and returns the number of problems found.
// It is informational and does not stop at the first failure.
func RunCheck(ctx context.Context, binary string, log Logger) int {
	if binary == "" {
		binary = ogr.Binary
	}
	log.Info("=== System Check ===")

	if err := (&ogr.Executor{Binary: binary}).Check(); err != nil {
		log.Error("%v", err)
		return 1
	}

	problems := 0
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		log.Warn("%s found but --version failed: %v", binary, err)
		problems++
	} else {
		log.Info("%s: %s", binary, firstLine(string(out)))
	}

	out, err = exec.CommandContext(ctx, binary, "--formats").Output()
	if err != nil {
		log.Warn("Could not list drivers: %v", err)
		return problems + 1
	}
	drivers := ParseDrivers(string(out))
	for _, d := range RequiredDrivers {
		if drivers[d] {
			log.Info("driver %s: available", d)
		} else {
			log.Error("driver %s: missing", d)
			problems++
		}
	}
	return problems
}

// ParseDrivers extracts driver short names from GDAL "--formats" output,
// whose entries look like "  GeoJSON -vector- (rw+v): GeoJSON".
func ParseDrivers(out string) map[string]bool {
	drivers := make(map[string]bool)
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasSuffix(line, ":") {
			continue // blank or "Supported Formats:" header
		}
		name, _, ok := strings.Cut(line, " (")
		if !ok {
			continue
		}
		if i := strings.Index(name, " -"); i > 0 {
			name = name[:i]
		}
		drivers[strings.TrimSpace(name)] = true
	}
	return drivers
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
