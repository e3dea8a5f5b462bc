package ogr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Logger is the minimal logging interface needed by Executor. Defined here
// so ogr stays dependency-light and testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
}

// Executor runs ogr2ogr conversions.
type Executor struct {
	Binary string // Default: "ogr2ogr".
	Log    Logger
}

// NewExecutor returns an Executor for the ogr2ogr found on PATH.
func NewExecutor(log Logger) *Executor {
	return &Executor{Binary: Binary, Log: log}
}

// Check verifies the conversion tool can be found.
func (e *Executor) Check() error {
	if _, err := exec.LookPath(e.binary()); err != nil {
		return &ToolError{Args: []string{e.binary()}, Err: ErrOgr2ogrNotFound}
	}
	return nil
}

func (e *Executor) binary() string {
	if e.Binary == "" {
		return Binary
	}
	return e.Binary
}

// Convert writes src as GeoJSON to dst. Tool output is logged line by line;
// a non-zero exit or any error line on stderr yields a *ToolError.
func (e *Executor) Convert(ctx context.Context, src, dst string) error {
	if err := e.Check(); err != nil {
		return err
	}
	args := BuildArgs(e.binary(), src, dst)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stderr := stderrBuf.String()
	e.logOutput(stdoutBuf.String(), stderr)

	if err != nil || FirstErrorLine(stderr) != "" {
		return &ToolError{Args: args, Stderr: stderr, Err: err}
	}
	return nil
}

func (e *Executor) logOutput(stdout, stderr string) {
	if e.Log == nil {
		return
	}
	for _, line := range splitLines(stdout) {
		e.Log.Info("%s", line)
	}
	for _, line := range splitLines(stderr) {
		if MatchErrorLine(line) {
			continue // reported through the returned ToolError
		}
		e.Log.Warn("%s", line)
	}
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
