// Package logging provides the leveled run logger: console output split by
// severity (errors to stderr) plus, once the log directory is known, a
// per-run log file. It is a thin printf-style wrapper over zap.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/vectorgen/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// Options configures console output. Zero-value writers default to
// os.Stdout and os.Stderr.
type Options struct {
	Verbose bool
	Color   bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// DefaultOptions enables colors when stdout is a color-capable terminal.
func DefaultOptions(verbose bool) Options {
	return Options{
		Verbose: verbose,
		Color:   term.ColorEnabled(os.Stdout),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Logger is the explicit logging handle passed to every pipeline stage.
type Logger struct {
	mu       sync.Mutex
	console  []zapcore.Core
	level    zapcore.Level
	zl       *zap.Logger
	sugar    *zap.SugaredLogger
	file     *os.File
	filePath string
}

// New returns a console-only logger. Call [Logger.OpenFile] to add the run
// log file and [Logger.Close] when done.
func New(opts Options) *Logger {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig(opts.Color))
	belowError := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level && lvl < zapcore.ErrorLevel
	})
	atError := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	l := &Logger{
		level: level,
		console: []zapcore.Core{
			zapcore.NewCore(enc, zapcore.AddSync(stdout), belowError),
			zapcore.NewCore(enc.Clone(), zapcore.AddSync(stderr), atError),
		},
	}
	l.rebuild(nil)
	return l
}

// Nop returns a logger that discards everything; useful in tests.
func Nop() *Logger {
	l := &Logger{level: zapcore.InfoLevel}
	l.zl = zap.NewNop()
	l.sugar = l.zl.Sugar()
	return l
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	levelEnc := zapcore.CapitalLevelEncoder
	if color {
		levelEnc = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      levelEnc,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// rebuild installs a zap logger over the console cores plus extra. Callers
// hold l.mu, except New.
func (l *Logger) rebuild(extra zapcore.Core) {
	cores := append([]zapcore.Core(nil), l.console...)
	if extra != nil {
		cores = append(cores, extra)
	}
	l.zl = zap.New(zapcore.NewTee(cores...))
	l.sugar = l.zl.Sugar()
}

// OpenFile starts appending every record at or above the logger's level
// to path. A previously opened file is closed first.
func (l *Logger) OpenFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.sugar.Sync()
		_ = l.file.Close()
	}
	l.file = f
	l.filePath = path
	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig(false)),
		zapcore.AddSync(f),
		l.level,
	)
	l.rebuild(fileCore)
	return nil
}

// FilePath returns the path of the open log file, or "".
func (l *Logger) FilePath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filePath
}

// Close flushes buffered output and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.sugar.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.rebuild(nil)
		return err
	}
	return nil
}

func (l *Logger) current() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.current().Infof(format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.current().Warnf(format, args...)
}

// Error logs at ERROR level; on the console it goes to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.current().Errorf(format, args...)
}

// Debug logs at DEBUG level, written only when the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.current().Debugf(format, args...)
}

// Infow logs msg at INFO level with structured key/value context.
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.current().Infow(msg, keysAndValues...)
}
