// Package convert turns the first collected input into the run's final
// GeoJSON output: convert to a temporary basename file, then move it to the
// resolved output name.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/backmassage/vectorgen/internal/config"
	"github.com/backmassage/vectorgen/internal/paths"
)

// ErrNoValidInput is returned when there is nothing convertible: no tiles,
// or an output format without a conversion path.
var ErrNoValidInput = errors.New("no valid input files or output format")

// Converter writes src as GeoJSON to dst. The ogr package provides the production
// implementation.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// Logger is the subset of the run logger used here.
type Logger interface {
	Info(string, ...interface{})
}

// Runner drives one conversion.
type Runner struct {
	Converter Converter
	Log       Logger
}

// Result describes a finished conversion.
type Result struct {
	Input      string
	OutputPath string
	Bytes      int64
}

// Run converts tiles[0] to basenamePath+".json" and moves that file to
// outputPath. Remaining tiles are ignored; mosaicking is not supported.
func (r *Runner) Run(ctx context.Context, tiles []string, basenamePath, outputPath string, format config.OutputFormat) (Result, error) {
	if len(tiles) == 0 {
		return Result{}, fmt.Errorf("%w: no input files", ErrNoValidInput)
	}
	if !format.Supported() {
		return Result{}, fmt.Errorf("%w: output format %q is not supported", ErrNoValidInput, format)
	}

	src := tiles[0]
	tmp := basenamePath + ".json"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("remove stale %s: %w", tmp, err)
	}

	if err := r.Converter.Convert(ctx, src, tmp); err != nil {
		return Result{}, err
	}

	r.info("Moving %s to %s", tmp, outputPath)
	if err := paths.Move(tmp, outputPath); err != nil {
		return Result{}, fmt.Errorf("move %s to %s: %w", tmp, outputPath, err)
	}

	res := Result{Input: src, OutputPath: outputPath}
	if fi, err := os.Stat(outputPath); err == nil {
		res.Bytes = fi.Size()
	}
	r.info("Output created: %s (%s)", outputPath, humanize.IBytes(uint64(res.Bytes)))
	return res, nil
}

func (r *Runner) info(format string, args ...interface{}) {
	if r.Log != nil {
		r.Log.Info(format, args...)
	}
}
