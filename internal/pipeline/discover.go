package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/vectorgen/internal/config"
)

// ErrNoInputFiles is returned when the configuration names neither input
// files nor an input directory.
var ErrNoInputFiles = errors.New("<input_files> or <input_dir> is required")

// TileSet is the ordered list of candidate input paths for one run.
type TileSet []string

// Collect merges the explicit input_files list with the input_dir glob.
// Explicit entries come first, in document order; glob matches follow in
// lexical order. Every entry is whitespace-trimmed. An empty result is not
// an error here; the conversion stage rejects it.
func Collect(cfg *config.Configuration) (TileSet, error) {
	if strings.TrimSpace(cfg.InputFiles) == "" && cfg.InputDir == "" {
		return nil, ErrNoInputFiles
	}

	var tiles []string
	if list := strings.TrimSpace(cfg.InputFiles); list != "" {
		tiles = append(tiles, strings.Split(list, ",")...)
	}

	if cfg.InputDir != "" {
		pattern := cfg.InputDir + "*"
		if cfg.OutputFormat.SelectsJSONInputs() {
			pattern = cfg.InputDir + "*json"
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		tiles = append(tiles, matches...)
	}

	out := make(TileSet, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, strings.TrimSpace(t))
	}
	return out, nil
}

// Resolve returns a copy of ts with relative entries joined onto dir, so
// explicit relative inputs are read relative to the working directory.
func (ts TileSet) Resolve(dir string) TileSet {
	out := make(TileSet, len(ts))
	for i, t := range ts {
		if t != "" && !filepath.IsAbs(t) {
			t = filepath.Join(dir, t)
		}
		out[i] = t
	}
	return out
}
